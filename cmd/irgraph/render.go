package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"irgraph/internal/iontrace"
	"irgraph/internal/observ"
	"irgraph/internal/progress"
	"irgraph/internal/render"
)

func init() {
	rootCmd.Flags().Bool("final", false, "render only the final pass of each function")
	rootCmd.Flags().Int("func", -1, "restrict processing to one function by index")
	rootCmd.Flags().Int("pass", -1, "restrict emission to one pass by index")
	rootCmd.Flags().String("out-mir", "", "explicit MIR output path (used with --pass)")
	rootCmd.Flags().String("out-lir", "", "explicit LIR output path (used with --pass)")
	rootCmd.Flags().String("out-dir", ".", "directory for auto-named output files")
	rootCmd.Flags().String("format", "auto", "trace encoding (auto|json|msgpack)")
	rootCmd.Flags().String("theme", "", "TOML theme file overriding colors and font size")
}

func renderExecution(cmd *cobra.Command, args []string) error {
	finalOnly, err := cmd.Flags().GetBool("final")
	if err != nil {
		return err
	}
	funcNum, err := cmd.Flags().GetInt("func")
	if err != nil {
		return err
	}
	passNum, err := cmd.Flags().GetInt("pass")
	if err != nil {
		return err
	}
	outMIR, err := cmd.Flags().GetString("out-mir")
	if err != nil {
		return err
	}
	outLIR, err := cmd.Flags().GetString("out-lir")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	themePath, err := cmd.Flags().GetString("theme")
	if err != nil {
		return err
	}
	colorValue, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	mode, err := readColorMode(colorValue)
	if err != nil {
		return err
	}
	colorEnabled := shouldColor(mode)
	color.NoColor = !colorEnabled

	format, err := iontrace.ParseFormat(formatValue)
	if err != nil {
		return err
	}
	theme, err := render.LoadTheme(themePath)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	phase := timer.Begin("load")
	tr, err := iontrace.Load(args[0], format)
	if err != nil {
		return err
	}
	timer.End(phase, fmt.Sprintf("%d function(s)", len(tr.Functions)))

	rep := progress.NewConsole(cmd.ErrOrStderr(), colorEnabled, quiet)
	phase = timer.Begin("render")
	res, err := render.Process(tr, render.Options{
		FinalOnly: finalOnly,
		FuncNum:   funcNum,
		PassNum:   passNum,
		OutMIR:    outMIR,
		OutLIR:    outLIR,
		OutDir:    outDir,
		Theme:     theme,
		Reporter:  rep,
	})
	if err != nil {
		return err
	}
	timer.End(phase, fmt.Sprintf("%d graph(s)", res.Graphs))

	rep.Summary(res.Functions, res.Graphs, timer.Elapsed())
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}

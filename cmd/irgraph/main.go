// Package main implements the irgraph CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"irgraph/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "irgraph [flags] <trace>",
	Short: "Render compiler IR traces as graphviz documents",
	Long: `irgraph converts a compiler's per-pass IR debug trace into directed-graph
descriptions: one dot document per function, pass and IR kind. Feed the
output to a graph-layout tool for rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: renderExecution,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

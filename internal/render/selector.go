package render

import (
	"fmt"
	"os"
	"path/filepath"

	"irgraph/internal/graphviz"
	"irgraph/internal/iontrace"
	"irgraph/internal/progress"
)

// Options selects which graphs a run materializes and where they go.
type Options struct {
	// FinalOnly processes only the last pass of each function.
	FinalOnly bool
	// FuncNum restricts processing to one function index; -1 means all.
	FuncNum int
	// PassNum restricts emission to one pass index; -1 means all.
	PassNum int
	// OutMIR and OutLIR are explicit destinations, honored only
	// together with PassNum. An empty destination skips that kind.
	OutMIR string
	OutLIR string
	// OutDir receives auto-named output files. Empty means the
	// current directory.
	OutDir string

	Theme    *Theme
	Reporter progress.Reporter
}

// Result counts what a run produced.
type Result struct {
	Functions int
	Graphs    int
}

// Process iterates the trace per the options and writes one dot
// document per selected (function, pass, IR kind). Per-function aborts
// are reported and skipped; write failures and nothing else are fatal.
func Process(tr *iontrace.Trace, opts Options) (Result, error) {
	th := opts.Theme
	if th == nil {
		th = DefaultTheme()
	}
	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	var res Result
	for fi := range tr.Functions {
		if opts.FuncNum >= 0 && fi != opts.FuncNum {
			continue
		}
		fn := &tr.Functions[fi]
		if opts.FinalOnly && len(fn.Passes) == 0 {
			rep.Abort(fi, fn.Name)
			continue
		}
		rep.Function(fi, fn.Name, len(fn.Passes))
		res.Functions++

		first := 0
		if opts.FinalOnly {
			first = len(fn.Passes) - 1
		}
		for pi := first; pi < len(fn.Passes); pi++ {
			pass := &fn.Passes[pi]
			if opts.PassNum >= 0 {
				if pi != opts.PassNum {
					continue
				}
				if err := emitExplicit(fn, pass, th, opts, rep, &res); err != nil {
					return res, err
				}
				// Passes after the match are skipped.
				break
			}
			if err := emitAuto(fn, fi, pi, pass, th, opts, rep, &res); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// emitExplicit writes the matched pass to the caller-given
// destinations, LIR first, silently skipping a kind whose destination
// was not supplied.
func emitExplicit(fn *iontrace.Function, pass *iontrace.Pass, th *Theme, opts Options, rep progress.Reporter, res *Result) error {
	if opts.OutLIR != "" {
		g := BuildGraph(fn.Name, pass, pass.LIR, pass.MIR, th)
		if err := writeGraph(opts.OutLIR, g, rep, res); err != nil {
			return err
		}
	}
	if opts.OutMIR != "" {
		g := BuildGraph(fn.Name, pass, pass.MIR, pass.MIR, th)
		if err := writeGraph(opts.OutMIR, g, rep, res); err != nil {
			return err
		}
	}
	return nil
}

// emitAuto writes auto-named files: both IR kinds in final-only mode,
// otherwise one kind per pass with LIR preferred over MIR.
func emitAuto(fn *iontrace.Function, fi, pi int, pass *iontrace.Pass, th *Theme, opts Options, rep progress.Reporter, res *Result) error {
	dir := opts.OutDir
	if dir == "" {
		dir = "."
	}
	if opts.FinalOnly {
		lir := BuildGraph(fn.Name, pass, pass.LIR, pass.MIR, th)
		if err := writeGraph(filepath.Join(dir, outputName(fi, pi, pass.Name, KindLIR)), lir, rep, res); err != nil {
			return err
		}
		mir := BuildGraph(fn.Name, pass, pass.MIR, pass.MIR, th)
		return writeGraph(filepath.Join(dir, outputName(fi, pi, pass.Name, KindMIR)), mir, rep, res)
	}

	kind := KindLIR
	g := BuildGraph(fn.Name, pass, pass.LIR, pass.MIR, th)
	if g == nil {
		kind = KindMIR
		g = BuildGraph(fn.Name, pass, pass.MIR, pass.MIR, th)
	}
	return writeGraph(filepath.Join(dir, outputName(fi, pi, pass.Name, kind)), g, rep, res)
}

// writeGraph writes one document, holding the destination open only
// for the duration of the write. A nil graph (absent IR) writes
// nothing.
func writeGraph(path string, g *graphviz.Graph, rep progress.Reporter, res *Result) error {
	if g == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	_, werr := g.WriteTo(f)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("write %s: %w", path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("close %s: %w", path, cerr)
	}
	rep.Wrote(path)
	res.Graphs++
	return nil
}

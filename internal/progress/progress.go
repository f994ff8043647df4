// Package progress reports per-function render progress to the
// operator. One line per processed function, an abort notice when a
// function has nothing to render, and a closing summary.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Reporter receives render progress. Implementations must tolerate
// being called once per function in trace order.
type Reporter interface {
	// Function reports a function about to be processed and its pass count.
	Function(index int, name string, passes int)
	// Abort reports a function skipped because it has no passes.
	Abort(index int, name string)
	// Wrote reports one emitted output document.
	Wrote(path string)
	// Summary reports the whole run.
	Summary(funcs, graphs int, elapsed time.Duration)
}

// Nop discards all progress. Used by tests and library callers.
type Nop struct{}

func (Nop) Function(int, string, int)       {}
func (Nop) Abort(int, string)               {}
func (Nop) Wrote(string)                    {}
func (Nop) Summary(int, int, time.Duration) {}

// Console writes progress lines to a terminal-ish writer.
type Console struct {
	out   io.Writer
	quiet bool
	color bool

	fnIndex *color.Color
	wrote   *color.Color
	abort   *color.Color
	summary lipgloss.Style
}

// Width of the function-name column. Names wider than this just
// overflow; padding only exists to keep the common case aligned.
const nameColumn = 28

// NewConsole builds a console reporter. When colorEnabled is false all
// styling is skipped (fatih/color additionally honors its global
// NoColor switch). When quiet is true only abort notices are printed.
func NewConsole(out io.Writer, colorEnabled, quiet bool) *Console {
	return &Console{
		out:     out,
		quiet:   quiet,
		color:   colorEnabled,
		fnIndex: color.New(color.FgCyan),
		wrote:   color.New(color.Faint),
		abort:   color.New(color.FgRed, color.Bold),
		summary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	}
}

func (c *Console) Function(index int, name string, passes int) {
	if c.quiet {
		return
	}
	label := "passes"
	if passes == 1 {
		label = "pass"
	}
	c.fnIndex.Fprintf(c.out, "fn %2d:", index)
	fmt.Fprintf(c.out, " %s %d %s\n", runewidth.FillRight(name, nameColumn), passes, label)
}

func (c *Console) Abort(index int, name string) {
	c.abort.Fprintf(c.out, "fn %2d:", index)
	fmt.Fprintf(c.out, " %s aborted during construction\n", runewidth.FillRight(name, nameColumn))
}

func (c *Console) Wrote(path string) {
	if c.quiet {
		return
	}
	c.wrote.Fprintf(c.out, "  wrote %s\n", path)
}

func (c *Console) Summary(funcs, graphs int, elapsed time.Duration) {
	if c.quiet {
		return
	}
	line := fmt.Sprintf("rendered %d graph(s) from %d function(s) in %.1f ms",
		graphs, funcs, float64(elapsed)/float64(time.Millisecond))
	if c.color {
		line = c.summary.Render(line)
	}
	fmt.Fprintln(c.out, line)
}

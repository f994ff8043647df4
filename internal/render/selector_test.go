package render_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"irgraph/internal/iontrace"
	"irgraph/internal/render"
)

// recordingReporter captures progress calls for assertions.
type recordingReporter struct {
	functions []string
	aborts    []string
	wrote     []string
}

func (r *recordingReporter) Function(index int, name string, passes int) {
	r.functions = append(r.functions, fmt.Sprintf("%d:%s:%d", index, name, passes))
}

func (r *recordingReporter) Abort(index int, name string) {
	r.aborts = append(r.aborts, fmt.Sprintf("%d:%s", index, name))
}

func (r *recordingReporter) Wrote(path string) {
	r.wrote = append(r.wrote, filepath.Base(path))
}

func (r *recordingReporter) Summary(int, int, time.Duration) {}

func twoBlockTrace() *iontrace.Trace {
	mir := &iontrace.IRSnapshot{Blocks: []iontrace.Block{
		{Number: 0, Successors: []uint32{1}},
		{Number: 1},
	}}
	lir := &iontrace.IRSnapshot{Blocks: []iontrace.Block{
		{Number: 0, Instructions: []iontrace.Instruction{{ID: 1, Opcode: "label"}}},
		{Number: 1, Instructions: []iontrace.Instruction{{ID: 2, Opcode: "return"}}},
	}}
	return &iontrace.Trace{Functions: []iontrace.Function{
		{Name: "testFunc", Passes: []iontrace.Pass{{Name: "BuildSSA", MIR: mir, LIR: lir}}},
	}}
}

// TestProcess_PrefersLIR is the end-to-end scenario: all passes, no
// restrictions, one pass with both IR kinds present produces exactly
// one document, the LIR one, with a single unlabeled edge.
func TestProcess_PrefersLIR(t *testing.T) {
	dir := t.TempDir()
	rep := &recordingReporter{}
	res, err := render.Process(twoBlockTrace(), render.Options{
		FuncNum: -1, PassNum: -1,
		OutDir:   dir,
		Reporter: rep,
	})
	require.NoError(t, err)
	require.Equal(t, render.Result{Functions: 1, Graphs: 1}, res)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "func00-pass00-BuildSSA-lir.gv", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `"Block0" -> "Block1";`)
	require.NotContains(t, out, `"Block0" -> "Block1" [`)
	require.Equal(t, 2, strings.Count(out, "shape="), "one node per block")
	require.Contains(t, out, "label")
	require.Equal(t, []string{"0:testFunc:1"}, rep.functions)
}

// TestProcess_FinalOnlyAbort tests that a zero-pass function aborts
// with a diagnostic while later functions still render.
func TestProcess_FinalOnlyAbort(t *testing.T) {
	dir := t.TempDir()
	tr := twoBlockTrace()
	tr.Functions = append([]iontrace.Function{{Name: "emptyFunc"}}, tr.Functions...)

	rep := &recordingReporter{}
	res, err := render.Process(tr, render.Options{
		FinalOnly: true,
		FuncNum:   -1, PassNum: -1,
		OutDir:   dir,
		Reporter: rep,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"0:emptyFunc"}, rep.aborts)
	require.Equal(t, []string{"1:testFunc:1"}, rep.functions)
	// Final-only mode writes both kinds for the surviving function.
	require.Equal(t, render.Result{Functions: 1, Graphs: 2}, res)
	require.ElementsMatch(t, []string{
		"func01-pass00-BuildSSA-lir.gv",
		"func01-pass00-BuildSSA-mir.gv",
	}, rep.wrote)
}

// TestProcess_PassRestriction tests explicit destinations: LIR then
// MIR for the matched pass only, and iteration stops at the match.
func TestProcess_PassRestriction(t *testing.T) {
	dir := t.TempDir()
	tr := twoBlockTrace()
	fn := &tr.Functions[0]
	// Three passes; only index 1 may emit.
	fn.Passes = []iontrace.Pass{fn.Passes[0], fn.Passes[0], fn.Passes[0]}
	fn.Passes[1].Name = "GVN"
	fn.Passes[2].Name = "Bailouts"

	outMIR := filepath.Join(dir, "picked-mir.gv")
	outLIR := filepath.Join(dir, "picked-lir.gv")
	rep := &recordingReporter{}
	res, err := render.Process(tr, render.Options{
		FuncNum: -1, PassNum: 1,
		OutMIR: outMIR, OutLIR: outLIR,
		OutDir:   dir,
		Reporter: rep,
	})
	require.NoError(t, err)
	require.Equal(t, render.Result{Functions: 1, Graphs: 2}, res)
	require.Equal(t, []string{"picked-lir.gv", "picked-mir.gv"}, rep.wrote)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "no auto-named files alongside explicit destinations")

	data, err := os.ReadFile(outMIR)
	require.NoError(t, err)
	require.Contains(t, string(data), `label = "testFunc - GVN";`)
}

// TestProcess_PassRestrictionWithoutDestinations tests that a matched
// pass with no destinations writes nothing and is not an error.
func TestProcess_PassRestrictionWithoutDestinations(t *testing.T) {
	dir := t.TempDir()
	res, err := render.Process(twoBlockTrace(), render.Options{
		FuncNum: -1, PassNum: 0,
		OutDir: dir,
	})
	require.NoError(t, err)
	require.Equal(t, 0, res.Graphs)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// TestProcess_FuncRestriction tests the single-function filter.
func TestProcess_FuncRestriction(t *testing.T) {
	dir := t.TempDir()
	tr := twoBlockTrace()
	tr.Functions = append(tr.Functions, iontrace.Function{Name: "other", Passes: tr.Functions[0].Passes})

	rep := &recordingReporter{}
	_, err := render.Process(tr, render.Options{
		FuncNum: 1, PassNum: -1,
		OutDir:   dir,
		Reporter: rep,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"1:other:1"}, rep.functions)
	require.Equal(t, []string{"func01-pass00-BuildSSA-lir.gv"}, rep.wrote)
}

// TestProcess_GoldenDot pins the full dot document for a pass with
// loop decorations, resume points and decorated instructions.
func TestProcess_GoldenDot(t *testing.T) {
	mir := &iontrace.IRSnapshot{Blocks: []iontrace.Block{
		{
			Number:     0,
			Successors: []uint32{1, 2},
			UseCount:   2,
			Instructions: []iontrace.Instruction{
				{ID: 1, Opcode: "parameter", Type: "Int32"},
				{ID: 2, Opcode: "constant 0x0", Type: iontrace.TypeNone, Attributes: []string{iontrace.InstrAttrMovable}},
			},
		},
		{
			Number:      1,
			Attributes:  []string{iontrace.BlockAttrLoopHeader},
			Successors:  []uint32{2},
			ResumePoint: &iontrace.ResumePoint{Caller: "outer", Operands: []string{"v1", "v2"}},
		},
		{
			Number:     2,
			Attributes: []string{iontrace.BlockAttrBackedge},
			Instructions: []iontrace.Instruction{
				{ID: 3, Opcode: "return", Attributes: []string{iontrace.InstrAttrNeverHoisted, iontrace.InstrAttrInWorklist}, MemInputs: []string{"v2"}},
			},
		},
	}}
	tr := &iontrace.Trace{Functions: []iontrace.Function{
		{Name: "add", Passes: []iontrace.Pass{{Name: "BuildSSA", MIR: mir}}},
	}}

	dir := t.TempDir()
	res, err := render.Process(tr, render.Options{
		FinalOnly: true,
		FuncNum:   -1, PassNum: -1,
		OutDir: dir,
	})
	require.NoError(t, err)
	// LIR is absent, so only the MIR document exists.
	require.Equal(t, 1, res.Graphs)

	data, err := os.ReadFile(filepath.Join(dir, "func00-pass00-BuildSSA-mir.gv"))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "final-mir", data)
}

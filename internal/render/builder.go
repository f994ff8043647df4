// Package render turns trace snapshots into graphviz documents: one
// directed graph per (function, pass, IR kind), with block labels, loop
// decorations and branch edge labels. It also implements the selection
// policy deciding which graphs a run materializes.
package render

import (
	"fmt"
	"strconv"

	"irgraph/internal/graphviz"
	"irgraph/internal/iontrace"
)

// BuildGraph builds the graph for one IR snapshot of one pass. The
// rendered snapshot supplies the nodes; topology is the MIR snapshot of
// the same pass and always supplies control flow, because LIR does not
// retain successor lists. A nil or empty rendered snapshot yields a nil
// graph, which callers must read as "this IR kind is absent here", not
// as an error.
func BuildGraph(funcName string, pass *iontrace.Pass, rendered, topology *iontrace.IRSnapshot, th *Theme) *graphviz.Graph {
	if rendered == nil || len(rendered.Blocks) == 0 {
		return nil
	}

	g := &graphviz.Graph{
		Name: pass.Name,
		Func: funcName,
		Kind: graphviz.Digraph,
	}
	g.Attrs.Set("rankdir", graphviz.Quote("TB"))
	g.Attrs.Set("splines", graphviz.Quote("true"))

	for i := range rendered.Blocks {
		b := &rendered.Blocks[i]
		node := g.AddNode(blockName(b.Number))
		node.Attrs.Set("shape", graphviz.Quote("box"))
		node.Attrs.Set("fontsize", strconv.Itoa(th.Font.Size))
		node.Attrs.Set("label", graphviz.HTML(blockLabel(b, th)))

		if topology == nil || i >= len(topology.Blocks) {
			continue
		}
		topo := &topology.Blocks[i]
		decorateNode(node, topo, th)

		for si, succ := range topo.Successors {
			e := g.AddEdge(blockName(b.Number), blockName(succ))
			if len(topo.Successors) == 2 {
				// Two successors encode a conditional branch: the first
				// arm is taken on true, the second on false.
				if si == 0 {
					e.Attrs.Set("label", graphviz.Quote("1"))
				} else {
					e.Attrs.Set("label", graphviz.Quote("0"))
				}
			}
		}
	}
	return g
}

// decorateNode applies block-attribute styling. Checks run backedge,
// loopheader, splitedge in that order against a last-write-wins
// attribute map, so a block carrying both backedge and loopheader ends
// up with the loopheader color.
func decorateNode(node *graphviz.Node, topo *iontrace.Block, th *Theme) {
	if topo.HasAttribute(iontrace.BlockAttrBackedge) {
		node.Attrs.Set("color", graphviz.Quote(th.Colors.Backedge))
	}
	if topo.HasAttribute(iontrace.BlockAttrLoopHeader) {
		node.Attrs.Set("color", graphviz.Quote(th.Colors.LoopHeader))
	}
	if topo.HasAttribute(iontrace.BlockAttrSplitEdge) {
		node.Attrs.Set("style", graphviz.Quote("dashed"))
	}
}

func blockName(number uint32) string {
	return fmt.Sprintf("Block%d", number)
}

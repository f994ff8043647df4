package graphviz

import (
	"fmt"
	"io"
	"strings"
)

// Title font size for the per-graph header line. Node label sizing is
// the builder's business; these two directives are fixed presentation.
const titleFontSize = 14

// WriteTo serializes the graph as one dot document. Attribute values
// are emitted verbatim; see Attr.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	cw := &stickyWriter{w: w}
	g.write(cw)
	return cw.n, cw.err
}

func (g *Graph) write(w io.Writer) {
	keyword, edgeOp := "digraph", "->"
	if g.Kind == Undirected {
		keyword, edgeOp = "graph", "--"
	}

	fmt.Fprintf(w, "%s %s {\n", keyword, Quote(g.Name))
	fmt.Fprintf(w, "  labelloc = %s;\n", Quote("t"))
	fmt.Fprintf(w, "  fontsize = %d;\n", titleFontSize)
	fmt.Fprintf(w, "  label = %s;\n", Quote(g.title()))
	for _, a := range g.Attrs.All() {
		fmt.Fprintf(w, "  %s = %s;\n", a.Key, a.Value)
	}

	fmt.Fprintln(w)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		fmt.Fprintf(w, "  %s%s;\n", Quote(n.Name), attrList(&n.Attrs))
	}

	fmt.Fprintln(w)
	for i := range g.Edges {
		e := &g.Edges[i]
		fmt.Fprintf(w, "  %s %s %s%s;\n", Quote(e.From), edgeOp, Quote(e.To), attrList(&e.Attrs))
	}

	fmt.Fprintln(w, "}")
}

func (g *Graph) title() string {
	if g.Func == "" {
		return g.Name
	}
	return g.Func + " - " + g.Name
}

func attrList(m *AttrMap) string {
	if m.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(" [")
	for i, a := range m.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	b.WriteByte(']')
	return b.String()
}

// stickyWriter counts written bytes and swallows everything after the
// first error so write can stay linear.
type stickyWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (sw *stickyWriter) Write(p []byte) (int, error) {
	if sw.err != nil {
		return 0, sw.err
	}
	n, err := sw.w.Write(p)
	sw.n += int64(n)
	sw.err = err
	return n, err
}

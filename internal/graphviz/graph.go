// Package graphviz holds the transient directed-graph model emitted as
// dot text. A Graph is built fresh for one (function, pass, IR kind)
// triple, written once, then discarded.
package graphviz

import "strings"

// Kind selects the graph flavor. Only directed graphs are produced
// today; the undirected flavor exists for completeness of the writer.
type Kind uint8

const (
	// Digraph is a directed graph.
	Digraph Kind = iota
	// Undirected is an undirected graph.
	Undirected
)

// Attr is one attribute pair. Values are pre-formatted dot rvalues:
// the producer is responsible for quoting or HTML-wrapping, the writer
// emits them verbatim.
type Attr struct {
	Key   string
	Value string
}

// AttrMap is an ordered attribute mapping with last-write-wins set
// semantics. Overwriting a key keeps its original position, so a later
// decoration step can override an earlier one without reordering.
type AttrMap struct {
	attrs []Attr
	index map[string]int
}

// Set writes a key, replacing any earlier value for the same key.
func (m *AttrMap) Set(key, value string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.attrs[i].Value = value
		return
	}
	m.index[key] = len(m.attrs)
	m.attrs = append(m.attrs, Attr{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (m *AttrMap) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.attrs[i].Value, true
}

// Len returns the number of attributes.
func (m *AttrMap) Len() int { return len(m.attrs) }

// All returns the attributes in insertion order.
func (m *AttrMap) All() []Attr { return m.attrs }

// Node is one graph node. Name is its dot identity.
type Node struct {
	Name  string
	Attrs AttrMap
}

// Edge is one directed edge between node identities.
type Edge struct {
	From  string
	To    string
	Attrs AttrMap
}

// Graph is one renderable graph document. Func is the owning
// function's display name, used with Name to compose the title.
type Graph struct {
	Name  string
	Func  string
	Kind  Kind
	Attrs AttrMap
	Nodes []Node
	Edges []Edge
}

// AddNode appends a node and returns a pointer to it for attribute
// population.
func (g *Graph) AddNode(name string) *Node {
	g.Nodes = append(g.Nodes, Node{Name: name})
	return &g.Nodes[len(g.Nodes)-1]
}

// AddEdge appends an edge and returns a pointer to it.
func (g *Graph) AddEdge(from, to string) *Edge {
	g.Edges = append(g.Edges, Edge{From: from, To: to})
	return &g.Edges[len(g.Edges)-1]
}

// Quote renders s as a quoted dot rvalue, escaping quotes and
// backslashes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// HTML wraps pre-escaped markup as an HTML-like dot rvalue.
func HTML(markup string) string {
	return "<" + markup + ">"
}

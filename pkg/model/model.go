// Package model holds the origami design model that pleat loads, optimizes
// and persists: a tree of flaps laid out on the unit square together with
// the crease pattern derived from it.
package model

import (
	"fmt"

	"github.com/chazu/pleat/pkg/graph"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Node is a tree node placed in model space.
type Node struct {
	ID  int    `json:"id"`
	Loc v2.Vec `json:"loc"`
}

// Edge is a tree edge of the given length.
type Edge struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Length float64 `json:"length"`
}

// VertexDef declares a crease pattern vertex. A positive Node binds the
// vertex to that tree node's location, overriding Loc.
type VertexDef struct {
	ID   int    `json:"id"`
	Loc  v2.Vec `json:"loc"`
	Node int    `json:"node,omitempty"`
}

// CreaseDef declares a crease between the vertices with IDs A and B.
type CreaseDef struct {
	A    int        `json:"a"`
	B    int        `json:"b"`
	Kind graph.Kind `json:"kind"`
	Fold graph.Fold `json:"fold"`
}

// Model is a loaded design. Scale is the ratio between unit tree length and
// paper size, the quantity the scale optimizer maximizes.
type Model struct {
	Name     string      `json:"name"`
	Scale    float64     `json:"scale"`
	Nodes    []Node      `json:"nodes"`
	Edges    []Edge      `json:"edges"`
	Vertices []VertexDef `json:"vertices"`
	Creases  []CreaseDef `json:"creases"`
}

// New creates an empty model with the given name.
func New(name string) *Model {
	return &Model{Name: name}
}

// AddNode adds a tree node.
func (m *Model) AddNode(id int, loc v2.Vec) {
	m.Nodes = append(m.Nodes, Node{ID: id, Loc: loc})
}

// AddEdge adds a tree edge.
func (m *Model) AddEdge(a, b int, length float64) {
	m.Edges = append(m.Edges, Edge{A: a, B: b, Length: length})
}

// AddVertex adds a crease pattern vertex.
func (m *Model) AddVertex(v VertexDef) {
	m.Vertices = append(m.Vertices, v)
}

// AddCrease adds a crease between two vertex IDs.
func (m *Model) AddCrease(a, b int, kind graph.Kind, fold graph.Fold) {
	m.Creases = append(m.Creases, CreaseDef{A: a, B: b, Kind: kind, Fold: fold})
}

// Node returns the node with the given ID, or nil.
func (m *Model) Node(id int) *Node {
	for i := range m.Nodes {
		if m.Nodes[i].ID == id {
			return &m.Nodes[i]
		}
	}
	return nil
}

// MustNode returns the node with the given ID, or panics.
func (m *Model) MustNode(id int) *Node {
	n := m.Node(id)
	if n == nil {
		panic(fmt.Sprintf("model: no node %d", id))
	}
	return n
}

// HasCreasePattern reports whether the model declares any creases.
func (m *Model) HasCreasePattern() bool {
	return len(m.Creases) > 0
}

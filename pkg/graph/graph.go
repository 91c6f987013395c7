package graph

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// CreaseGraph is the ordered crease pattern of one model snapshot. Crease
// order is draw order. Consumers treat a graph as immutable once built; each
// build produces a new graph.
type CreaseGraph struct {
	Vertices []Vertex `json:"vertices"`
	Creases  []Crease `json:"creases"`
}

// New creates an empty CreaseGraph.
func New() *CreaseGraph {
	return &CreaseGraph{}
}

// AddVertex appends a vertex and returns its index.
func (g *CreaseGraph) AddVertex(id int, loc v2.Vec) int {
	g.Vertices = append(g.Vertices, Vertex{ID: id, Loc: loc})
	return len(g.Vertices) - 1
}

// AddCrease appends a crease between the vertices at indices a and b.
// It does not check that the indices resolve; see Validate.
func (g *CreaseGraph) AddCrease(id int, kind Kind, fold Fold, a, b int) {
	g.Creases = append(g.Creases, Crease{ID: id, Kind: kind, Fold: fold, V: [2]int{a, b}})
}

// Len returns the number of creases.
func (g *CreaseGraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Creases)
}

// Endpoints returns the locations of the two vertices of c.
func (g *CreaseGraph) Endpoints(c *Crease) (v2.Vec, v2.Vec) {
	return g.Vertices[c.V[0]].Loc, g.Vertices[c.V[1]].Loc
}

// Each calls fn for every crease in draw order. The crease pointer refers to
// the graph's own storage and must not be modified.
func (g *CreaseGraph) Each(fn func(i int, c *Crease)) {
	if g == nil {
		return
	}
	for i := range g.Creases {
		fn(i, &g.Creases[i])
	}
}

// VertexIndex returns the index of the vertex with the given ID, or -1.
func (g *CreaseGraph) VertexIndex(id int) int {
	for i := range g.Vertices {
		if g.Vertices[i].ID == id {
			return i
		}
	}
	return -1
}

// CountFold returns the number of creases with the given fold.
func (g *CreaseGraph) CountFold(f Fold) int {
	n := 0
	g.Each(func(_ int, c *Crease) {
		if c.Fold == f {
			n++
		}
	})
	return n
}

// String summarizes the graph for logs.
func (g *CreaseGraph) String() string {
	return fmt.Sprintf("CreaseGraph(%d vertices, %d creases)", len(g.Vertices), len(g.Creases))
}

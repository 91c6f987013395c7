package model

import (
	"fmt"

	"github.com/chazu/pleat/pkg/graph"
)

// BuildCreasePattern materializes the crease graph of m. Vertices bound to a
// tree node take that node's current location, so a pattern built after
// scale optimization follows the optimized layout. The returned graph is a
// fresh snapshot; later changes to m do not affect it.
func BuildCreasePattern(m *Model) (*graph.CreaseGraph, error) {
	g := graph.New()
	index := make(map[int]int, len(m.Vertices))

	for _, v := range m.Vertices {
		if _, dup := index[v.ID]; dup {
			return nil, fmt.Errorf("model: duplicate vertex %d", v.ID)
		}
		loc := v.Loc
		if v.Node > 0 {
			n := m.Node(v.Node)
			if n == nil {
				return nil, fmt.Errorf("model: vertex %d bound to missing node %d", v.ID, v.Node)
			}
			loc = n.Loc
		}
		index[v.ID] = g.AddVertex(v.ID, loc)
	}

	for i, c := range m.Creases {
		a, okA := index[c.A]
		b, okB := index[c.B]
		if !okA || !okB {
			return nil, fmt.Errorf("model: crease %d references missing vertex (%d, %d)", i+1, c.A, c.B)
		}
		g.AddCrease(i+1, c.Kind, c.Fold, a, b)
	}

	return g, nil
}

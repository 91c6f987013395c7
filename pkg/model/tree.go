package model

import "github.com/samber/lo"

// Leaves returns the IDs of the tree's leaf nodes (degree one), in node
// order.
func (m *Model) Leaves() []int {
	degree := make(map[int]int, len(m.Nodes))
	for _, e := range m.Edges {
		degree[e.A]++
		degree[e.B]++
	}
	leaves := lo.Filter(m.Nodes, func(n Node, _ int) bool {
		return degree[n.ID] == 1
	})
	return lo.Map(leaves, func(n Node, _ int) int { return n.ID })
}

// TreeDistances returns the path length through the tree between every
// pair of leaves, indexed like Leaves. Unreachable pairs are -1.
func (m *Model) TreeDistances() [][]float64 {
	leaves := m.Leaves()

	type arc struct {
		to     int
		length float64
	}
	adj := make(map[int][]arc, len(m.Nodes))
	for _, e := range m.Edges {
		adj[e.A] = append(adj[e.A], arc{e.B, e.Length})
		adj[e.B] = append(adj[e.B], arc{e.A, e.Length})
	}

	dist := make([][]float64, len(leaves))
	for i, from := range leaves {
		// Depth-first walk; a tree has exactly one path per pair.
		reach := map[int]float64{from: 0}
		stack := []int{from}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, a := range adj[cur] {
				if _, seen := reach[a.to]; seen {
					continue
				}
				reach[a.to] = reach[cur] + a.length
				stack = append(stack, a.to)
			}
		}

		dist[i] = make([]float64, len(leaves))
		for j, to := range leaves {
			d, ok := reach[to]
			if !ok {
				d = -1
			}
			dist[i][j] = d
		}
	}
	return dist
}

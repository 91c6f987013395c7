// Package graph defines the crease graph types for pleat.
// A crease graph is an ordered, read-only snapshot of the creases of a
// folded base and the vertices they connect.
package graph

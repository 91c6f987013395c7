package model

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Persist writes m in the model source format read by the engine package.
// Numbers are written as exact decimals so that a reloaded model compares
// equal to the one written.
func Persist(m *Model, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "; pleat model\n")
	fmt.Fprintf(bw, "(model %s :scale %s)\n", strconv.Quote(m.Name), num(m.Scale))

	if len(m.Nodes) > 0 {
		fmt.Fprintf(bw, "\n; tree\n")
	}
	for _, n := range m.Nodes {
		fmt.Fprintf(bw, "(node %d :at %s)\n", n.ID, vec(n.Loc))
	}
	for _, e := range m.Edges {
		fmt.Fprintf(bw, "(edge %d %d :length %s)\n", e.A, e.B, num(e.Length))
	}

	if len(m.Vertices) > 0 {
		fmt.Fprintf(bw, "\n; crease pattern\n")
	}
	for _, v := range m.Vertices {
		if v.Node > 0 {
			fmt.Fprintf(bw, "(vertex %d :node %d)\n", v.ID, v.Node)
			continue
		}
		fmt.Fprintf(bw, "(vertex %d :at %s)\n", v.ID, vec(v.Loc))
	}
	for _, c := range m.Creases {
		fmt.Fprintf(bw, "(crease %d %d :kind :%s :fold :%s)\n", c.A, c.B, c.Kind, c.Fold)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("model: persist %q: %w", m.Name, err)
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func vec(p v2.Vec) string {
	return "(vec2 " + num(p.X) + " " + num(p.Y) + ")"
}

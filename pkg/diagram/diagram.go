// Package diagram renders a crease graph as a fixed-grammar SVG diagram.
// Creases are coloured by fold direction, falling back to structural kind
// when the fold pass renders nothing, and projected onto a square canvas.
// The pipeline is read-only and never mutates the graph.
package diagram

import v2 "github.com/deadsy/sdfx/vec/v2"

// Line is one stroked crease in diagram space.
type Line struct {
	Stroke Color  `json:"stroke"`
	P1     v2.Vec `json:"p1"`
	P2     v2.Vec `json:"p2"`
}

// Rect is a filled and stroked rectangle in diagram space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   Color   `json:"fill"`
	Stroke Color   `json:"stroke"`
}

// Diagram is the ordered primitive list of one export. Lines are in crease
// order; Border, when set, is drawn after all lines.
type Diagram struct {
	Size   float64 `json:"size"`
	Lines  []Line  `json:"lines"`
	Border *Rect   `json:"border,omitempty"`
	Tally  Tally   `json:"tally"` // counters of the fold pass
	Mode   Mode    `json:"mode"`  // mode that produced Lines
}

// LineCount returns the number of line primitives.
func (d *Diagram) LineCount() int {
	return len(d.Lines)
}

// HasBorder reports whether the fallback border rectangle was added.
func (d *Diagram) HasBorder() bool {
	return d.Border != nil
}

// IsEmpty returns true if the diagram has no primitives at all.
func (d *Diagram) IsEmpty() bool {
	return len(d.Lines) == 0 && d.Border == nil
}

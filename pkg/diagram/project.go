package diagram

import v2 "github.com/deadsy/sdfx/vec/v2"

// DefaultSize is the canvas edge length of the reference diagram.
const DefaultSize = 2000.0

// Projector maps model-space points onto a square canvas of edge Size.
type Projector struct {
	Size float64
}

// Project returns (x*Size, y*Size). Points outside the unit square are
// projected the same way; nothing is clamped.
func (p Projector) Project(pt v2.Vec) v2.Vec {
	return pt.MulScalar(p.Size)
}

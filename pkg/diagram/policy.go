package diagram

// NeedsBorder reports whether the fold pass found no border crease, in which
// case the diagram gets a full-canvas border rectangle.
func NeedsBorder(t Tally) bool {
	return t.Borders < 1
}

// NeedsKindPass reports whether the fold pass rendered nothing, in which case
// the lines are regenerated in kind mode. Fold mode colours every crease, so
// this only holds for an empty graph.
func NeedsKindPass(t Tally) bool {
	return t.Creases < 1
}

// BorderRect returns the fallback rectangle covering a canvas of edge size.
func BorderRect(size float64) Rect {
	return Rect{
		X:      0,
		Y:      0,
		Width:  size,
		Height: size,
		Fill:   White,
		Stroke: Black,
	}
}

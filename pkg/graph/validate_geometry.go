package graph

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ---------------------------------------------------------------------------
// Tier 2: geometric validation (warnings only)
// ---------------------------------------------------------------------------

// UnitSquare is the nominal extent of model space.
var UnitSquare = sdf.Box2{Min: v2.Vec{X: 0, Y: 0}, Max: v2.Vec{X: 1, Y: 1}}

// zeroLength is the length below which a crease is degenerate.
const zeroLength = 1e-9

// validateGeometry runs all Tier 2 checks. Out-of-range coordinates are
// passed through to the diagram unchanged, so these are advisory.
func validateGeometry(g *CreaseGraph) []ValidationWarning {
	var warnings []ValidationWarning
	warnings = append(warnings, validateUnitSquare(g)...)
	warnings = append(warnings, validateZeroLength(g)...)
	return warnings
}

// validateUnitSquare warns about vertices outside the unit square.
func validateUnitSquare(g *CreaseGraph) []ValidationWarning {
	var warnings []ValidationWarning
	for _, v := range g.Vertices {
		if !UnitSquare.Contains(v.Loc) {
			warnings = append(warnings, ValidationWarning{
				Crease:  -1,
				Message: fmt.Sprintf("vertex %d at (%g, %g) lies outside the unit square", v.ID, v.Loc.X, v.Loc.Y),
			})
		}
	}
	return warnings
}

// validateZeroLength warns about creases whose endpoints coincide.
func validateZeroLength(g *CreaseGraph) []ValidationWarning {
	var warnings []ValidationWarning
	g.Each(func(i int, c *Crease) {
		p1, p2 := g.Endpoints(c)
		if p2.Sub(p1).Length() < zeroLength {
			warnings = append(warnings, ValidationWarning{
				Crease:  i,
				Message: fmt.Sprintf("crease %d has zero length", c.ID),
			})
		}
	})
	return warnings
}

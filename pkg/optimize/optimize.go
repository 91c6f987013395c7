// Package optimize defines the scale optimization interface. Engines
// (fixed, relax) place the leaves of a flap tree on the unit square so that
// every pair of leaves is at least scale times their tree distance apart,
// and report the largest scale they achieve. The engine abstraction allows
// swapping solvers without changing the driver.
package optimize

import (
	"errors"
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// MinScale is the smallest scale accepted as a usable result.
const MinScale = 1e-6

// Problem is the input to an Engine. Dist[i][j] is the tree distance
// between leaves i and j; negative entries mark pairs with no constraint.
type Problem struct {
	Leaves []v2.Vec
	Dist   [][]float64
}

// Solution is an engine's result. Leaves is indexed like Problem.Leaves.
type Solution struct {
	Leaves     []v2.Vec
	Scale      float64
	Iterations int
}

// Engine is the abstract optimizer interface.
type Engine interface {
	// Optimize solves p without modifying it.
	Optimize(p *Problem) (*Solution, error)
}

// ModeSetter is implemented by engines that accept a numeric solver mode.
// Callers should type-assert an Engine to ModeSetter rather than to a
// concrete engine type.
type ModeSetter interface {
	SetMode(mode int)
}

// Convergence failure reasons.
const (
	ReasonTooFewLeaves   = "fewer than two leaves"
	ReasonNoConstraints  = "no leaf pair is connected"
	ReasonIterationLimit = "iteration limit reached"
	ReasonNonFinite      = "scale is not finite"
)

// BadConvergenceError reports that an engine could not produce a solution.
type BadConvergenceError struct {
	Reason string
}

func (e *BadConvergenceError) Error() string {
	return "optimize: bad convergence: " + e.Reason
}

// ErrBadScale is returned when the solved scale is below MinScale.
var ErrBadScale = errors.New("optimize: scale too small")

// Check reports whether p can be handed to an engine.
func (p *Problem) Check() error {
	if p == nil || len(p.Leaves) < 2 {
		return &BadConvergenceError{Reason: ReasonTooFewLeaves}
	}
	if len(p.Dist) != len(p.Leaves) {
		return fmt.Errorf("optimize: %d leaves but %d distance rows", len(p.Leaves), len(p.Dist))
	}
	for i, row := range p.Dist {
		if len(row) != len(p.Leaves) {
			return fmt.Errorf("optimize: distance row %d has %d entries, want %d", i, len(row), len(p.Leaves))
		}
	}
	return nil
}

// Critical returns the scale achieved by the leaf placement pts, which is
// the smallest ratio of separation to tree distance over all constrained
// pairs, and the pair (i, j) attaining it. ok is false when no pair is
// constrained.
func Critical(pts []v2.Vec, dist [][]float64) (scale float64, i, j int, ok bool) {
	scale = math.Inf(1)
	for a := 0; a < len(pts); a++ {
		for b := a + 1; b < len(pts); b++ {
			d := dist[a][b]
			if d <= 0 {
				continue
			}
			r := pts[a].Sub(pts[b]).Length() / d
			if r < scale {
				scale, i, j, ok = r, a, b, true
			}
		}
	}
	if !ok {
		return 0, 0, 0, false
	}
	return scale, i, j, true
}

// Solve runs the shared tail of every engine: it checks the final placement
// and wraps it into a Solution.
func Solve(pts []v2.Vec, dist [][]float64, iterations int) (*Solution, error) {
	s, _, _, ok := Critical(pts, dist)
	if !ok {
		return nil, &BadConvergenceError{Reason: ReasonNoConstraints}
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return nil, &BadConvergenceError{Reason: ReasonNonFinite}
	}
	return &Solution{Leaves: pts, Scale: s, Iterations: iterations}, nil
}

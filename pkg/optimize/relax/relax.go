// Package relax implements optimize.Engine by repeatedly pushing apart the
// leaf pairs that limit the scale, keeping every leaf on the unit square.
package relax

import (
	"slices"

	"github.com/chazu/pleat/pkg/optimize"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface checks.
var (
	_ optimize.Engine     = (*Engine)(nil)
	_ optimize.ModeSetter = (*Engine)(nil)
)

// Solver modes.
const (
	ModeFixedStep = 100 // constant step, stop at the first non-improving move
	ModeAdaptive  = 110 // halve the step after each non-improving move
)

const (
	defaultStep          = 1.0 / 64
	minStep              = 1e-9
	tieTolerance         = 1e-9
	defaultMaxIterations = 10000
)

// Paper is the region leaves are confined to.
var Paper = sdf.Box2{Min: v2.Vec{X: 0, Y: 0}, Max: v2.Vec{X: 1, Y: 1}}

// Engine is the iterative optimizer.
type Engine struct {
	mode          int
	step          float64
	maxIterations int
}

// New returns an Engine in ModeFixedStep.
func New() *Engine {
	return &Engine{
		mode:          ModeFixedStep,
		step:          defaultStep,
		maxIterations: defaultMaxIterations,
	}
}

// SetMode selects the solver mode. Unknown modes fall back to
// ModeFixedStep.
func (e *Engine) SetMode(mode int) {
	switch mode {
	case ModeAdaptive:
		e.mode = ModeAdaptive
	default:
		e.mode = ModeFixedStep
	}
}

// Mode returns the current solver mode.
func (e *Engine) Mode() int { return e.mode }

// SetMaxIterations bounds the number of moves tried.
func (e *Engine) SetMaxIterations(n int) { e.maxIterations = n }

// Optimize relaxes the leaf placement. Only accepted moves change the
// placement, so the scale never drops below its starting value. Moved
// leaves are clamped to Paper.
func (e *Engine) Optimize(p *optimize.Problem) (*optimize.Solution, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	pts := slices.Clone(p.Leaves)
	best, _, _, ok := optimize.Critical(pts, p.Dist)
	if !ok {
		return nil, &optimize.BadConvergenceError{Reason: optimize.ReasonNoConstraints}
	}

	step := e.step
	cand := make([]v2.Vec, len(pts))
	for iter := 1; iter <= e.maxIterations; iter++ {
		push := spread(pts, p.Dist, best)
		for k := range pts {
			cand[k] = pts[k]
			if push[k] != (v2.Vec{}) {
				cand[k] = clamp(pts[k].Add(push[k].Normalize().MulScalar(step)))
			}
		}

		if s, _, _, _ := optimize.Critical(cand, p.Dist); s > best {
			pts, cand = cand, pts
			best = s
			continue
		}

		if e.mode != ModeAdaptive {
			return optimize.Solve(pts, p.Dist, iter)
		}
		if step /= 2; step < minStep {
			return optimize.Solve(pts, p.Dist, iter)
		}
	}
	return nil, &optimize.BadConvergenceError{Reason: optimize.ReasonIterationLimit}
}

// spread returns, per leaf, the sum of unit vectors pointing away from every
// partner in a pair that attains the critical scale.
func spread(pts []v2.Vec, dist [][]float64, scale float64) []v2.Vec {
	push := make([]v2.Vec, len(pts))
	limit := scale * (1 + tieTolerance)
	for a := 0; a < len(pts); a++ {
		for b := a + 1; b < len(pts); b++ {
			d := dist[a][b]
			if d <= 0 {
				continue
			}
			sep := pts[a].Sub(pts[b])
			if sep.Length()/d > limit {
				continue
			}
			dir := v2.Vec{X: 1, Y: 0}
			if sep.Length() > 0 {
				dir = sep.Normalize()
			}
			push[a] = push[a].Add(dir)
			push[b] = push[b].Sub(dir)
		}
	}
	return push
}

func clamp(p v2.Vec) v2.Vec {
	return p.Max(Paper.Min).Min(Paper.Max)
}

// Package fixed implements optimize.Engine without moving any leaf: the
// scale is the closed-form maximum for the current placement.
package fixed

import (
	"slices"

	"github.com/chazu/pleat/pkg/optimize"
)

// Compile-time interface check.
var _ optimize.Engine = (*Engine)(nil)

// Engine is the closed-form optimizer.
type Engine struct{}

// New returns a new Engine.
func New() *Engine {
	return &Engine{}
}

// Optimize returns the largest scale the current leaf placement supports.
func (e *Engine) Optimize(p *optimize.Problem) (*optimize.Solution, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	return optimize.Solve(slices.Clone(p.Leaves), p.Dist, 0)
}

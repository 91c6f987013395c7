package optimize

import (
	"fmt"

	"github.com/chazu/pleat/pkg/model"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/samber/lo"
)

// ScaleOptimizer runs an Engine against a model's tree. On success the
// model's leaf nodes move to the solved locations and its Scale is set; on
// failure the model is left untouched.
type ScaleOptimizer struct {
	m       *model.Model
	engine  Engine
	leaves  []int
	problem *Problem
}

// NewScaleOptimizer returns an optimizer for m using e.
func NewScaleOptimizer(m *model.Model, e Engine) *ScaleOptimizer {
	return &ScaleOptimizer{m: m, engine: e}
}

// Initialize extracts the optimization problem from the model. It is called
// by Optimize when needed.
func (o *ScaleOptimizer) Initialize() error {
	if o.m == nil {
		return fmt.Errorf("optimize: no model")
	}
	leaves := o.m.Leaves()
	p := &Problem{
		Leaves: lo.Map(leaves, func(id int, _ int) v2.Vec {
			return o.m.MustNode(id).Loc
		}),
		Dist: o.m.TreeDistances(),
	}
	if err := p.Check(); err != nil {
		return err
	}
	o.leaves, o.problem = leaves, p
	return nil
}

// Problem returns the problem built by Initialize, or nil.
func (o *ScaleOptimizer) Problem() *Problem {
	return o.problem
}

// Optimize solves the problem and writes the result back to the model.
func (o *ScaleOptimizer) Optimize() error {
	if o.problem == nil {
		if err := o.Initialize(); err != nil {
			return err
		}
	}
	if o.engine == nil {
		return fmt.Errorf("optimize: no engine")
	}

	sol, err := o.engine.Optimize(o.problem)
	if err != nil {
		return err
	}
	if len(sol.Leaves) != len(o.leaves) {
		return fmt.Errorf("optimize: engine returned %d leaves, want %d", len(sol.Leaves), len(o.leaves))
	}
	if sol.Scale < MinScale {
		return ErrBadScale
	}

	for i, id := range o.leaves {
		o.m.MustNode(id).Loc = sol.Leaves[i]
	}
	o.m.Scale = sol.Scale
	return nil
}

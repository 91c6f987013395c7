package optimize_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/pleat/pkg/model"
	"github.com/chazu/pleat/pkg/optimize"
	"github.com/chazu/pleat/pkg/optimize/fixed"
	"github.com/chazu/pleat/pkg/optimize/relax"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// star returns a three-flap model: hub 1 with leaves 2, 3, 4 on unit edges.
func star() *model.Model {
	m := model.New("star")
	m.AddNode(1, v2.Vec{X: 0.5, Y: 0.5})
	m.AddNode(2, v2.Vec{X: 0.25, Y: 0.5})
	m.AddNode(3, v2.Vec{X: 0.75, Y: 0.5})
	m.AddNode(4, v2.Vec{X: 0.5, Y: 0.25})
	m.AddEdge(1, 2, 1)
	m.AddEdge(1, 3, 1)
	m.AddEdge(1, 4, 1)
	return m
}

func TestCritical(t *testing.T) {
	pts := []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0.5}}
	dist := [][]float64{
		{0, 2, 1},
		{2, 0, -1},
		{1, -1, 0},
	}
	s, i, j, ok := optimize.Critical(pts, dist)
	require.True(t, ok)
	assert.Equal(t, 0.5, s)
	assert.Equal(t, [2]int{0, 1}, [2]int{i, j}, "first pair wins ties")

	_, _, _, ok = optimize.Critical(pts, [][]float64{{0, -1, -1}, {-1, 0, -1}, {-1, -1, 0}})
	assert.False(t, ok)
}

func TestProblemCheck(t *testing.T) {
	var bce *optimize.BadConvergenceError

	err := (*optimize.Problem)(nil).Check()
	require.ErrorAs(t, err, &bce)
	assert.Equal(t, optimize.ReasonTooFewLeaves, bce.Reason)

	p := &optimize.Problem{Leaves: make([]v2.Vec, 2), Dist: [][]float64{{0, 1}}}
	assert.Error(t, p.Check())

	p.Dist = [][]float64{{0, 1}, {1}}
	assert.Error(t, p.Check())

	p.Dist = [][]float64{{0, 1}, {1, 0}}
	assert.NoError(t, p.Check())
}

func TestBadConvergenceErrorString(t *testing.T) {
	err := &optimize.BadConvergenceError{Reason: optimize.ReasonIterationLimit}
	assert.Equal(t, "optimize: bad convergence: iteration limit reached", err.Error())
}

func TestScaleOptimizerFixed(t *testing.T) {
	m := star()
	before := append([]model.Node(nil), m.Nodes...)

	opt := optimize.NewScaleOptimizer(m, fixed.New())
	require.NoError(t, opt.Initialize())
	assert.Len(t, opt.Problem().Leaves, 3)
	require.NoError(t, opt.Optimize())

	assert.InDelta(t, math.Sqrt(0.125)/2, m.Scale, 1e-12)
	assert.Equal(t, before, m.Nodes, "closed form does not move leaves")
}

func TestScaleOptimizerRelaxMovesLeaves(t *testing.T) {
	m := star()
	hub := m.Node(1).Loc

	require.NoError(t, optimize.NewScaleOptimizer(m, relax.New()).Optimize())

	fixedModel := star()
	require.NoError(t, optimize.NewScaleOptimizer(fixedModel, fixed.New()).Optimize())

	assert.Greater(t, m.Scale, fixedModel.Scale)
	assert.Equal(t, hub, m.Node(1).Loc, "interior nodes stay put")
	assert.NotEqual(t, v2.Vec{X: 0.25, Y: 0.5}, m.Node(2).Loc)
}

func TestScaleOptimizerTooFewLeaves(t *testing.T) {
	m := model.New("stick")
	m.AddNode(1, v2.Vec{X: 0.5, Y: 0.5})

	err := optimize.NewScaleOptimizer(m, fixed.New()).Optimize()

	var bce *optimize.BadConvergenceError
	require.ErrorAs(t, err, &bce)
	assert.Equal(t, optimize.ReasonTooFewLeaves, bce.Reason)
	assert.Zero(t, m.Scale)
}

func TestScaleOptimizerBadScaleKeepsModel(t *testing.T) {
	m := star()
	m.Scale = 0.125
	m.Node(3).Loc = m.Node(2).Loc // coincident leaves
	before := append([]model.Node(nil), m.Nodes...)

	err := optimize.NewScaleOptimizer(m, fixed.New()).Optimize()

	assert.True(t, errors.Is(err, optimize.ErrBadScale), "got %v", err)
	assert.Equal(t, 0.125, m.Scale)
	assert.Equal(t, before, m.Nodes)
}

type failingEngine struct{}

func (failingEngine) Optimize(*optimize.Problem) (*optimize.Solution, error) {
	return nil, &optimize.BadConvergenceError{Reason: optimize.ReasonNonFinite}
}

func TestScaleOptimizerEngineFailureKeepsModel(t *testing.T) {
	m := star()
	before := append([]model.Node(nil), m.Nodes...)

	err := optimize.NewScaleOptimizer(m, failingEngine{}).Optimize()

	var bce *optimize.BadConvergenceError
	require.ErrorAs(t, err, &bce)
	assert.Equal(t, before, m.Nodes)
	assert.Zero(t, m.Scale)
}

func TestModeSetterCapability(t *testing.T) {
	engines := map[string]optimize.Engine{
		"fixed": fixed.New(),
		"relax": relax.New(),
	}
	for name, e := range engines {
		_, ok := e.(optimize.ModeSetter)
		assert.Equal(t, name == "relax", ok, name)
	}
}

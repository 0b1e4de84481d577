package main

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceProblem() *ProblemDefinition {
	return &ProblemDefinition{
		Start:         State{X: -0.5, Y: 0, Yaw: 0},
		Goal:          State{X: 0, Y: 0.5, Yaw: 0},
		GoalTolerance: 0.05,
		TimeBudget:    20 * time.Second,
	}
}

func newReferencePlanner(seed int64) (*Planner, *StateSpace) {
	space := unitSpace()
	controls := referenceControls()
	planner := NewPlanner(space, controls, UnicyclePropagator{}, BoundsChecker{Space: space}, PlannerConfig{Seed: seed})
	return planner, space
}

func TestSolveReferenceScenario(t *testing.T) {
	t.Parallel()

	planner, space := newReferencePlanner(1)
	prob := referenceProblem()

	sol, err := planner.Solve(prob)
	require.NoError(t, err)
	require.Equal(t, Solved, sol.Status)
	require.Equal(t, Solved, planner.Status())
	require.NotEmpty(t, sol.Path)

	final := sol.Path[len(sol.Path)-1].State
	assert.LessOrEqual(t, space.Distance(final, prob.Goal), prob.GoalTolerance)

	// every accepted state sits inside the bounds
	tree := planner.Tree()
	for i := 0; i < tree.Len(); i++ {
		require.True(t, space.SatisfiesBounds(tree.At(i).State))
	}
}

func TestSolveDeterministicWithFixedSeed(t *testing.T) {
	t.Parallel()

	p1, _ := newReferencePlanner(12345)
	p2, _ := newReferencePlanner(12345)
	prob := referenceProblem()

	s1, err := p1.Solve(prob)
	require.NoError(t, err)
	s2, err := p2.Solve(prob)
	require.NoError(t, err)

	require.Equal(t, Solved, s1.Status)
	assert.Equal(t, s1.Iterations, s2.Iterations)
	assert.Equal(t, s1.TreeSize, s2.TreeSize)
	assert.Equal(t, s1.Path, s2.Path)
}

func TestSolveRoundTripRepropagation(t *testing.T) {
	t.Parallel()

	planner, _ := newReferencePlanner(2)
	sol, err := planner.Solve(referenceProblem())
	require.NoError(t, err)
	require.Equal(t, Solved, sol.Status)

	prop := UnicyclePropagator{}
	for i := 1; i < len(sol.Path); i++ {
		wp := sol.Path[i]
		replayed := prop.Propagate(sol.Path[i-1].State, wp.Control, wp.Duration)
		assert.InDelta(t, wp.State.X, replayed.X, 1e-12)
		assert.InDelta(t, wp.State.Y, replayed.Y, 1e-12)
		assert.InDelta(t, wp.State.Yaw, replayed.Yaw, 1e-12)
	}
}

func TestSolveZeroBudgetExhaustsImmediately(t *testing.T) {
	t.Parallel()

	planner, _ := newReferencePlanner(3)
	prob := referenceProblem()
	prob.TimeBudget = 0

	sol, err := planner.Solve(prob)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, sol.Status)
	assert.Equal(t, Exhausted, planner.Status())
	assert.Equal(t, 0, sol.Iterations)
	assert.Equal(t, 1, sol.TreeSize) // only the root
	assert.Empty(t, sol.Path)
}

func TestSolveIterationCapExhausts(t *testing.T) {
	t.Parallel()

	planner, _ := newReferencePlanner(4)
	prob := referenceProblem()
	prob.GoalTolerance = 1e-9 // practically unreachable
	prob.MaxIterations = 50

	sol, err := planner.Solve(prob)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, sol.Status)
	assert.Equal(t, 50, sol.Iterations)
}

func TestSolveConfigurationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*ProblemDefinition)
	}{
		{"start out of bounds", func(pd *ProblemDefinition) { pd.Start.X = 2 }},
		{"goal out of bounds", func(pd *ProblemDefinition) { pd.Goal.Y = -5 }},
		{"zero tolerance", func(pd *ProblemDefinition) { pd.GoalTolerance = 0 }},
		{"negative tolerance", func(pd *ProblemDefinition) { pd.GoalTolerance = -0.1 }},
		{"negative budget", func(pd *ProblemDefinition) { pd.TimeBudget = -time.Second }},
		{"negative iteration cap", func(pd *ProblemDefinition) { pd.MaxIterations = -1 }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			planner, _ := newReferencePlanner(5)
			prob := referenceProblem()
			tc.mutate(prob)

			sol, err := planner.Solve(prob)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Nil(t, sol)
			// no iteration ran
			assert.Equal(t, Initialized, planner.Status())
		})
	}
}

func TestSolveStartInsideGoalRegion(t *testing.T) {
	t.Parallel()

	planner, _ := newReferencePlanner(6)
	prob := referenceProblem()
	prob.Goal = prob.Start

	sol, err := planner.Solve(prob)
	require.NoError(t, err)
	assert.Equal(t, Solved, sol.Status)
	require.Len(t, sol.Path, 1)
	assert.Equal(t, prob.Start, sol.Path[0].State)
}

func TestSolveNeverAdmitsInvalidStates(t *testing.T) {
	t.Parallel()

	space := unitSpace()
	controls := referenceControls()
	square := orb.Polygon{{
		{-0.1, 0.1}, {0.1, 0.1}, {0.1, 0.3}, {-0.1, 0.3}, {-0.1, 0.1},
	}}
	checker := ObstacleChecker{Space: space, Obstacles: NewObstacleIndex([]orb.Polygon{square})}

	planner := NewPlanner(space, controls, UnicyclePropagator{}, checker, PlannerConfig{Seed: 7})
	sol, err := planner.Solve(referenceProblem())
	require.NoError(t, err)
	require.Equal(t, Solved, sol.Status)

	tree := planner.Tree()
	for i := 0; i < tree.Len(); i++ {
		require.True(t, checker.IsValid(tree.At(i).State))
	}
}

func TestPlannerResetAllowsAnotherSolve(t *testing.T) {
	t.Parallel()

	planner, _ := newReferencePlanner(8)
	sol, err := planner.Solve(referenceProblem())
	require.NoError(t, err)
	require.Equal(t, Solved, sol.Status)

	planner.Reset()
	assert.Equal(t, Initialized, planner.Status())
	assert.Nil(t, planner.Tree())

	sol, err = planner.Solve(referenceProblem())
	require.NoError(t, err)
	assert.Equal(t, Solved, sol.Status)
}

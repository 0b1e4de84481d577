package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBatchRunsEveryPair(t *testing.T) {
	t.Parallel()

	space := unitSpace()
	controls := referenceControls()
	checker := BoundsChecker{Space: space}

	pairs := []StartGoalPair{
		{Start: State{X: -0.5}, Goal: State{X: -0.5}}, // self-pair
		{Start: State{X: -0.5}, Goal: State{Y: 0.5}},
		{Start: State{X: 0.5}, Goal: State{X: -0.5, Y: -0.5}},
	}

	results, err := SolveBatch(space, controls, UnicyclePropagator{}, checker, pairs, BatchConfig{
		Planner: PlannerConfig{Seed: 1},
		Problem: ProblemDefinition{
			GoalTolerance: 0.05,
			TimeBudget:    5 * time.Second,
		},
		Workers: 2,
	})
	require.NoError(t, err)
	require.Len(t, results, len(pairs))

	for i, res := range results {
		require.NotNil(t, res.Solution, "pair %d missing a solution", i)
		assert.Equal(t, pairs[i], res.Pair)
		assert.Contains(t, []Status{Solved, Exhausted}, res.Solution.Status)
	}

	// a self-pair is solved at the root
	assert.Equal(t, Solved, results[0].Solution.Status)
	assert.Len(t, results[0].Solution.Path, 1)
}

func TestSolveBatchHonorsMaxPairs(t *testing.T) {
	t.Parallel()

	space := unitSpace()
	controls := referenceControls()

	pairs := make([]StartGoalPair, 20)
	for i := range pairs {
		pairs[i] = StartGoalPair{Start: State{X: -0.5}, Goal: State{X: -0.5}}
	}

	results, err := SolveBatch(space, controls, UnicyclePropagator{}, BoundsChecker{Space: space}, pairs, BatchConfig{
		Problem:  ProblemDefinition{GoalTolerance: 0.05, TimeBudget: time.Second},
		MaxPairs: 5,
	})
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestSolveBatchSurfacesConfigurationErrors(t *testing.T) {
	t.Parallel()

	space := unitSpace()
	controls := referenceControls()

	pairs := []StartGoalPair{{Start: State{X: -0.5}, Goal: State{Y: 0.5}}}
	_, err := SolveBatch(space, controls, UnicyclePropagator{}, BoundsChecker{Space: space}, pairs, BatchConfig{
		Problem: ProblemDefinition{GoalTolerance: -1, TimeBudget: time.Second},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

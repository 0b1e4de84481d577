package main

import (
	"errors"
	"fmt"
	"time"
)

// ErrConfiguration marks setup problems detected before planning starts.
// Callers match it with errors.Is.
var ErrConfiguration = errors.New("invalid configuration")

// ProblemDefinition is the immutable input to one solve: where to start,
// what counts as reaching the goal, and how long to try. A zero TimeBudget
// is legal and exhausts immediately after the root insert; only a negative
// budget is a configuration error.
type ProblemDefinition struct {
	Start         State
	Goal          State
	GoalTolerance float64
	TimeBudget    time.Duration
	MaxIterations int // zero means no iteration cap
}

// Validate checks the problem against the spaces it will be solved in.
// All configuration errors surface here, before any iteration runs.
func (pd *ProblemDefinition) Validate(space *StateSpace, controls *ControlSpace) error {
	if err := space.Validate(); err != nil {
		return err
	}
	if err := controls.Validate(); err != nil {
		return err
	}
	if !space.SatisfiesBounds(pd.Start) {
		return fmt.Errorf("%w: start state (%.4f, %.4f) out of bounds", ErrConfiguration, pd.Start.X, pd.Start.Y)
	}
	if !space.SatisfiesBounds(pd.Goal) {
		return fmt.Errorf("%w: goal state (%.4f, %.4f) out of bounds", ErrConfiguration, pd.Goal.X, pd.Goal.Y)
	}
	if pd.GoalTolerance <= 0 {
		return fmt.Errorf("%w: goal tolerance must be positive, got %g", ErrConfiguration, pd.GoalTolerance)
	}
	if pd.TimeBudget < 0 {
		return fmt.Errorf("%w: time budget must not be negative, got %s", ErrConfiguration, pd.TimeBudget)
	}
	if pd.MaxIterations < 0 {
		return fmt.Errorf("%w: iteration cap must not be negative, got %d", ErrConfiguration, pd.MaxIterations)
	}
	return nil
}

package main

import (
	"log"

	"gonum.org/v1/gonum/floats"
)

// StartGoalPair is one candidate planning problem's endpoints.
type StartGoalPair struct {
	Start State
	Goal  State
}

const (
	// minFreeStates is the grid size the enumeration grows toward
	// before pairing.
	minFreeStates = 1000
	// initialGridMarks is the starting per-axis resolution.
	initialGridMarks = 11
	// maxGridMarks stops the growth when obstacles leave too little
	// free space to ever reach minFreeStates.
	maxGridMarks = 1024
)

// GridStates discretizes the bounded space with marks points per axis and
// keeps the states that are strictly inside the bounds and valid. A nil
// checker means bounds-only. Yaw is zero for every grid state.
func GridStates(space *StateSpace, valid ValidityChecker, marks int) []State {
	xs := floats.Span(make([]float64, marks), space.XBounds.Low, space.XBounds.High)
	ys := floats.Span(make([]float64, marks), space.YBounds.Low, space.YBounds.High)

	states := make([]State, 0, marks*marks)
	for _, y := range ys {
		for _, x := range xs {
			s := State{X: x, Y: y}
			if !strictlyInside(space, s) {
				continue
			}
			if valid != nil && !valid.IsValid(s) {
				continue
			}
			states = append(states, s)
		}
	}
	return states
}

// strictlyInside excludes states on the boundary itself; a pose on the
// wall is a useless endpoint for a bounded plan.
func strictlyInside(space *StateSpace, s State) bool {
	return s.X > space.XBounds.Low && s.X < space.XBounds.High &&
		s.Y > space.YBounds.Low && s.Y < space.YBounds.High
}

// GridStartGoalPairs grows the grid resolution until at least
// minFreeStates free states exist, then returns every ordered pair,
// self-pairs included. The enumeration is fully deterministic for a given
// space and checker.
func GridStartGoalPairs(space *StateSpace, valid ValidityChecker) []StartGoalPair {
	marks := initialGridMarks
	var states []State
	for {
		states = GridStates(space, valid, marks)
		if len(states) >= minFreeStates {
			break
		}
		if marks >= maxGridMarks {
			log.Printf("⚠️  Grid capped at %d marks with only %d free states\n", marks, len(states))
			break
		}
		marks++
	}

	pairs := make([]StartGoalPair, 0, len(states)*len(states))
	for _, s := range states {
		for _, g := range states {
			pairs = append(pairs, StartGoalPair{Start: s, Goal: g})
		}
	}
	return pairs
}

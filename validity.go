package main

import "github.com/paulmach/orb"

// ValidityChecker decides whether a state may enter the search tree. It
// must be a pure predicate: the planner calls it once per propagated
// candidate and expects no side effects.
type ValidityChecker interface {
	IsValid(s State) bool
}

// BoundsChecker accepts any state inside the state-space bounds. This is
// the default when no obstacles are configured.
type BoundsChecker struct {
	Space *StateSpace
}

func (bc BoundsChecker) IsValid(s State) bool {
	return bc.Space.SatisfiesBounds(s)
}

// ObstacleChecker rejects out-of-bounds states and states inside any
// obstacle polygon.
type ObstacleChecker struct {
	Space     *StateSpace
	Obstacles *ObstacleIndex
}

func (oc ObstacleChecker) IsValid(s State) bool {
	if !oc.Space.SatisfiesBounds(s) {
		return false
	}
	return !oc.Obstacles.Contains(orb.Point{s.X, s.Y})
}

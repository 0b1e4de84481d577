package main

import (
	"fmt"
	"math"
	"math/rand"
)

// StateSpace is the bounded SE(2) region the planner samples from.
// YawWeight controls how much heading difference contributes to the
// metric; the zero default reproduces the classic position-only RRT
// distance, where two poses at the same spot are indistinguishable.
type StateSpace struct {
	XBounds   Interval
	YBounds   Interval
	YawWeight float64
}

// Validate checks the bounds before any planning runs.
func (ss *StateSpace) Validate() error {
	if !ss.XBounds.Valid() {
		return fmt.Errorf("%w: x bounds [%g, %g] have no extent", ErrConfiguration, ss.XBounds.Low, ss.XBounds.High)
	}
	if !ss.YBounds.Valid() {
		return fmt.Errorf("%w: y bounds [%g, %g] have no extent", ErrConfiguration, ss.YBounds.Low, ss.YBounds.High)
	}
	if ss.YawWeight < 0 {
		return fmt.Errorf("%w: yaw weight must not be negative, got %g", ErrConfiguration, ss.YawWeight)
	}
	return nil
}

// Sample draws a state uniformly at random, independently per dimension.
// Yaw is drawn from [-π, π).
func (ss *StateSpace) Sample(rng *rand.Rand) State {
	return State{
		X:   ss.XBounds.Low + rng.Float64()*(ss.XBounds.High-ss.XBounds.Low),
		Y:   ss.YBounds.Low + rng.Float64()*(ss.YBounds.High-ss.YBounds.Low),
		Yaw: -math.Pi + rng.Float64()*2*math.Pi,
	}
}

// Distance is the planner metric: Euclidean in (x, y), plus the weighted
// wrapped heading difference when YawWeight is positive.
func (ss *StateSpace) Distance(a, b State) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if ss.YawWeight == 0 {
		return math.Sqrt(dx*dx + dy*dy)
	}
	dyaw := ss.YawWeight * NormalizeYaw(a.Yaw-b.Yaw)
	return math.Sqrt(dx*dx + dy*dy + dyaw*dyaw)
}

// SatisfiesBounds reports whether the position lies inside the bounds.
// Yaw is unconstrained.
func (ss *StateSpace) SatisfiesBounds(s State) bool {
	return ss.XBounds.Contains(s.X) && ss.YBounds.Contains(s.Y)
}

// EnforceBounds clamps the position into bounds and wraps yaw to [-π, π).
func (ss *StateSpace) EnforceBounds(s State) State {
	return State{
		X:   ss.XBounds.Clamp(s.X),
		Y:   ss.YBounds.Clamp(s.Y),
		Yaw: NormalizeYaw(s.Yaw),
	}
}

// NormalizeYaw wraps an angle to [-π, π).
func NormalizeYaw(yaw float64) float64 {
	yaw = math.Mod(yaw+math.Pi, 2*math.Pi)
	if yaw < 0 {
		yaw += 2 * math.Pi
	}
	return yaw - math.Pi
}

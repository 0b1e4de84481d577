package main

import "math"

// Propagator advances a state under a control applied for a duration.
type Propagator interface {
	Propagate(s State, c Control, duration float64) State
}

// UnicyclePropagator integrates the unicycle model with a single Euler
// step. First-order on purpose: fixed-seed runs must reproduce
// trajectories bit-for-bit, so there is exactly one way to integrate.
type UnicyclePropagator struct{}

func (UnicyclePropagator) Propagate(s State, c Control, duration float64) State {
	return State{
		X:   s.X + c.V*duration*math.Cos(s.Yaw),
		Y:   s.Y + c.V*duration*math.Sin(s.Yaw),
		Yaw: s.Yaw + c.Omega*duration,
	}
}

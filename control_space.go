package main

import (
	"fmt"
	"math/rand"
)

// DefaultStep is the propagation step used when a request does not set
// one. Small relative to the unit workspace so single edges stay short.
const DefaultStep = 0.1

// ControlSpace bounds the unicycle inputs and the propagation step.
// MinStep == MaxStep gives a fixed step; a wider interval samples each
// edge duration uniformly from [MinStep, MaxStep].
type ControlSpace struct {
	VBounds     Interval
	OmegaBounds Interval
	MinStep     float64
	MaxStep     float64
}

// NewControlSpace builds a control space with a fixed propagation step.
func NewControlSpace(vBounds, omegaBounds Interval, step float64) *ControlSpace {
	return &ControlSpace{
		VBounds:     vBounds,
		OmegaBounds: omegaBounds,
		MinStep:     step,
		MaxStep:     step,
	}
}

// Validate checks the control bounds and step interval.
func (cs *ControlSpace) Validate() error {
	if !cs.VBounds.Valid() {
		return fmt.Errorf("%w: speed bounds [%g, %g] have no extent", ErrConfiguration, cs.VBounds.Low, cs.VBounds.High)
	}
	if !cs.OmegaBounds.Valid() {
		return fmt.Errorf("%w: angular rate bounds [%g, %g] have no extent", ErrConfiguration, cs.OmegaBounds.Low, cs.OmegaBounds.High)
	}
	if cs.MinStep <= 0 {
		return fmt.Errorf("%w: propagation step must be positive, got %g", ErrConfiguration, cs.MinStep)
	}
	if cs.MaxStep < cs.MinStep {
		return fmt.Errorf("%w: step range [%g, %g] is inverted", ErrConfiguration, cs.MinStep, cs.MaxStep)
	}
	return nil
}

// SampleControl draws (v, ω) uniformly within their bounds.
func (cs *ControlSpace) SampleControl(rng *rand.Rand) Control {
	return Control{
		V:     cs.VBounds.Low + rng.Float64()*(cs.VBounds.High-cs.VBounds.Low),
		Omega: cs.OmegaBounds.Low + rng.Float64()*(cs.OmegaBounds.High-cs.OmegaBounds.Low),
	}
}

// SampleDuration draws a propagation duration. A degenerate step interval
// always returns MinStep and consumes no randomness, so fixed-step and
// ranged-step runs with the same seed stay individually reproducible.
func (cs *ControlSpace) SampleDuration(rng *rand.Rand) float64 {
	if cs.MaxStep <= cs.MinStep {
		return cs.MinStep
	}
	return cs.MinStep + rng.Float64()*(cs.MaxStep-cs.MinStep)
}

package main

import (
	"math/rand"
	"time"
)

// DefaultGoalBias is the probability of aiming an iteration directly at
// the goal instead of a uniform sample.
const DefaultGoalBias = 0.05

// PlannerConfig tunes the RRT loop.
type PlannerConfig struct {
	// GoalBias is the goal-sampling probability. Zero selects
	// DefaultGoalBias; a negative value disables biasing entirely.
	GoalBias float64
	// Seed initializes the planner's random source. Two solves of the
	// same problem with the same seed produce identical trees.
	Seed int64
	// UseSpatialIndex switches the nearest-neighbor lookup to an R-tree.
	// Worth it for large trees; the default linear scan is exact and
	// breaks ties by insertion order.
	UseSpatialIndex bool
}

// Solution is the outcome of one solve call. Path is only populated when
// Status is Solved.
type Solution struct {
	Status     Status
	Path       []Waypoint
	Iterations int
	TreeSize   int
	Elapsed    time.Duration
}

// Planner grows a tree from the start state toward randomly sampled
// targets until a propagated state lands within the goal tolerance. One
// planner runs one solve at a time; independent problems get independent
// planners and may run in parallel.
type Planner struct {
	space    *StateSpace
	controls *ControlSpace
	prop     Propagator
	valid    ValidityChecker
	cfg      PlannerConfig

	rng      *rand.Rand
	tree     *Tree
	goalNode *TreeNode
	status   Status
}

// NewPlanner wires the planner's strategy objects together. The planner
// never reaches past these: sampling, propagation, and validity all go
// through the injected components.
func NewPlanner(space *StateSpace, controls *ControlSpace, prop Propagator, valid ValidityChecker, cfg PlannerConfig) *Planner {
	if cfg.GoalBias == 0 {
		cfg.GoalBias = DefaultGoalBias
	} else if cfg.GoalBias < 0 {
		cfg.GoalBias = 0
	}
	return &Planner{
		space:    space,
		controls: controls,
		prop:     prop,
		valid:    valid,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		status:   Initialized,
	}
}

// Status returns the planner's lifecycle position.
func (p *Planner) Status() Status {
	return p.status
}

// Tree exposes the grown search tree of the last solve.
func (p *Planner) Tree() *Tree {
	return p.tree
}

// Reset discards the tree so the planner can run another solve. The
// random source keeps its sequence; reseed via a new planner if a fresh
// attempt must be reproducible on its own.
func (p *Planner) Reset() {
	p.tree = nil
	p.goalNode = nil
	p.status = Initialized
}

// Solve runs the RRT loop until the goal region is reached or the budget
// runs out. Exhaustion is a normal outcome reported in the solution
// status; only configuration problems return an error. Rejected candidate
// states are expected and silently retried with fresh samples.
func (p *Planner) Solve(prob *ProblemDefinition) (*Solution, error) {
	if err := prob.Validate(p.space, p.controls); err != nil {
		return nil, err
	}

	start := time.Now()
	p.tree = NewTree(p.space, p.cfg.UseSpatialIndex)
	p.goalNode = nil
	root := p.tree.Insert(nil, prob.Start, Control{}, 0)
	p.status = Running

	// the start may already satisfy the goal region
	if p.space.Distance(prob.Start, prob.Goal) <= prob.GoalTolerance {
		p.goalNode = root
		p.status = Solved
	}

	iterations := 0
	for p.status == Running {
		// budget checks happen between iterations; an in-flight
		// propagation always completes
		if time.Since(start) >= prob.TimeBudget {
			p.status = Exhausted
			break
		}
		if prob.MaxIterations > 0 && iterations >= prob.MaxIterations {
			p.status = Exhausted
			break
		}
		iterations++

		target := p.space.Sample(p.rng)
		if p.rng.Float64() < p.cfg.GoalBias {
			target = prob.Goal
		}

		nearNode := p.tree.Nearest(target)
		control := p.controls.SampleControl(p.rng)
		duration := p.controls.SampleDuration(p.rng)

		candidate := p.prop.Propagate(nearNode.State, control, duration)
		if !p.valid.IsValid(candidate) {
			continue
		}

		newNode := p.tree.Insert(nearNode, candidate, control, duration)
		if p.space.Distance(candidate, prob.Goal) <= prob.GoalTolerance {
			p.goalNode = newNode
			p.status = Solved
		}
	}

	sol := &Solution{
		Status:     p.status,
		Iterations: iterations,
		TreeSize:   p.tree.Len(),
		Elapsed:    time.Since(start),
	}
	if p.status == Solved {
		sol.Path = p.tree.PathTo(p.goalNode)
	}
	return sol, nil
}

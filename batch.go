package main

import (
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchConfig controls a batch run over enumerated start/goal pairs.
// Problem supplies the shared tolerance and budgets; its Start and Goal
// are overwritten per pair.
type BatchConfig struct {
	Planner  PlannerConfig
	Problem  ProblemDefinition
	MaxPairs int // zero means all pairs
	Workers  int // zero means GOMAXPROCS
}

// BatchResult pairs a problem's endpoints with its outcome.
type BatchResult struct {
	Pair     StartGoalPair
	Solution *Solution
}

// SolveBatch plans every pair with an independent planner per pair. Pairs
// share nothing mutable, so this is the natural parallelism boundary; the
// individual solves stay sequential inside. Pair i runs with seed base+i
// so the whole batch is reproducible.
func SolveBatch(space *StateSpace, controls *ControlSpace, prop Propagator, valid ValidityChecker, pairs []StartGoalPair, cfg BatchConfig) ([]BatchResult, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxPairs > 0 && len(pairs) > cfg.MaxPairs {
		pairs = pairs[:cfg.MaxPairs]
	}

	startTime := time.Now()
	log.Printf("🗺️  Solving batch of %d pairs with %d workers...\n", len(pairs), cfg.Workers)

	results := make([]BatchResult, len(pairs))

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			prob := cfg.Problem
			prob.Start = pair.Start
			prob.Goal = pair.Goal

			pcfg := cfg.Planner
			pcfg.Seed = cfg.Planner.Seed + int64(i)

			planner := NewPlanner(space, controls, prop, valid, pcfg)
			sol, err := planner.Solve(&prob)
			if err != nil {
				return err
			}
			results[i] = BatchResult{Pair: pair, Solution: sol}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	solved := 0
	for _, r := range results {
		if r.Solution.Status == Solved {
			solved++
		}
	}

	elapsed := time.Since(startTime)
	log.Printf("   ✅ Batch done: %d/%d solved\n", solved, len(results))
	log.Printf("   ⏱️  Batch time: %.2f seconds\n", elapsed.Seconds())

	return results, nil
}

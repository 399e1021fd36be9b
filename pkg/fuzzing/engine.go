/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Fuzz engine for the SatTest harness. Binds one mutation strategy
and one mined common pattern to a fuzzing session and applies the resulting
mutator to captured frames. The strategy is fixed at construction and never
changes mid-session.
*/

package fuzzing

import (
	"fmt"
	"math/rand"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// Engine applies the session's mutation strategy to captured frames
type Engine struct {
	strategy interfaces.FuzzStrategy
	mutator  interfaces.Mutator
}

// NewEngine creates a fuzz engine for the given strategy. The common pattern
// is only consulted by the heuristic strategy and is reused for every
// mutation in the session.
func NewEngine(strategy interfaces.FuzzStrategy, pattern interfaces.CommonPattern, classifier interfaces.Classifier, rng *rand.Rand) (*Engine, error) {
	var mutator interfaces.Mutator
	switch strategy {
	case interfaces.StrategyRandom:
		mutator = NewRandomMutator(DefaultMutationRate, rng)
	case interfaces.StrategyHeuristic:
		mutator = NewHeuristicMutator(pattern, classifier, rng)
	default:
		return nil, fmt.Errorf("unknown fuzzing strategy: %q", strategy)
	}

	if err := mutator.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize mutator: %w", err)
	}

	return &Engine{
		strategy: strategy,
		mutator:  mutator,
	}, nil
}

// Strategy returns the session's fuzzing strategy
func (e *Engine) Strategy() interfaces.FuzzStrategy {
	return e.strategy
}

// Mutator returns the active mutator
func (e *Engine) Mutator() interfaces.Mutator {
	return e.mutator
}

// Mutate applies the session's strategy to a frame, returning a new frame of
// the same length
func (e *Engine) Mutate(frame *interfaces.Frame) (*interfaces.Frame, error) {
	mutated, err := e.mutator.Mutate(frame)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", e.mutator.Name(), err)
	}
	return mutated, nil
}

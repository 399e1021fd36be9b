/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: Tests for the fuzz engine. Verifies strategy selection, the
unknown-strategy error, and that the configured mutator is applied.
*/

package fuzzing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/sattest/pkg/interfaces"
	"github.com/kleascm/sattest/pkg/protocol"
)

// TestEngineStrategySelection tests that each strategy binds its mutator
func TestEngineStrategySelection(t *testing.T) {
	classifier := protocol.NewFrameClassifier()
	rng := rand.New(rand.NewSource(1))

	random, err := NewEngine(interfaces.StrategyRandom, interfaces.CommonPattern{}, classifier, rng)
	require.NoError(t, err)
	assert.Equal(t, "RandomMutator", random.Mutator().Name())
	assert.Equal(t, interfaces.StrategyRandom, random.Strategy())

	heuristic, err := NewEngine(interfaces.StrategyHeuristic, interfaces.CommonPattern{}, classifier, rng)
	require.NoError(t, err)
	assert.Equal(t, "HeuristicMutator", heuristic.Mutator().Name())
	assert.Equal(t, interfaces.StrategyHeuristic, heuristic.Strategy())
}

// TestEngineUnknownStrategy tests the unknown-strategy error
func TestEngineUnknownStrategy(t *testing.T) {
	_, err := NewEngine("exhaustive", interfaces.CommonPattern{}, protocol.NewFrameClassifier(), rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

// TestEngineMutatePreservesLength tests that both strategies preserve length
func TestEngineMutatePreservesLength(t *testing.T) {
	classifier := protocol.NewFrameClassifier()
	frame := &interfaces.Frame{Data: make([]byte, 128)}

	for _, strategy := range []interfaces.FuzzStrategy{interfaces.StrategyRandom, interfaces.StrategyHeuristic} {
		engine, err := NewEngine(strategy, interfaces.CommonPattern{}, classifier, rand.New(rand.NewSource(2)))
		require.NoError(t, err)

		mutated, err := engine.Mutate(frame)
		require.NoError(t, err)
		assert.Equal(t, len(frame.Data), len(mutated.Data), "strategy %s changed the length", strategy)
	}
}

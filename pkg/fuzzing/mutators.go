/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: mutators.go
Description: Mutation strategies for the SatTest harness. Implements the random
byte-substitution mutator and the heuristic structure-aware mutator that XORs
mined common patterns and randomizes protocol fields for DVB-S2 and CCSDS
frames. Both strategies are length-preserving pure transforms, deterministic
under a supplied random source for testability.
*/

package fuzzing

import (
	"bytes"
	"errors"
	"math/rand"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// DefaultMutationRate is the per-byte replacement probability of the random
// strategy.
const DefaultMutationRate = 0.05

// minFieldFrameSize is the smallest buffer the protocol field overwrite can
// touch without writing out of bounds.
const minFieldFrameSize = 5

// ErrFrameTooShort reports a buffer too small for protocol field mutation.
var ErrFrameTooShort = errors.New("frame too short for protocol field mutation")

// dvbs2FrameLengths are the two FECFRAME sizes a DVB-S2 frame advertises.
// Only the low byte fits the field slot; the truncation is intended wire
// behavior.
var dvbs2FrameLengths = []int{16200, 64800}

// RandomMutator implements the random fuzzing strategy. Each byte is
// independently replaced with a uniformly random value with probability
// mutationRate.
type RandomMutator struct {
	mutationRate float64
	rng          *rand.Rand
}

// NewRandomMutator creates a new random mutator with the given per-byte
// mutation rate and random source
func NewRandomMutator(mutationRate float64, rng *rand.Rand) *RandomMutator {
	return &RandomMutator{
		mutationRate: mutationRate,
		rng:          rng,
	}
}

// Mutate creates a new frame by randomly substituting bytes in the original
func (m *RandomMutator) Mutate(frame *interfaces.Frame) (*interfaces.Frame, error) {
	mutated := make([]byte, len(frame.Data))
	copy(mutated, frame.Data)

	for i := 0; i < len(mutated); i++ {
		if m.rng.Float64() < m.mutationRate {
			mutated[i] = byte(m.rng.Intn(256))
		}
	}

	return &interfaces.Frame{
		Data:     mutated,
		Protocol: frame.Protocol,
	}, nil
}

// Name returns the name of this mutator
func (m *RandomMutator) Name() string {
	return "RandomMutator"
}

// Description returns a description of this mutator
func (m *RandomMutator) Description() string {
	return "Replaces individual bytes with uniformly random values"
}

// Init prepares the mutator for use (no-op for RandomMutator)
func (m *RandomMutator) Init() error { return nil }

// HeuristicMutator implements the structure-aware fuzzing strategy. It XORs
// every occurrence of the session's mined common pattern, re-classifies the
// result, and randomizes well-known protocol fields when the frame still
// matches DVB-S2 or CCSDS.
type HeuristicMutator struct {
	pattern    interfaces.CommonPattern
	classifier interfaces.Classifier
	rng        *rand.Rand
}

// NewHeuristicMutator creates a new heuristic mutator bound to a session's
// mined common pattern
func NewHeuristicMutator(pattern interfaces.CommonPattern, classifier interfaces.Classifier, rng *rand.Rand) *HeuristicMutator {
	return &HeuristicMutator{
		pattern:    pattern,
		classifier: classifier,
		rng:        rng,
	}
}

// Mutate creates a new frame by XORing pattern occurrences and randomizing
// protocol fields
func (m *HeuristicMutator) Mutate(frame *interfaces.Frame) (*interfaces.Frame, error) {
	mutated := make([]byte, len(frame.Data))
	copy(mutated, frame.Data)

	m.xorPatternWindows(mutated)

	proto := m.classifier.Classify(mutated)
	if proto != interfaces.ProtocolUnknown {
		if err := m.randomizeFields(mutated, proto); err != nil {
			return nil, err
		}
	}

	return &interfaces.Frame{
		Data:     mutated,
		Protocol: proto,
	}, nil
}

// xorPatternWindows XORs every byte of every pattern occurrence with 0xFF.
// The scan never skips ahead after a match: each position is re-checked
// against the buffer as already mutated, so a window produced by an earlier
// XOR in the same pass is processed too and overlapping matches may
// double-toggle. This scan order is observable behavior and must not be
// changed.
func (m *HeuristicMutator) xorPatternWindows(data []byte) {
	plen := len(m.pattern.Sequence)
	if plen == 0 || plen > len(data) {
		return
	}
	for i := 0; i+plen <= len(data); i++ {
		if bytes.Equal(data[i:i+plen], m.pattern.Sequence) {
			for j := 0; j < plen; j++ {
				data[i+j] ^= 0xFF
			}
		}
	}
}

// randomizeFields overwrites the well-known header fields of a classified
// frame with random in-range values.
func (m *HeuristicMutator) randomizeFields(data []byte, proto interfaces.Protocol) error {
	if len(data) < minFieldFrameSize {
		return ErrFrameTooShort
	}

	switch proto {
	case interfaces.ProtocolDVBS2:
		data[1] = byte(m.rng.Intn(16))                             // MODCOD
		data[2] = byte(m.rng.Intn(2))                              // PILOT
		data[3] = byte(20 + m.rng.Intn(16))                        // ROLL-OFF
		data[4] = byte(dvbs2FrameLengths[m.rng.Intn(2)])           // FRAME LENGTH
	case interfaces.ProtocolCCSDS:
		data[1] = byte(1 + m.rng.Intn(255))                        // SPACECRAFT ID
		data[2] = byte(m.rng.Intn(8))                              // VIRTUAL CHANNEL ID
		data[3] = byte(1 + m.rng.Intn(10))                         // FRAME LENGTH
		data[4] = byte(m.rng.Intn(2))                              // REED-SOLOMON ENCODING
	}
	return nil
}

// Name returns the name of this mutator
func (m *HeuristicMutator) Name() string {
	return "HeuristicMutator"
}

// Description returns a description of this mutator
func (m *HeuristicMutator) Description() string {
	return "XORs mined common patterns and randomizes structure-aware protocol fields"
}

// Init prepares the mutator for use (no-op for HeuristicMutator)
func (m *HeuristicMutator) Init() error { return nil }

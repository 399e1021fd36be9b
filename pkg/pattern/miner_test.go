/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: miner_test.go
Description: Tests for the repeated-pattern miner. Verifies the longest
repeated sequence, the ascending-length/ascending-offset tie-break, and
equivalence with the naive cubic enumeration on randomized small inputs.
*/

package pattern

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mineNaive is the reference enumeration: candidate lengths ascending, start
// offsets ascending, result updated only for strictly longer repeats.
func mineNaive(data []byte) []byte {
	n := len(data)
	var best []byte
	for length := 1; length < n; length++ {
		for start := 0; start+length <= n; start++ {
			seg := data[start : start+length]
			if countOccurrences(data, seg) > 1 && length > len(best) {
				best = seg
			}
		}
	}
	return best
}

// TestMineNoRepeats tests that a buffer without repeated substrings yields an empty pattern
func TestMineNoRepeats(t *testing.T) {
	miner := NewPatternMiner()

	result := miner.Mine([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	assert.True(t, result.Empty())
	assert.Zero(t, result.Count)
}

// TestMineABAB tests that the length-2 repeat beats any length-1 repeat
func TestMineABAB(t *testing.T) {
	miner := NewPatternMiner()

	result := miner.Mine([]byte("ABAB"))
	assert.Equal(t, []byte("AB"), result.Sequence)
	assert.Equal(t, 2, result.Count)
}

// TestMineOverlapping tests that overlapping occurrences count as repeats
func TestMineOverlapping(t *testing.T) {
	miner := NewPatternMiner()

	// "AA" occurs at offsets 0 and 1; the occurrences overlap.
	result := miner.Mine([]byte("AAA"))
	assert.Equal(t, []byte("AA"), result.Sequence)
	assert.Equal(t, 2, result.Count)
}

// TestMineTieBreak tests that the smallest offset wins at the maximal length
func TestMineTieBreak(t *testing.T) {
	miner := NewPatternMiner()

	// Both "B" and "A" repeat with the maximal length 1; "B" starts first.
	result := miner.Mine([]byte("BBAA"))
	assert.Equal(t, []byte("B"), result.Sequence)

	result = miner.Mine([]byte("XYQQXYQQ"))
	assert.Equal(t, []byte("XYQQ"), result.Sequence)
}

// TestMineDeterministic tests that reapplying the miner is idempotent
func TestMineDeterministic(t *testing.T) {
	miner := NewPatternMiner()

	data := []byte("the quick brown fox jumps over the lazy dog")
	first := miner.Mine(data)
	second := miner.Mine(data)
	assert.Equal(t, first.Sequence, second.Sequence)
	assert.Equal(t, first.Count, second.Count)
}

// TestMineTinyBuffers tests degenerate buffer sizes
func TestMineTinyBuffers(t *testing.T) {
	miner := NewPatternMiner()

	assert.True(t, miner.Mine(nil).Empty())
	assert.True(t, miner.Mine([]byte{0x47}).Empty())
	assert.Equal(t, []byte{0x47}, miner.Mine([]byte{0x47, 0x47}).Sequence)
}

// TestMineMatchesNaiveReference tests equivalence with the cubic reference
// enumeration on randomized small inputs
func TestMineMatchesNaiveReference(t *testing.T) {
	miner := NewPatternMiner()
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(40)
		data := make([]byte, n)
		for i := range data {
			// Small alphabet to force plenty of repeats.
			data[i] = byte(rng.Intn(3))
		}

		want := mineNaive(data)
		got := miner.Mine(data)
		if len(want) == 0 {
			assert.True(t, got.Empty(), "input %x", data)
		} else {
			assert.Equal(t, want, got.Sequence, "input %x", data)
		}
	}
}

// TestMineFile tests mining a persisted capture file
func TestMineFile(t *testing.T) {
	miner := NewPatternMiner()

	path := filepath.Join(t.TempDir(), "flow_data.bin")
	require.NoError(t, os.WriteFile(path, []byte("ABAB"), 0644))

	result, err := miner.MineFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("AB"), result.Sequence)
}

// TestMineFileMissing tests the error path for a missing capture file
func TestMineFileMissing(t *testing.T) {
	miner := NewPatternMiner()

	_, err := miner.MineFile(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

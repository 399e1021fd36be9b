/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: miner.go
Description: Repeated-pattern miner for the SatTest harness. Finds the longest
contiguous byte sequence that occurs at least twice (overlaps allowed) within
a captured reference buffer. Implemented with a binary search over the repeat
length and a rolling-hash index instead of the cubic scan, while keeping the
exact result and tie-break of the naive enumeration.
*/

package pattern

import (
	"bytes"
	"fmt"
	"os"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// hashBase is the polynomial rolling hash multiplier. Collisions are
// tolerated: every hash group is verified byte-for-byte before use.
const hashBase uint64 = 1099511628211

// PatternMiner mines the longest repeated byte sequence from a reference
// buffer. Stateless; the mined result is owned by the caller's session.
type PatternMiner struct{}

// NewPatternMiner creates a new pattern miner instance
func NewPatternMiner() *PatternMiner {
	return &PatternMiner{}
}

// Mine returns the longest sequence that occurs at two or more (possibly
// overlapping) positions in data. Among all maximal-length repeated
// sequences the one with the smallest start offset is returned, which is
// the sequence the ascending-length, ascending-offset enumeration would
// keep. Returns an empty pattern when nothing repeats.
func (m *PatternMiner) Mine(data []byte) interfaces.CommonPattern {
	n := len(data)
	if n < 2 {
		return interfaces.CommonPattern{}
	}

	// A repeated sequence of length L implies a repeated prefix of length
	// L-1, so the predicate is monotone and the maximal length can be
	// binary searched.
	bestLen, bestOff := 0, -1
	lo, hi := 1, n-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if off := firstRepeatOffset(data, mid); off >= 0 {
			bestLen, bestOff = mid, off
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if bestOff < 0 {
		return interfaces.CommonPattern{}
	}

	seq := make([]byte, bestLen)
	copy(seq, data[bestOff:bestOff+bestLen])
	return interfaces.CommonPattern{
		Sequence: seq,
		Count:    countOccurrences(data, seq),
	}
}

// MineFile reads a capture file and mines it
func (m *PatternMiner) MineFile(path string) (interfaces.CommonPattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return interfaces.CommonPattern{}, fmt.Errorf("failed to read capture file: %w", err)
	}
	return m.Mine(data), nil
}

// firstRepeatOffset returns the smallest start offset whose window of the
// given length occurs at another position in data, or -1 when no window of
// that length repeats.
func firstRepeatOffset(data []byte, length int) int {
	n := len(data)
	if length <= 0 || length > n-1 {
		return -1
	}

	var pow uint64 = 1
	for i := 0; i < length-1; i++ {
		pow *= hashBase
	}

	groups := make(map[uint64][]int)
	var h uint64
	for i := 0; i < length; i++ {
		h = h*hashBase + uint64(data[i])
	}
	groups[h] = append(groups[h], 0)
	for i := 1; i+length <= n; i++ {
		h = (h-uint64(data[i-1])*pow)*hashBase + uint64(data[i+length-1])
		groups[h] = append(groups[h], i)
	}

	best := -1
	for _, positions := range groups {
		if len(positions) < 2 {
			continue
		}
		// Positions are ascending; verify real equality within the group
		// to guard against hash collisions.
		for i, a := range positions {
			if best >= 0 && a >= best {
				break
			}
			for _, b := range positions[i+1:] {
				if bytes.Equal(data[a:a+length], data[b:b+length]) {
					best = a
					break
				}
			}
		}
	}
	return best
}

// countOccurrences counts every (possibly overlapping) match position of
// seq in data.
func countOccurrences(data, seq []byte) int {
	if len(seq) == 0 || len(seq) > len(data) {
		return 0
	}
	count := 0
	for i := 0; i+len(seq) <= len(data); i++ {
		if bytes.Equal(data[i:i+len(seq)], seq) {
			count++
		}
	}
	return count
}

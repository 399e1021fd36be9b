/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: classifier_test.go
Description: Tests for the frame classifier. Verifies sync marker detection,
the minimum length rule, rule ordering, and classification purity.
*/

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// TestClassifyShortBuffers tests that all buffers shorter than 10 bytes are Unknown
func TestClassifyShortBuffers(t *testing.T) {
	classifier := NewFrameClassifier()

	for length := 0; length < MinFrameSize; length++ {
		buf := make([]byte, length)
		if length > 0 {
			buf[0] = DVBS2SyncByte
		}
		assert.Equal(t, interfaces.ProtocolUnknown, classifier.Classify(buf),
			"buffer of length %d must classify as Unknown", length)
	}
}

// TestClassifyDVBS2 tests DVB-S2 sync byte detection
func TestClassifyDVBS2(t *testing.T) {
	classifier := NewFrameClassifier()

	buf := make([]byte, 10)
	buf[0] = 0x47
	assert.Equal(t, interfaces.ProtocolDVBS2, classifier.Classify(buf))
}

// TestClassifyCCSDS tests CCSDS sync marker detection
func TestClassifyCCSDS(t *testing.T) {
	classifier := NewFrameClassifier()

	buf := make([]byte, 12)
	copy(buf, []byte{0x1A, 0xCF, 0xFC})
	assert.Equal(t, interfaces.ProtocolCCSDS, classifier.Classify(buf))
}

// TestClassifyUnknown tests buffers matching no sync marker
func TestClassifyUnknown(t *testing.T) {
	classifier := NewFrameClassifier()

	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xAB
	}
	assert.Equal(t, interfaces.ProtocolUnknown, classifier.Classify(buf))
}

// TestClassifyRuleOrder tests that the DVB-S2 rule wins over CCSDS
func TestClassifyRuleOrder(t *testing.T) {
	classifier := NewFrameClassifier()

	// 0x47 in byte 0 wins even if later bytes resemble a CCSDS marker.
	buf := []byte{0x47, 0x1A, 0xCF, 0xFC, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, interfaces.ProtocolDVBS2, classifier.Classify(buf))
}

// TestClassifyDoesNotMutate tests that classification never touches the buffer
func TestClassifyDoesNotMutate(t *testing.T) {
	classifier := NewFrameClassifier()

	buf := []byte{0x1A, 0xCF, 0xFC, 4, 5, 6, 7, 8, 9, 10}
	original := make([]byte, len(buf))
	copy(original, buf)

	classifier.Classify(buf)
	assert.Equal(t, original, buf)
}

// TestClassifyFrame tests the Frame wrapper
func TestClassifyFrame(t *testing.T) {
	classifier := NewFrameClassifier()

	buf := make([]byte, 10)
	buf[0] = 0x47
	frame := classifier.ClassifyFrame(buf)
	assert.Equal(t, interfaces.ProtocolDVBS2, frame.Protocol)
	assert.Equal(t, buf, frame.Data)
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: classifier.go
Description: Frame classifier for the SatTest harness. Identifies a frame's
protocol family from fixed sync markers with a pure, deterministic prefix
check. Detection is heuristic, not a conformant DVB-S2/CCSDS decoder.
*/

package protocol

import (
	"bytes"

	"github.com/kleascm/sattest/pkg/interfaces"
)

const (
	// MinFrameSize is the minimum buffer length required for classification.
	MinFrameSize = 10

	// DVBS2SyncByte is the DVB-S2 transport stream sync byte.
	DVBS2SyncByte = 0x47
)

// CCSDSSyncMarker is the CCSDS attached sync marker prefix.
var CCSDSSyncMarker = []byte{0x1A, 0xCF, 0xFC}

// FrameClassifier implements the Classifier interface using fixed sync
// markers. Stateless and safe for concurrent use.
type FrameClassifier struct{}

// NewFrameClassifier creates a new frame classifier instance
func NewFrameClassifier() *FrameClassifier {
	return &FrameClassifier{}
}

// Classify returns the protocol family of the given buffer. Rules are
// checked in order, first match wins; the buffer is never mutated.
func (c *FrameClassifier) Classify(data []byte) interfaces.Protocol {
	if len(data) < MinFrameSize {
		return interfaces.ProtocolUnknown
	}
	if data[0] == DVBS2SyncByte {
		return interfaces.ProtocolDVBS2
	}
	if bytes.HasPrefix(data, CCSDSSyncMarker) {
		return interfaces.ProtocolCCSDS
	}
	return interfaces.ProtocolUnknown
}

// ClassifyFrame classifies a buffer and wraps it in a Frame
func (c *FrameClassifier) ClassifyFrame(data []byte) *interfaces.Frame {
	return &interfaces.Frame{
		Data:     data,
		Protocol: c.Classify(data),
	}
}

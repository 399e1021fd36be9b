/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: defaults.go
Description: Fixed collaborator endpoints and mode defaults for the SatTest
harness. All endpoints live on the loopback interface; the port layout is
part of the collaborator boundary contract.
*/

package orchestrator

import (
	"time"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// Collaborator endpoints (single loopback interface, fixed ports).
const (
	DefaultCaptureControlAddr  = "127.0.0.1:5678"
	DefaultPlaybackControlAddr = "127.0.0.1:5679"
	DefaultFuzzInAddr          = "127.0.0.1:1234"
	DefaultFuzzOutAddr         = "127.0.0.1:4567"
	DefaultGenControlAddr      = "127.0.0.1:6789"
)

// Jamming defaults, applied when the operator supplies no value.
const (
	DefaultJamFreq      = "2.4G"
	DefaultJamPower     = "30"
	DefaultJamBandwidth = "10M"
)

// DefaultRecordTime is the SignalReplay recording window.
const DefaultRecordTime = 60 * time.Second

// DefaultCaptureFile holds raw received frame bytes, overwritten per session.
const DefaultCaptureFile = "flow_data.bin"

// RecordedSamplesFile is the raw complex sample file produced and consumed
// by the RF collaborators. Its format is owned by them, not by this core.
const RecordedSamplesFile = "recorded_signal.dat"

// DefaultConfig returns a HarnessConfig populated with every fixed endpoint
// and default. The CLI overrides individual fields.
func DefaultConfig() *interfaces.HarnessConfig {
	return &interfaces.HarnessConfig{
		RecordTime:  DefaultRecordTime,
		CaptureFile: DefaultCaptureFile,
		PlaybackCmd: []string{"python3", "playback.py"},

		CaptureControlAddr: DefaultCaptureControlAddr,
		FuzzInAddr:         DefaultFuzzInAddr,
		FuzzOutAddr:        DefaultFuzzOutAddr,
		GenControlAddr:     DefaultGenControlAddr,

		LogLevel: "info",
	}
}

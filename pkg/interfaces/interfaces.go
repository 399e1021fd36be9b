/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces and types for the SatTest harness. Defines the
frame, protocol, strategy, and command types used across all packages to break
import cycles and enable proper modular design.
*/

package interfaces

import (
	"time"
)

// Protocol identifies the protocol family of a captured frame.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolDVBS2
	ProtocolCCSDS
)

// String returns the human-readable protocol name
func (p Protocol) String() string {
	switch p {
	case ProtocolDVBS2:
		return "DVB-S2"
	case ProtocolCCSDS:
		return "CCSDS"
	default:
		return "Unknown"
	}
}

// Frame represents one unit of captured or transmitted signal data after
// demodulation/decoding. Data is treated as immutable once classified;
// mutators always work on a copy.
type Frame struct {
	Data     []byte
	Protocol Protocol
}

// CommonPattern is the longest byte sequence that repeats within a reference
// buffer. Mined once per fuzzing session and immutable afterward.
type CommonPattern struct {
	Sequence []byte
	Count    int
}

// Empty reports whether no repeated sequence was found.
func (p CommonPattern) Empty() bool {
	return len(p.Sequence) == 0
}

// FuzzStrategy selects the mutation strategy for a session. Chosen once at
// mode entry; never changes mid-session.
type FuzzStrategy string

const (
	StrategyRandom    FuzzStrategy = "random"
	StrategyHeuristic FuzzStrategy = "heuristic"
)

// Mode identifies the attack mode executed by one orchestrator invocation.
// Modes are mutually exclusive and not switchable at runtime.
type Mode string

const (
	ModeSignalReplay  Mode = "SignalReplay"
	ModeSignalFuzzing Mode = "SignalFuzzing"
	ModeSignalJamming Mode = "SignalJamming"
	ModeGNSSAttacking Mode = "GNSSAttacking"
)

// CommandType distinguishes control-channel command kinds.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandStart
	CommandStop
	CommandParams
)

// Command is one control-channel message: START, STOP, or a parameter set
// encoded as key=value pairs separated by ";".
type Command struct {
	Type   CommandType
	Params map[string]string
	Raw    string
}

// JamParams holds the jamming signal parameters sent to the signal
// generation collaborator.
type JamParams struct {
	Freq      string
	Power     string
	Bandwidth string
}

// GNSSParams holds the fake GNSS location and time sent to the GNSS
// simulator collaborator.
type GNSSParams struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	Time      int64
}

// HarnessConfig represents the full configuration for one harness run
type HarnessConfig struct {
	Mode        Mode
	RecordTime  time.Duration
	Strategy    FuzzStrategy
	Jam         JamParams
	GNSS        GNSSParams
	CaptureFile string
	NavFile     string
	PlaybackCmd []string

	CaptureControlAddr string
	FuzzInAddr         string
	FuzzOutAddr        string
	GenControlAddr     string

	LogLevel string
	LogDir   string
}

// Mutator interface for mutating captured frames
type Mutator interface {
	Mutate(frame *Frame) (*Frame, error)
	Name() string
	Description() string
	Init() error
}

// Classifier identifies a frame's protocol family from its leading bytes.
type Classifier interface {
	Classify(data []byte) Protocol
}

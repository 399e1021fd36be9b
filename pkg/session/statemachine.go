/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: statemachine.go
Description: Collaborator arming state machines for the SatTest harness.
Reframes the flowgraph connect/disconnect mutable state as explicit recorder
and player state machines whose transitions are triggered only by received
control commands. Duplicate or out-of-order commands are no-ops by state
guard; each delivered command causes at most one transition.
*/

package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// RecorderState is the capture collaborator's arming state.
type RecorderState int

const (
	RecorderIdle RecorderState = iota
	RecorderArmed
	RecorderRecording
)

// String returns the recorder state name
func (s RecorderState) String() string {
	switch s {
	case RecorderArmed:
		return "Armed"
	case RecorderRecording:
		return "Recording"
	default:
		return "Idle"
	}
}

// Recorder tracks the capture collaborator's state. OnStart and OnStop are
// invoked exactly once per effective transition, in command order; the
// commands arrive from a control listener that processes one connection at
// a time, so no transition ever races another.
type Recorder struct {
	mu      sync.Mutex
	state   RecorderState
	logger  *logrus.Logger
	OnStart func() error
	OnStop  func() error
}

// NewRecorder creates a recorder state machine in the Idle state
func NewRecorder(logger *logrus.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Arm moves the recorder from Idle to Armed once the flowgraph is running
func (r *Recorder) Arm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == RecorderIdle {
		r.state = RecorderArmed
	}
}

// State returns the current recorder state
func (r *Recorder) State() RecorderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// HandleCommand applies one received control command. Commands that do not
// match a legal transition leave the state unchanged.
func (r *Recorder) HandleCommand(cmd interfaces.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case cmd.Type == interfaces.CommandStart && r.state == RecorderArmed:
		if r.OnStart != nil {
			if err := r.OnStart(); err != nil {
				r.logger.WithError(err).Error("Failed to start recording")
				return
			}
		}
		r.state = RecorderRecording
		r.logger.Info("Recording started")
	case cmd.Type == interfaces.CommandStop && r.state == RecorderRecording:
		if r.OnStop != nil {
			if err := r.OnStop(); err != nil {
				r.logger.WithError(err).Error("Failed to stop recording")
				return
			}
		}
		r.state = RecorderArmed
		r.logger.Info("Recording stopped")
	default:
		r.logger.WithFields(logrus.Fields{
			"command": cmd.Raw,
			"state":   r.state.String(),
		}).Debug("Command ignored in current state")
	}
}

// PlayerState is the playback collaborator's state.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerPlaying
)

// String returns the player state name
func (s PlayerState) String() string {
	if s == PlayerPlaying {
		return "Playing"
	}
	return "Idle"
}

// Player tracks the playback collaborator's state with the same command
// discipline as Recorder.
type Player struct {
	mu      sync.Mutex
	state   PlayerState
	logger  *logrus.Logger
	OnStart func() error
	OnStop  func() error
}

// NewPlayer creates a player state machine in the Idle state
func NewPlayer(logger *logrus.Logger) *Player {
	return &Player{logger: logger}
}

// State returns the current player state
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// HandleCommand applies one received control command
func (p *Player) HandleCommand(cmd interfaces.Command) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case cmd.Type == interfaces.CommandStart && p.state == PlayerIdle:
		if p.OnStart != nil {
			if err := p.OnStart(); err != nil {
				p.logger.WithError(err).Error("Failed to start playback")
				return
			}
		}
		p.state = PlayerPlaying
		p.logger.Info("Playback started")
	case cmd.Type == interfaces.CommandStop && p.state == PlayerPlaying:
		if p.OnStop != nil {
			if err := p.OnStop(); err != nil {
				p.logger.WithError(err).Error("Failed to stop playback")
				return
			}
		}
		p.state = PlayerIdle
		p.logger.Info("Playback stopped")
	default:
		p.logger.WithFields(logrus.Fields{
			"command": cmd.Raw,
			"state":   p.state.String(),
		}).Debug("Command ignored in current state")
	}
}

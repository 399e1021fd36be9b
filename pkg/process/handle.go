/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: handle.go
Description: Collaborator process handles for the SatTest harness. Wraps an
external collaborator (RF capture/playback flowgraph, GNSS simulator) in an
explicit lifecycle of spawned, running, and exited states. The owning session
always drives a handle to exited before releasing it, on every exit path.
*/

package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"
)

// State is a collaborator process lifecycle state.
type State int

const (
	StateSpawned State = iota
	StateRunning
	StateExited
)

// String returns the lifecycle state name
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	default:
		return "spawned"
	}
}

// Handle manages one collaborator process
type Handle struct {
	name   string
	args   []string
	logger *logrus.Logger

	cmd    *exec.Cmd
	stdout bytes.Buffer
	stderr bytes.Buffer

	mu       sync.Mutex
	state    State
	exitCode int
	done     chan struct{}
}

// NewHandle creates a process handle in the spawned state
func NewHandle(logger *logrus.Logger, name string, args ...string) *Handle {
	return &Handle{
		name:     name,
		args:     args,
		logger:   logger,
		state:    StateSpawned,
		exitCode: -1,
		done:     make(chan struct{}),
	}
}

// State returns the current lifecycle state
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// ExitCode returns the process exit code, or -1 before exit
func (h *Handle) ExitCode() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exitCode
}

// Stdout returns the captured standard output
func (h *Handle) Stdout() string {
	return h.stdout.String()
}

// Stderr returns the captured error output
func (h *Handle) Stderr() string {
	return h.stderr.String()
}

// Start launches the collaborator process
func (h *Handle) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateSpawned {
		return fmt.Errorf("collaborator %s already started", h.name)
	}

	h.cmd = exec.Command(h.name, h.args...)
	h.cmd.Stdout = &h.stdout
	h.cmd.Stderr = &h.stderr

	if err := h.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start collaborator %s: %w", h.name, err)
	}
	h.state = StateRunning

	h.logger.WithFields(logrus.Fields{
		"collaborator": h.name,
		"pid":          h.cmd.Process.Pid,
	}).Info("Collaborator started")

	go func() {
		err := h.cmd.Wait()
		h.mu.Lock()
		h.state = StateExited
		h.exitCode = h.cmd.ProcessState.ExitCode()
		h.mu.Unlock()
		if err != nil {
			h.logger.WithError(err).WithField("collaborator", h.name).Warning("Collaborator exited with error")
		}
		close(h.done)
	}()

	return nil
}

// Wait blocks until the process exits or ctx is cancelled. On cancellation
// the process is stopped and still transitions to exited before Wait
// returns.
func (h *Handle) Wait(ctx context.Context) error {
	h.mu.Lock()
	if h.state == StateSpawned {
		h.mu.Unlock()
		return fmt.Errorf("collaborator %s not started", h.name)
	}
	h.mu.Unlock()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		h.kill()
		<-h.done
		return ctx.Err()
	}
}

// Stop kills the process if still running and joins its exit. No-op once
// exited.
func (h *Handle) Stop() error {
	h.mu.Lock()
	if h.state != StateRunning {
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	h.kill()
	<-h.done
	return nil
}

// Close implements io.Closer for session tracking
func (h *Handle) Close() error {
	return h.Stop()
}

func (h *Handle) kill() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateRunning && h.cmd.Process != nil {
		h.logger.WithFields(logrus.Fields{
			"collaborator": h.name,
			"pid":          h.cmd.Process.Pid,
		}).Info("Killing collaborator")
		h.cmd.Process.Kill()
	}
}

// RunCollaborator launches a generic collaborator, waits for it to exit,
// and logs (but does not fail on) anything written to its error stream.
func RunCollaborator(ctx context.Context, logger *logrus.Logger, name string, args ...string) (string, error) {
	h := NewHandle(logger, name, args...)
	if err := h.Start(); err != nil {
		return "", err
	}
	if err := h.Wait(ctx); err != nil {
		return h.Stdout(), err
	}
	if stderr := h.Stderr(); stderr != "" {
		logger.WithFields(logrus.Fields{
			"collaborator": name,
			"stderr":       stderr,
		}).Warning("Collaborator wrote to error stream")
	}
	return h.Stdout(), nil
}

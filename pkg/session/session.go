/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: session.go
Description: Session resource owner for the SatTest harness. One session is
the live state of one orchestrator run: the selected mode, its parameters,
and every resource the mode opens (sockets, listeners, collaborator
processes, the capture file). The session releases everything it owns on
every exit path, normal completion, interrupt, or error alike.
*/

package session

import (
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// Session owns all resources opened during one attack mode invocation.
// Exactly one mode is active per session; modes are not switchable at
// runtime.
type Session struct {
	ID     string
	Mode   interfaces.Mode
	Config *interfaces.HarnessConfig

	logger *logrus.Logger

	mu      sync.Mutex
	closers []io.Closer
	closed  bool
}

// New creates a session for one mode invocation
func New(config *interfaces.HarnessConfig, logger *logrus.Logger) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		Mode:   config.Mode,
		Config: config,
		logger: logger,
	}
	logger.WithFields(logrus.Fields{
		"session_id": s.ID,
		"mode":       s.Mode,
	}).Info("Session created")
	return s
}

// Logger returns the session logger
func (s *Session) Logger() *logrus.Logger {
	return s.logger
}

// Track registers a resource for release on Close. Resources are released
// in reverse acquisition order.
func (s *Session) Track(c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		c.Close()
		return
	}
	s.closers = append(s.closers, c)
}

// Close releases every tracked resource. Idempotent; safe to call from a
// deferred cleanup and again from a signal handler.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.WithField("session_id", s.ID).Info("Session closed")
	return errors.Join(errs...)
}

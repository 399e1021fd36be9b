/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: control.go
Description: Control channel for the SatTest harness. A listener binds a fixed
address and accepts connections sequentially, one at a time; each accepted
connection yields exactly one command within a fixed byte budget and is then
closed by the receiver. The sender side is a fire-and-forget one-shot dial:
the protocol carries no acknowledgement.
*/

package channel

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// MaxMessageSize is the byte budget for one control message.
const MaxMessageSize = 1024

// CommandHandler processes one received control command. Handlers run on the
// accept loop, so command ordering as received is the effective ordering of
// state transitions.
type CommandHandler func(cmd interfaces.Command)

// ControlListener accepts control connections sequentially and dispatches
// one command per connection to its handler.
type ControlListener struct {
	addr    string
	handler CommandHandler
	logger  *logrus.Logger

	ln        net.Listener
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewControlListener creates a control listener bound to a handler
func NewControlListener(addr string, handler CommandHandler, logger *logrus.Logger) *ControlListener {
	return &ControlListener{
		addr:    addr,
		handler: handler,
		logger:  logger,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start binds the listener address and launches the accept loop
func (l *ControlListener) Start() error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("failed to bind control address %s: %w", l.addr, err)
	}
	l.ln = ln

	l.logger.WithField("addr", ln.Addr().String()).Info("Control channel listening")
	go l.acceptLoop()
	return nil
}

// Addr returns the bound listener address
func (l *ControlListener) Addr() net.Addr {
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// acceptLoop serially processes one connection at a time. A new connection
// is accepted only after the prior one is closed.
func (l *ControlListener) acceptLoop() {
	defer close(l.done)
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			select {
			case <-l.quit:
				return
			default:
				l.logger.WithError(err).Error("Control channel accept failed")
				return
			}
		}
		l.handleConn(conn)
	}
}

// handleConn reads one command from the connection and closes it
func (l *ControlListener) handleConn(conn net.Conn) {
	defer conn.Close()

	raw, err := io.ReadAll(io.LimitReader(conn, MaxMessageSize))
	if err != nil {
		l.logger.WithError(err).Warning("Control channel read failed")
		return
	}

	cmd := ParseCommand(raw)
	if cmd.Type == interfaces.CommandUnknown {
		l.logger.WithField("raw", cmd.Raw).Debug("Ignoring unrecognized control command")
		return
	}
	l.handler(cmd)
}

// Close unblocks a pending accept and joins the accept loop. Idempotent.
func (l *ControlListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.quit)
		if l.ln != nil {
			err = l.ln.Close()
			<-l.done
		}
	})
	return err
}

// SendCommand dials a control endpoint, writes one encoded command, and
// closes. Connect failures are fatal for the current mode invocation; there
// is no retry and no acknowledgement.
func SendCommand(addr string, cmd interfaces.Command) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to control endpoint %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(cmd.Raw)); err != nil {
		return fmt.Errorf("failed to send command to %s: %w", addr, err)
	}
	return nil
}

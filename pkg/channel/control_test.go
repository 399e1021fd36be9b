/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: control_test.go
Description: Tests for the control channel. Verifies one-command-per-
connection delivery, in-order sequential processing, unrecognized command
drops, and listener shutdown.
*/

package channel

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/sattest/pkg/interfaces"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func waitForCommand(t *testing.T, ch <-chan interfaces.Command) interfaces.Command {
	t.Helper()
	select {
	case cmd := <-ch:
		return cmd
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for command")
		return interfaces.Command{}
	}
}

// TestControlListenerStartStopOrder tests that START then STOP arrive in
// order, exactly once each
func TestControlListenerStartStopOrder(t *testing.T) {
	received := make(chan interfaces.Command, 4)
	listener := NewControlListener("127.0.0.1:0", func(cmd interfaces.Command) {
		received <- cmd
	}, testLogger())
	require.NoError(t, listener.Start())
	defer listener.Close()

	addr := listener.Addr().String()
	require.NoError(t, SendCommand(addr, StartCommand()))
	require.NoError(t, SendCommand(addr, StopCommand()))

	assert.Equal(t, interfaces.CommandStart, waitForCommand(t, received).Type)
	assert.Equal(t, interfaces.CommandStop, waitForCommand(t, received).Type)

	select {
	case cmd := <-received:
		t.Fatalf("unexpected extra command: %v", cmd)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestControlListenerIgnoresUnknown tests that an unrecognized command is
// dropped without reaching the handler
func TestControlListenerIgnoresUnknown(t *testing.T) {
	received := make(chan interfaces.Command, 4)
	listener := NewControlListener("127.0.0.1:0", func(cmd interfaces.Command) {
		received <- cmd
	}, testLogger())
	require.NoError(t, listener.Start())
	defer listener.Close()

	addr := listener.Addr().String()
	require.NoError(t, SendCommand(addr, interfaces.Command{Type: interfaces.CommandUnknown, Raw: "FLUSH"}))
	require.NoError(t, SendCommand(addr, StartCommand()))

	// Only the START makes it through; the unknown command left no trace.
	assert.Equal(t, interfaces.CommandStart, waitForCommand(t, received).Type)
	assert.Empty(t, received)
}

// TestControlListenerParams tests delivery of a parameter command
func TestControlListenerParams(t *testing.T) {
	received := make(chan interfaces.Command, 1)
	listener := NewControlListener("127.0.0.1:0", func(cmd interfaces.Command) {
		received <- cmd
	}, testLogger())
	require.NoError(t, listener.Start())
	defer listener.Close()

	cmd, err := ParamsCommand("freq=2.4G;power=30;bandwidth=10M")
	require.NoError(t, err)
	require.NoError(t, SendCommand(listener.Addr().String(), cmd))

	got := waitForCommand(t, received)
	assert.Equal(t, interfaces.CommandParams, got.Type)
	assert.Equal(t, "2.4G", got.Params["freq"])
}

// TestControlListenerClose tests that Close unblocks the accept loop and is
// idempotent
func TestControlListenerClose(t *testing.T) {
	listener := NewControlListener("127.0.0.1:0", func(interfaces.Command) {}, testLogger())
	require.NoError(t, listener.Start())

	require.NoError(t, listener.Close())
	assert.NoError(t, listener.Close())

	// The endpoint is gone; a sender sees a fatal connect error.
	assert.Error(t, SendCommand(listener.Addr().String(), StartCommand()))
}

// TestSendCommandConnectFailure tests that a dial failure surfaces as an
// error with no retry
func TestSendCommandConnectFailure(t *testing.T) {
	err := SendCommand("127.0.0.1:1", StartCommand())
	assert.Error(t, err)
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: handle_test.go
Description: Tests for collaborator process handles and the GNSS simulator
runner. Exercises the spawned/running/exited lifecycle with real short-lived
processes, cancellation, output capture, and argument vector construction.
*/

package process

import (
	"context"
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

// TestHandleLifecycle tests the spawned to running to exited progression
func TestHandleLifecycle(t *testing.T) {
	h := NewHandle(testLogger(), "sh", "-c", "echo hello")
	assert.Equal(t, StateSpawned, h.State())
	assert.Equal(t, -1, h.ExitCode())

	require.NoError(t, h.Start())
	require.NoError(t, h.Wait(context.Background()))

	assert.Equal(t, StateExited, h.State())
	assert.Equal(t, 0, h.ExitCode())
	assert.Equal(t, "hello\n", h.Stdout())
}

// TestHandleStderrCapture tests that error stream output is captured
func TestHandleStderrCapture(t *testing.T) {
	h := NewHandle(testLogger(), "sh", "-c", "echo oops >&2; exit 3")
	require.NoError(t, h.Start())
	require.NoError(t, h.Wait(context.Background()))

	assert.Equal(t, "oops\n", h.Stderr())
	assert.Equal(t, 3, h.ExitCode())
}

// TestHandleDoubleStart tests that a handle can only be started once
func TestHandleDoubleStart(t *testing.T) {
	h := NewHandle(testLogger(), "sh", "-c", "true")
	require.NoError(t, h.Start())
	assert.Error(t, h.Start())
	require.NoError(t, h.Wait(context.Background()))
}

// TestHandleWaitBeforeStart tests that Wait rejects an unstarted handle
func TestHandleWaitBeforeStart(t *testing.T) {
	h := NewHandle(testLogger(), "sh", "-c", "true")
	assert.Error(t, h.Wait(context.Background()))
}

// TestHandleWaitCancellation tests that cancellation kills the process and
// still drives it to exited
func TestHandleWaitCancellation(t *testing.T) {
	h := NewHandle(testLogger(), "sleep", "30")
	require.NoError(t, h.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateExited, h.State())
}

// TestHandleStopIdempotent tests that Stop is safe after exit
func TestHandleStopIdempotent(t *testing.T) {
	h := NewHandle(testLogger(), "sleep", "30")
	require.NoError(t, h.Start())

	require.NoError(t, h.Stop())
	assert.Equal(t, StateExited, h.State())
	require.NoError(t, h.Stop())
	require.NoError(t, h.Close())
}

// TestHandleStartFailure tests that a missing binary surfaces an error
func TestHandleStartFailure(t *testing.T) {
	h := NewHandle(testLogger(), "sattest-no-such-binary-xyz")
	assert.Error(t, h.Start())
	assert.Equal(t, StateSpawned, h.State())
}

// TestRunCollaborator tests the run-to-completion helper
func TestRunCollaborator(t *testing.T) {
	out, err := RunCollaborator(context.Background(), testLogger(), "sh", "-c", "echo done")
	require.NoError(t, err)
	assert.Equal(t, "done\n", out)
}

// TestRunCollaboratorStderrNonFatal tests that error stream output alone
// does not fail a generic collaborator run
func TestRunCollaboratorStderrNonFatal(t *testing.T) {
	out, err := RunCollaborator(context.Background(), testLogger(), "sh", "-c", "echo warn >&2; echo ok")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

// TestGNSSRunnerArgs tests the simulator argument vector
func TestGNSSRunnerArgs(t *testing.T) {
	r := NewGNSSRunner("", testLogger())
	args := r.Args(interfaces.GNSSParams{
		Latitude:  35.6813,
		Longitude: 139.7660,
		Altitude:  100,
		Time:      1700000000,
	})
	assert.Equal(t, []string{
		"-e", "brdc3540.14n",
		"-l", "35.6813,139.766,100",
		"-t", "1700000000",
		"-s", "pluto",
	}, args)
}

// TestGNSSRunnerCustomNavFile tests that a custom ephemeris file is used
func TestGNSSRunnerCustomNavFile(t *testing.T) {
	r := NewGNSSRunner("custom.14n", testLogger())
	args := r.Args(interfaces.GNSSParams{})
	assert.Equal(t, "custom.14n", args[1])
	assert.Equal(t, "0,0,0", args[3])
}

// TestGNSSRunnerMissingBinary tests that an absent simulator is an error
func TestGNSSRunnerMissingBinary(t *testing.T) {
	r := NewGNSSRunner("", testLogger())
	_, err := r.Run(context.Background(), interfaces.GNSSParams{})
	assert.Error(t, err)
}

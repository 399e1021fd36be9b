/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: gnss.go
Description: GNSS simulator runner for the SatTest harness. Spawns the
external gps-sdr-sim collaborator with the requested fake location and time,
blocks until it exits, and treats any output on its error stream as fatal.
*/

package process

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// DefaultNavFile is the default GPS broadcast ephemeris file.
const DefaultNavFile = "brdc3540.14n"

// gnssSimBinary is the external GNSS signal simulator.
const gnssSimBinary = "gps-sdr-sim"

// GNSSRunner spawns the GNSS simulator collaborator
type GNSSRunner struct {
	navFile string
	logger  *logrus.Logger
}

// NewGNSSRunner creates a GNSS runner using the given ephemeris file
func NewGNSSRunner(navFile string, logger *logrus.Logger) *GNSSRunner {
	if navFile == "" {
		navFile = DefaultNavFile
	}
	return &GNSSRunner{
		navFile: navFile,
		logger:  logger,
	}
}

// Args builds the simulator argument vector for the given parameters
func (r *GNSSRunner) Args(params interfaces.GNSSParams) []string {
	location := fmt.Sprintf("%s,%s,%s",
		strconv.FormatFloat(params.Latitude, 'f', -1, 64),
		strconv.FormatFloat(params.Longitude, 'f', -1, 64),
		strconv.FormatFloat(params.Altitude, 'f', -1, 64))
	return []string{
		"-e", r.navFile,
		"-l", location,
		"-t", strconv.FormatInt(params.Time, 10),
		"-s", "pluto",
	}
}

// Run spawns the simulator, blocks until it exits, and surfaces its output.
// A non-empty error stream is fatal, unlike generic collaborator runs.
func (r *GNSSRunner) Run(ctx context.Context, params interfaces.GNSSParams) (string, error) {
	h := NewHandle(r.logger, gnssSimBinary, r.Args(params)...)
	if err := h.Start(); err != nil {
		return "", err
	}
	if err := h.Wait(ctx); err != nil {
		return h.Stdout(), err
	}
	if stderr := h.Stderr(); stderr != "" {
		return h.Stdout(), fmt.Errorf("gps-sdr-sim failed: %s", stderr)
	}

	r.logger.WithField("exit_code", h.ExitCode()).Info("GNSS signal generation completed")
	return h.Stdout(), nil
}

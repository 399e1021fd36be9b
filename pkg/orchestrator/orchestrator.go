/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: orchestrator.go
Description: Mode orchestrator for the SatTest harness. Executes exactly one
of the four attack modes per invocation as a single synchronous sequence of
channel operations and collaborator lifecycles. A session owns every resource
a mode opens and releases it on every exit path, including interrupts.
*/

package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/sattest/pkg/channel"
	"github.com/kleascm/sattest/pkg/fuzzing"
	"github.com/kleascm/sattest/pkg/interfaces"
	"github.com/kleascm/sattest/pkg/pattern"
	"github.com/kleascm/sattest/pkg/process"
	"github.com/kleascm/sattest/pkg/protocol"
	"github.com/kleascm/sattest/pkg/session"
)

// Orchestrator sequences one attack mode per invocation
type Orchestrator struct {
	config     *interfaces.HarnessConfig
	logger     *logrus.Logger
	classifier *protocol.FrameClassifier
	miner      *pattern.PatternMiner
	rng        *rand.Rand
}

// New creates an orchestrator for the given configuration
func New(config *interfaces.HarnessConfig, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		config:     config,
		logger:     logger,
		classifier: protocol.NewFrameClassifier(),
		miner:      pattern.NewPatternMiner(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand overrides the random source, for deterministic tests
func (o *Orchestrator) SetRand(rng *rand.Rand) {
	o.rng = rng
}

// Run executes the configured attack mode. Exactly one mode runs per
// invocation; there is no runtime transition between modes.
func (o *Orchestrator) Run(ctx context.Context) error {
	sess := session.New(o.config, o.logger)
	defer sess.Close()

	o.logger.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"mode":       o.config.Mode,
	}).Info("Attack mode starting")

	switch o.config.Mode {
	case interfaces.ModeSignalReplay:
		return o.runReplay(ctx, sess)
	case interfaces.ModeSignalFuzzing:
		return o.runFuzzing(ctx, sess)
	case interfaces.ModeSignalJamming:
		return o.runJamming(sess)
	case interfaces.ModeGNSSAttacking:
		return o.runGNSS(ctx, sess)
	default:
		return fmt.Errorf("unknown attack mode: %q", o.config.Mode)
	}
}

// runReplay arms the capture collaborator, blocks for the record duration,
// disarms it, and hands the recorded samples to the playback collaborator.
func (o *Orchestrator) runReplay(ctx context.Context, sess *session.Session) error {
	if err := channel.SendCommand(o.config.CaptureControlAddr, channel.StartCommand()); err != nil {
		return err
	}
	o.logger.WithField("duration", o.config.RecordTime).Info("Recording window open")

	timer := time.NewTimer(o.config.RecordTime)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		// Best-effort disarm before tearing the session down.
		if err := channel.SendCommand(o.config.CaptureControlAddr, channel.StopCommand()); err != nil {
			o.logger.WithError(err).Warning("Failed to disarm capture collaborator on interrupt")
		}
		return ctx.Err()
	}

	if err := channel.SendCommand(o.config.CaptureControlAddr, channel.StopCommand()); err != nil {
		return err
	}
	o.logger.WithField("samples_file", RecordedSamplesFile).Info("Recording window closed")

	playback := process.NewHandle(o.logger, o.config.PlaybackCmd[0], o.config.PlaybackCmd[1:]...)
	if err := playback.Start(); err != nil {
		return err
	}
	sess.Track(playback)

	// Playback runs until the operator terminates it.
	if err := playback.Wait(ctx); err != nil {
		return err
	}
	if stderr := playback.Stderr(); stderr != "" {
		o.logger.WithField("stderr", stderr).Warning("Collaborator wrote to error stream")
	}
	return nil
}

// runFuzzing receives one captured frame, persists it, mines the common
// pattern, mutates the frame with the session's strategy, and relays the
// result to the encode/modulate collaborator.
func (o *Orchestrator) runFuzzing(ctx context.Context, sess *session.Session) error {
	data, err := channel.ReceiveFrame(ctx, o.config.FuzzInAddr, o.logger)
	if err != nil {
		return err
	}

	if err := os.WriteFile(o.config.CaptureFile, data, 0644); err != nil {
		return fmt.Errorf("failed to persist capture file: %w", err)
	}

	mined, err := o.miner.MineFile(o.config.CaptureFile)
	if err != nil {
		return err
	}
	o.logger.WithFields(logrus.Fields{
		"pattern_len":   len(mined.Sequence),
		"pattern_count": mined.Count,
	}).Info("Common pattern mined")

	engine, err := fuzzing.NewEngine(o.config.Strategy, mined, o.classifier, o.rng)
	if err != nil {
		return err
	}

	frame := o.classifier.ClassifyFrame(data)
	o.logger.WithFields(logrus.Fields{
		"protocol": frame.Protocol.String(),
		"bytes":    len(frame.Data),
	}).Info("Frame classified")

	mutated, err := engine.Mutate(frame)
	if err != nil {
		return err
	}

	if err := channel.SendFrame(o.config.FuzzOutAddr, mutated.Data); err != nil {
		return err
	}
	o.logger.WithFields(logrus.Fields{
		"mutator":  engine.Mutator().Name(),
		"protocol": mutated.Protocol.String(),
		"bytes":    len(mutated.Data),
	}).Info("Frame relayed to modulation")
	return nil
}

// runJamming assembles the jamming parameter command and sends it once to
// the signal generation collaborator. Fire-and-forget: no confirmation is
// awaited.
func (o *Orchestrator) runJamming(sess *session.Session) error {
	params := o.config.Jam
	if params.Freq == "" {
		params.Freq = DefaultJamFreq
	}
	if params.Power == "" {
		params.Power = DefaultJamPower
	}
	if params.Bandwidth == "" {
		params.Bandwidth = DefaultJamBandwidth
	}

	// Validate the encoding before any channel is opened; parse errors are
	// fatal at startup.
	raw := channel.EncodeJamParams(params)
	cmd, err := channel.ParamsCommand(raw)
	if err != nil {
		return err
	}

	if err := channel.SendCommand(o.config.GenControlAddr, cmd); err != nil {
		return err
	}
	o.logger.WithFields(logrus.Fields{
		"freq":      params.Freq,
		"power":     params.Power,
		"bandwidth": params.Bandwidth,
	}).Info("Jamming parameters sent")
	return nil
}

// runGNSS spawns the GNSS simulator with the configured fake location and
// time and blocks until it exits.
func (o *Orchestrator) runGNSS(ctx context.Context, sess *session.Session) error {
	runner := process.NewGNSSRunner(o.config.NavFile, o.logger)
	output, err := runner.Run(ctx, o.config.GNSS)
	if err != nil {
		return err
	}
	if output != "" {
		o.logger.WithField("output", output).Info("GNSS signal generation output")
	}
	return nil
}

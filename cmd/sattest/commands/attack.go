/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: attack.go
Description: Attack command implementation for the SatTest harness. Builds
the harness configuration from flags, validates the per-mode parameters,
and runs the mode orchestrator with signal-driven graceful shutdown.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/sattest/pkg/interfaces"
	"github.com/kleascm/sattest/pkg/orchestrator"
)

// RunAttack executes one attack mode invocation
func RunAttack(cmd *cobra.Command, args []string) error {
	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create harness configuration
	config := createHarnessConfig()

	// Validate configuration before any channel is opened
	if err := validateHarnessConfig(config, cmd); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logging
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.GetLogger().Info("Received shutdown signal, stopping attack mode")
		cancel()
	}()

	// Run the orchestrator
	orch := orchestrator.New(config, logger.GetLogger())
	if err := orch.Run(ctx); err != nil {
		return fmt.Errorf("attack mode %s failed: %w", config.Mode, err)
	}
	return nil
}

// createHarnessConfig builds the harness configuration from viper values
func createHarnessConfig() *interfaces.HarnessConfig {
	config := orchestrator.DefaultConfig()

	config.Mode = interfaces.Mode(viper.GetString("mode"))
	config.RecordTime = time.Duration(viper.GetInt("record_time")) * time.Second
	config.Strategy = interfaces.FuzzStrategy(viper.GetString("fuzzing"))
	config.CaptureFile = viper.GetString("capture_file")
	config.NavFile = viper.GetString("nav_file")
	config.LogLevel = viper.GetString("log_level")
	config.LogDir = viper.GetString("log_dir")

	if cmdline := viper.GetStringSlice("playback_cmd"); len(cmdline) > 0 {
		config.PlaybackCmd = cmdline
	}

	config.Jam = interfaces.JamParams{
		Freq:      viper.GetString("freq"),
		Power:     viper.GetString("power"),
		Bandwidth: viper.GetString("bandwidth"),
	}
	config.GNSS = interfaces.GNSSParams{
		Latitude:  viper.GetFloat64("lat"),
		Longitude: viper.GetFloat64("lon"),
		Altitude:  viper.GetFloat64("altitude"),
		Time:      viper.GetInt64("time"),
	}

	return config
}

// validateHarnessConfig validates the per-mode parameters
func validateHarnessConfig(config *interfaces.HarnessConfig, cmd *cobra.Command) error {
	switch config.Mode {
	case interfaces.ModeSignalReplay:
		if config.RecordTime <= 0 {
			return fmt.Errorf("recordTime must be positive")
		}
	case interfaces.ModeSignalFuzzing:
		switch config.Strategy {
		case interfaces.StrategyRandom, interfaces.StrategyHeuristic:
			// ok
		default:
			return fmt.Errorf("--fuzzing must be 'random' or 'heuristic'")
		}
	case interfaces.ModeSignalJamming:
		// All parameters optional; defaults applied by the orchestrator.
	case interfaces.ModeGNSSAttacking:
		for _, flag := range []string{"lat", "lon", "altitude", "time"} {
			if !cmd.Flags().Changed(flag) {
				return fmt.Errorf("--%s is required for GNSSAttacking", flag)
			}
		}
	default:
		return fmt.Errorf("unknown mode %q: must be one of SignalReplay, SignalFuzzing, SignalJamming, GNSSAttacking", config.Mode)
	}
	return nil
}

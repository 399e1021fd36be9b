/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for the SatTest harness. Provides the
single attack entry command with per-mode options, configuration management,
and logging setup for satellite-link security testing.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/sattest/cmd/sattest/commands"
)

var (
	// Configuration
	configFile string
	logLevel   string
	logDir     string
	jsonLogs   bool

	// Mode selection
	mode string

	// SignalReplay configuration
	recordTime int

	// SignalFuzzing configuration
	fuzzStrategy string
	captureFile  string

	// SignalJamming configuration
	freq      string
	power     string
	bandwidth string

	// GNSSAttacking configuration
	lat      float64
	lon      float64
	altitude float64
	gnssTime int64
	navFile  string

	// Collaborator configuration
	playbackCmd []string
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "sattest",
		Short: "SatTest - Satellite-link security-testing harness",
		Long: `SatTest is a protocol-aware fuzzing engine and multi-mode attack orchestrator
for satellite-link security testing. It captures, mutates, replays, jams, and
spoofs RF-carried telemetry/command frames by sequencing software-defined-radio
collaborator processes through TCP control and data channels.`,
		Version: "1.0.0",
		RunE:    commands.RunAttack,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log output directory (empty = stdout only)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Mode selection
	rootCmd.Flags().StringVar(&mode, "mode", "", "Attack mode: SignalReplay, SignalFuzzing, SignalJamming, GNSSAttacking (required)")

	// SignalReplay flags
	rootCmd.Flags().IntVar(&recordTime, "recordTime", 60, "Recording time in seconds (SignalReplay)")
	rootCmd.Flags().StringSliceVar(&playbackCmd, "playback-cmd", []string{"python3", "playback.py"}, "Playback collaborator command")

	// SignalFuzzing flags
	rootCmd.Flags().StringVar(&fuzzStrategy, "fuzzing", "", "Fuzzing strategy: random or heuristic (required for SignalFuzzing)")
	rootCmd.Flags().StringVar(&captureFile, "capture-file", "flow_data.bin", "Capture file for received frame bytes")

	// SignalJamming flags
	rootCmd.Flags().StringVar(&freq, "freq", "", "Jamming signal frequency (default 2.4G)")
	rootCmd.Flags().StringVar(&power, "power", "", "Jamming signal power (default 30)")
	rootCmd.Flags().StringVar(&bandwidth, "bandwidth", "", "Jamming signal bandwidth (default 10M)")

	// GNSSAttacking flags
	rootCmd.Flags().Float64Var(&lat, "lat", 0, "GNSS signal latitude (required for GNSSAttacking)")
	rootCmd.Flags().Float64Var(&lon, "lon", 0, "GNSS signal longitude (required for GNSSAttacking)")
	rootCmd.Flags().Float64Var(&altitude, "altitude", 0, "GNSS signal altitude (required for GNSSAttacking)")
	rootCmd.Flags().Int64Var(&gnssTime, "time", 0, "GNSS signal time (required for GNSSAttacking)")
	rootCmd.Flags().StringVar(&navFile, "nav-file", "brdc3540.14n", "GPS broadcast ephemeris file")

	// Mark required flags
	rootCmd.MarkFlagRequired("mode")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	viper.BindPFlag("record_time", rootCmd.Flags().Lookup("recordTime"))
	viper.BindPFlag("playback_cmd", rootCmd.Flags().Lookup("playback-cmd"))
	viper.BindPFlag("fuzzing", rootCmd.Flags().Lookup("fuzzing"))
	viper.BindPFlag("capture_file", rootCmd.Flags().Lookup("capture-file"))
	viper.BindPFlag("freq", rootCmd.Flags().Lookup("freq"))
	viper.BindPFlag("power", rootCmd.Flags().Lookup("power"))
	viper.BindPFlag("bandwidth", rootCmd.Flags().Lookup("bandwidth"))
	viper.BindPFlag("lat", rootCmd.Flags().Lookup("lat"))
	viper.BindPFlag("lon", rootCmd.Flags().Lookup("lon"))
	viper.BindPFlag("altitude", rootCmd.Flags().Lookup("altitude"))
	viper.BindPFlag("time", rootCmd.Flags().Lookup("time"))
	viper.BindPFlag("nav_file", rootCmd.Flags().Lookup("nav-file"))

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the SatTest commands. Provides common
configuration loading and logging setup used by the attack entry command.
*/

package commands

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kleascm/sattest/pkg/logging"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("SATTEST")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system
func SetupLogging() (*logging.Logger, error) {
	format := logging.LogFormatCustom
	if viper.GetBool("json_logs") {
		format = logging.LogFormatJSON
	}

	logger, err := logging.NewLogger(&logging.Config{
		Level:     viper.GetString("log_level"),
		Format:    format,
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  10,
		Colors:    !viper.GetBool("json_logs"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

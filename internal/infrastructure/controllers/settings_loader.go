package controllers

import (
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/relgen/config"
	"github.com/rios0rios0/relgen/internal/domain/entities"
)

// loadSettings reads the configuration given with --config, or the first one
// found in the default locations, and assembles the settings out of it.
// Without a config file the settings come from RELGEN_* variables only.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := config.FindConfigFile()
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			logger.Debug("No config file found, reading settings from the environment")
		case err != nil:
			return nil, err
		default:
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return entities.AssembleSettings(cfg.Values, cfg.BaseDir)
}

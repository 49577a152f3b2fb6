package config

import (
	"fmt"
	"os"
	"path/filepath"

	"qam-observer/pkg/logger"
)

// initializeConfig creates or loads the configuration.
func initializeConfig(providedPath string, defaultPath string, log *logger.Logger) (*Config, error) {
	// Try provided path first if specified
	if providedPath != "" {
		config, err := loadConfigFromPath(providedPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	// Try default path, create if doesn't exist
	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		config, err := DefaultConfig(log)
		if err != nil {
			return nil, err
		}

		data, err := config.marshal()
		if err != nil {
			return nil, err
		}

		if err := os.WriteFile(defaultPath, data, 0644); err != nil {
			return nil, err
		}
		log.Info("Wrote default configuration", "path", defaultPath)
		return config, nil
	}

	config, err := loadConfigFromPath(defaultPath, log)
	if err != nil {
		log.Warn("Existing config unreadable, falling back to defaults", "path", defaultPath)
		return DefaultConfig(log)
	}
	return config, nil
}

// FindConfig locates and initializes the configuration.
func FindConfig(providedPath string, log *logger.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	// Get user config directory
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		log.Error("Failed to get user config directory", err)
		return nil, err
	}

	// Setup default paths
	defaultConfigDir := filepath.Join(homeConfigDir, "qam-observer")
	defaultConfigPath := filepath.Join(defaultConfigDir, "config.json")

	log.Debug("Configuration paths",
		"config_dir", defaultConfigDir,
		"config_path", defaultConfigPath)

	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		log.Error("Failed to create config directory", err, "path", defaultConfigDir)
		return nil, err
	}

	config, err := initializeConfig(providedPath, defaultConfigPath, log)
	if err != nil {
		return nil, err
	}

	log.Info("Configuration ready",
		"node_id", config.GetNodeID(),
		"socket_path", config.GetSocketPath(),
		"poll_interval", config.GetPollInterval())

	return config, nil
}

// Path returns the path the config was loaded from, for watchers.
// Empty when the config came from defaults without a file.
func Path(providedPath string) (string, error) {
	if providedPath != "" {
		return providedPath, nil
	}
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeConfigDir, "qam-observer", "config.json"), nil
}

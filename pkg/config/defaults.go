package config

import (
	"fmt"

	"qam-observer/pkg/logger"
)

const (
	// DefaultNodeID is the navigation node of the Quick Access Menu.
	DefaultNodeID = "QuickAccess-NA"

	// DefaultPollIntervalMs is the compositor poll interval.
	DefaultPollIntervalMs = 250

	// DefaultSocketPath is where the status socket is created.
	DefaultSocketPath = "/tmp/qam-observer.sock"
)

// DefaultConfig creates a default configuration. The window matchers
// cover the Steam overlay surfaces the Quick Access Menu lives in.
func DefaultConfig(log *logger.Logger) (*Config, error) {
	log.Debug("Creating default configuration")

	config := &Config{
		nodeID:         DefaultNodeID,
		windowClasses:  []string{"steam", "gamescope"},
		windowTitles:   []string{"Quick Access"},
		pollIntervalMs: DefaultPollIntervalMs,
		socketPath:     DefaultSocketPath,
		notifyCommand:  "",
		log:            log,
	}

	if err := config.validate(); err != nil {
		log.Error("Failed to validate default config", err)
		return nil, fmt.Errorf("failed to validate default config: %w", err)
	}

	log.Info("Created default configuration",
		"node_id", config.nodeID,
		"class_count", len(config.windowClasses),
		"title_count", len(config.windowTitles))

	return config, nil
}

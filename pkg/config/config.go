package config

import (
	"fmt"
	"time"

	"qam-observer/pkg/logger"
)

// Config holds the application configuration.
type Config struct {
	// Configurable via JSON file (private fields to enforce immutability)
	nodeID         string
	windowClasses  []string
	windowTitles   []string
	pollIntervalMs int
	socketPath     string
	notifyCommand  string

	// Internal fields
	log *logger.Logger
}

// New creates a new Config instance with the provided logger.
func New(log *logger.Logger) *Config {
	return &Config{
		log: log,
	}
}

// GetNodeID returns the navigation node id to observe.
func (c *Config) GetNodeID() string {
	return c.nodeID
}

// GetWindowClasses returns the compositor window classes bound to the node.
func (c *Config) GetWindowClasses() []string {
	return c.windowClasses
}

// GetWindowTitles returns the compositor window titles bound to the node.
func (c *Config) GetWindowTitles() []string {
	return c.windowTitles
}

// GetPollInterval returns the compositor poll interval.
func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.pollIntervalMs) * time.Millisecond
}

// GetSocketPath returns the status socket path.
func (c *Config) GetSocketPath() string {
	return c.socketPath
}

// GetNotifyCommand returns the user-configured notification command.
func (c *Config) GetNotifyCommand() string {
	return c.notifyCommand
}

// validate fills defaults for omitted fields and rejects nonsense.
func (c *Config) validate() error {
	if c.nodeID == "" {
		c.nodeID = DefaultNodeID
	}
	if c.pollIntervalMs == 0 {
		c.pollIntervalMs = DefaultPollIntervalMs
	}
	if c.pollIntervalMs < 0 {
		return fmt.Errorf("poll_interval_ms must not be negative, got %d", c.pollIntervalMs)
	}
	if c.socketPath == "" {
		c.socketPath = DefaultSocketPath
	}
	if len(c.windowClasses) == 0 && len(c.windowTitles) == 0 {
		return fmt.Errorf("at least one window class or title is required")
	}
	return nil
}

package config

import (
	"encoding/json"
	"os"

	"qam-observer/pkg/logger"
)

// fileFormat is the JSON shape of the config file.
type fileFormat struct {
	NodeID         string   `json:"node_id"`
	WindowClasses  []string `json:"window_classes"`
	WindowTitles   []string `json:"window_titles"`
	PollIntervalMs int      `json:"poll_interval_ms"`
	SocketPath     string   `json:"socket_path"`
	NotifyCommand  string   `json:"notify_command"`
}

// LoadFromFile loads the configuration from a JSON file.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return err
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	var temp fileFormat
	if err := json.Unmarshal(data, &temp); err != nil {
		log.Error("Failed to parse config JSON", err)
		return err
	}
	log.Debug("Config JSON parsed successfully")

	// Assign to private fields
	c.nodeID = temp.NodeID
	c.windowClasses = temp.WindowClasses
	c.windowTitles = temp.WindowTitles
	c.pollIntervalMs = temp.PollIntervalMs
	c.socketPath = temp.SocketPath
	c.notifyCommand = temp.NotifyCommand

	return c.validate()
}

// loadConfigFromPath loads the configuration from a file.
func loadConfigFromPath(path string, log *logger.Logger) (*Config, error) {
	config := &Config{log: log}
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}

// marshal renders the config back into its file shape.
func (c *Config) marshal() ([]byte, error) {
	return json.MarshalIndent(fileFormat{
		NodeID:         c.nodeID,
		WindowClasses:  c.windowClasses,
		WindowTitles:   c.windowTitles,
		PollIntervalMs: c.pollIntervalMs,
		SocketPath:     c.socketPath,
		NotifyCommand:  c.notifyCommand,
	}, "", "    ")
}

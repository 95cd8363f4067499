// Package config loads the pinboard server configuration.
//
// Config file locations (priority order):
//  1. $PINBOARD_CONFIG
//  2. ./pinboard.yaml
//  3. ~/.config/pinboard/config.yaml
//  4. /etc/pinboard/config.yaml
//
// Command-line flags override whatever the file sets.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr         = ":3000"
	DefaultDatabasePath = "./pinboard.db"
	DefaultInterval     = 50 * time.Millisecond
	DefaultDebounce     = 200 * time.Millisecond
	DefaultMQTTTopic    = "pinboard/simulation"
	DefaultMQTTClientID = "pinboard"
	DefaultLogLevel     = "info"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, errors.Wrap(err, "parse config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.Interval.Duration() <= 0 {
		return errors.Errorf("simulation interval must be positive, got %s", c.Simulation.Interval.Duration())
	}
	if c.Watch.Debounce.Duration() < 0 {
		return errors.Errorf("watch debounce must not be negative, got %s", c.Watch.Debounce.Duration())
	}
	return nil
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Simulation.Interval == 0 {
		c.Simulation.Interval = Duration(DefaultInterval)
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(DefaultDebounce)
	}
	if c.MQTT.Topic == "" {
		c.MQTT.Topic = DefaultMQTTTopic
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = DefaultMQTTClientID
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

package config

import "time"

// Config is the persisted server configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Simulation SimulationConfig `yaml:"simulation"`
	MQTT       MQTTConfig       `yaml:"mqtt,omitempty"`
	Watch      WatchConfig      `yaml:"watch,omitempty"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SimulationConfig controls the simulation clock.
type SimulationConfig struct {
	// Interval is the wall-clock period between ticks. Simulated time
	// always advances 0.1s per tick regardless of this value.
	Interval Duration `yaml:"interval"`
}

// MQTTConfig enables publishing simulation frames to a broker.
// Publishing is disabled when Broker is empty.
type MQTTConfig struct {
	Broker   string `yaml:"broker,omitempty"`
	ClientID string `yaml:"client_id,omitempty"`
	Topic    string `yaml:"topic,omitempty"`
}

// Enabled reports whether a broker is configured.
func (m MQTTConfig) Enabled() bool {
	return m.Broker != ""
}

// WatchConfig points at a circuit file that is reloaded on change.
type WatchConfig struct {
	CircuitPath string   `yaml:"circuit_path,omitempty"`
	Debounce    Duration `yaml:"debounce,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Package config loads simulator configuration from a YAML file.
// cmd/ossimd layers its CLI flags on top; environment variables are
// not read.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Default values, matching the original simulator's defaults.
const (
	DefaultPages      = 20
	DefaultFrames     = 30
	DefaultThreshold  = 4
	DefaultPolicy     = "NRU"
	DefaultSocketPath = "/tmp/ossim.sock"
	DefaultTickMs     = 100
	DefaultTimeSlice  = 500
	DefaultMaxClients = 16
)

// SimConfig is the simulator's runtime configuration, unmarshalled
// from YAML under the `simulator:` key.
type SimConfig struct {
	Pages      int    `mapstructure:"pages"`
	Frames     int    `mapstructure:"frames"`
	Threshold  int    `mapstructure:"threshold"`
	Policy     string `mapstructure:"policy"`
	SocketPath string `mapstructure:"socket_path"`
	TickMs     int    `mapstructure:"tick_ms"`
	TimeSlice  int    `mapstructure:"time_slice_ms"`
	MaxClients int    `mapstructure:"max_clients"`
	Debug      bool   `mapstructure:"debug"`
}

// OssimConfig is the top-level config file shape.
type OssimConfig struct {
	Simulator SimConfig `mapstructure:"simulator"`
}

func withDefaults(c SimConfig) SimConfig {
	if c.Pages <= 0 {
		c.Pages = DefaultPages
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	if c.Threshold < 0 {
		c.Threshold = DefaultThreshold
	}
	if c.Policy == "" {
		c.Policy = DefaultPolicy
	}
	if c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath
	}
	if c.TickMs <= 0 {
		c.TickMs = DefaultTickMs
	}
	if c.TimeSlice <= 0 {
		c.TimeSlice = DefaultTimeSlice
	}
	if c.MaxClients <= 0 {
		c.MaxClients = DefaultMaxClients
	}
	return c
}

// Load reads the YAML config at path, falling back to defaults for
// anything unset. A missing file is not an error: the simulator runs
// with defaults, the way the original CLI did when no flags were given.
func Load(path string) (*SimConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := withDefaults(SimConfig{Threshold: DefaultThreshold})
		return &cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	// A threshold of 0 is a valid setting, so an absent key gets its
	// default here rather than in withDefaults.
	v.SetDefault("simulator.threshold", DefaultThreshold)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg OssimConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	sim := withDefaults(cfg.Simulator)
	return &sim, nil
}

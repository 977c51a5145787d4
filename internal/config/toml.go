// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Demo DemoConfig `toml:"demo"`
}

// DemoConfig maps demo-run settings. Pointer fields distinguish "unset"
// from explicit zero values.
type DemoConfig struct {
	PhysicalLimitGB *float64   `toml:"physical-limit-gb"`
	Seed            *int64     `toml:"seed"`
	Pause           *string    `toml:"pause"`
	NoWait          *bool      `toml:"no-wait"`
	Output          *string    `toml:"output"`
	Files           []FileSpec `toml:"files"`
}

// FileSpec names one file the demo registers in place of the stock set.
type FileSpec struct {
	Name   string `toml:"name"`
	SizeMB int64  `toml:"size-mb"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

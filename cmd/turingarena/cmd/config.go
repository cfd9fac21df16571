package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds defaults read from a turingarena.yaml file. Any flag
// explicitly given on the command line overrides the corresponding field.
type Config struct {
	CallTimeout duration `yaml:"callTimeout"`
	Color       bool     `yaml:"color"`
}

// duration wraps time.Duration so it unmarshals from a Go duration string
// ("5s", "200ms") rather than yaml.v3's default of a bare integer of
// nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("callTimeout: %w", err)
	}
	*d = duration(parsed)
	return nil
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a turingarena.yaml defaults file")
}

// loadConfig reads configPath, if set, returning a zero Config otherwise.
func loadConfig() (Config, error) {
	var cfg Config
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", configPath, err)
	}
	return cfg, nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-dispatch/log"
)

// Config is the host configuration, read from a YAML file and overridden by
// command-line flags.
type Config struct {
	Manifest    string     `yaml:"manifest"`
	Log         log.Config `yaml:"log"`
	Suggestions int        `yaml:"suggestions"`
	Recovery    bool       `yaml:"recovery"`
	// Handlers names the ready-made global options to install
	Handlers []string `yaml:"handlers"`
	// Test is the value returned by the "test" handler
	Test string `yaml:"test"`
}

func defaultConfig() Config {
	return Config{
		Log:         log.Config{Name: "dispatch", Level: log.Warn},
		Suggestions: 2,
		Recovery:    true,
		Handlers:    []string{"help", "dry-run", "quiet", "verbose"},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

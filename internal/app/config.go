package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Path          string   // topology file or directory
	Excludes      []string // file patterns skipped during discovery
	InjectionPath string   // optional attribute-injection file

	Format    string // "text" or "json"
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.Format)
	}
	return &cfg, nil
}

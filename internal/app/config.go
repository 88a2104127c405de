package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ScenePath points at a scenario .hcl file or a directory of them.
	ScenePath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenePath == "" {
		return nil, errors.New("ScenePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	PlanPath string // .hcl plan file or directory

	// Phase selection. Exact is mutually exclusive with StartWith/EndWith;
	// the CLI enforces that before the config is built.
	StartWith string
	EndWith   string
	Exact     string

	// Args are pool seed values from the command line, merged over the
	// plan's args block.
	Args map[string]any

	ListPhases bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

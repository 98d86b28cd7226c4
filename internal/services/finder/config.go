package finder

import (
	"fmt"
	"runtime"
	"time"
)

const (
	StrategyPairs      = "pairs"
	StrategyStriped    = "striped"
	StrategyContiguous = "contiguous"
)

const DefaultChunkSize = 256

type Config struct {
	Workers   int    `yaml:"workers"`
	Limit     int    `yaml:"limit"`
	Strategy  string `yaml:"strategy"`
	ChunkSize int    `yaml:"chunk_size"`
	MaxRuns   int    `yaml:"max_runs"`

	// ProgressPeriod enables periodic progress log lines when positive.
	ProgressPeriod time.Duration `yaml:"progress_period"`
}

func (c *Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidConfig)
	}

	switch c.Strategy {
	case "", StrategyPairs, StrategyStriped, StrategyContiguous:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}

	if c.ProgressPeriod < 0 {
		return fmt.Errorf("%w: progress period must not be negative", ErrInvalidConfig)
	}

	return nil
}

// WithDefaults returns a copy with zero values replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Strategy == "" {
		c.Strategy = StrategyPairs
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.MaxRuns <= 0 {
		c.MaxRuns = 1
	}
	return c
}

package app

import (
	"fmt"
	"os"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/notifier"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/output"
	"github.com/kestfor/FiveWordCliques/pkg/logging"
	"gopkg.in/yaml.v3"
)

const defaultPort = 8080

type HTTPServerConfig struct {
	Port int `yaml:"port"`
}

type Config struct {
	Logger   *logging.LoggerConfig        `yaml:"logger"`
	Finder   *finder.Config               `yaml:"finder"`
	Output   *output.Config               `yaml:"output"`
	HTTP     *HTTPServerConfig            `yaml:"http"`
	Notifier *notifier.HTTPNotifierConfig `yaml:"notifier"`
}

// loadConfig reads path when set, missing sections get zero-value defaults.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if err := yaml.Unmarshal(bytes, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = &logging.LoggerConfig{Level: "info"}
	}
	if cfg.Finder == nil {
		cfg.Finder = &finder.Config{}
	}
	if cfg.Output == nil {
		cfg.Output = &output.Config{Format: output.FormatTSV}
	}
	if cfg.HTTP == nil {
		cfg.HTTP = &HTTPServerConfig{Port: defaultPort}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = &notifier.HTTPNotifierConfig{}
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Finder.Validate(); err != nil {
		return err
	}

	if err := c.Output.Validate(); err != nil {
		return err
	}

	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http port %d out of range", finder.ErrInvalidConfig, c.HTTP.Port)
	}

	return nil
}

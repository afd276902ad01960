package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model. Every value can be
// overridden by a command-line flag.
type Config struct {
	Account  AccountConfig  `yaml:"account"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
}

type AccountConfig struct {
	// Numeric account id as it appears in reply chains and DM sender ids.
	AccountId string `yaml:"accountId"`
	// Screen name, used for report naming and reply matching.
	ScreenName string `yaml:"screenName"`
}

type AnalysisConfig struct {
	// Maximum inactivity gap, in seconds, inside one conversation thread.
	WindowSeconds int `yaml:"windowSeconds"`
	// Records sampled per file during schema discovery.
	SampleLimit int `yaml:"sampleLimit"`
	// Number of ranked relationships in the report.
	Top int `yaml:"top"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // text, json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			WindowSeconds: 3600,
			SampleLimit:   100,
			Top:           20,
		},
		Output: OutputConfig{
			Dir:    "./reports",
			Format: "text",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing path returns
// the defaults without error; a present but unreadable or invalid file is
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Analysis.WindowSeconds <= 0 {
		return errors.New("analysis.windowSeconds must be positive")
	}
	if c.Analysis.SampleLimit < 0 {
		return errors.New("analysis.sampleLimit must not be negative")
	}
	switch c.Output.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}

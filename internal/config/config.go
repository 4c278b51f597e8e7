package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside Dir.
const FileName = "config.yaml"

// Defaults used when neither a flag nor the config file sets a value.
const (
	DefaultTemplate  = "./env"
	DefaultOutputDir = "."
	DefaultColor     = "auto"
)

// Config holds per-user defaults for the setenv flags.
// Explicit command-line flags always win over these values.
type Config struct {
	Template  string `yaml:"template"`
	OutputDir string `yaml:"output_dir"`
	Shell     string `yaml:"shell"`
	Color     string `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Template:  DefaultTemplate,
		OutputDir: DefaultOutputDir,
		Color:     DefaultColor,
	}
}

// Load reads the config file at path over the built-in defaults.
// A missing file is not an error; Default() is returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.merge(&file)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies every non-empty field of other into c.
func (c *Config) merge(other *Config) {
	if other.Template != "" {
		c.Template = other.Template
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.Shell != "" {
		c.Shell = other.Shell
	}
	if other.Color != "" {
		c.Color = other.Color
	}
}

func (c *Config) validate() error {
	return ValidateColor(c.Color)
}

// ValidateColor checks a color mode from the config file or --color.
func ValidateColor(mode string) error {
	switch mode {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("invalid color %q (want auto, always or never)", mode)
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lucasmrdt/epitech-styling-code/internal/source"
)

// Config represents the application configuration
type Config struct {
	Rules      map[string]RuleConfig `yaml:"rules" toml:"rules"`
	Extensions []string              `yaml:"extensions" toml:"extensions"`
	Patterns   []PatternConfig       `yaml:"patterns" toml:"patterns"`
}

// RuleConfig represents configuration for a specific rule
type RuleConfig struct {
	Disabled bool   `yaml:"disabled" toml:"disabled"`
	Severity string `yaml:"severity" toml:"severity"`
}

// PatternConfig declares an extra pattern rule appended after the built-in
// ones. Group selects the capture group reported as the violation span; 0 is
// the whole match.
type PatternConfig struct {
	ID       string `yaml:"id" toml:"id"`
	Pattern  string `yaml:"pattern" toml:"pattern"`
	Message  string `yaml:"message" toml:"message"`
	Severity string `yaml:"severity" toml:"severity"`
	Group    int    `yaml:"group" toml:"group"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Extensions: append([]string(nil), source.DefaultExtensions...),
	}
}

// LoadConfig loads configuration from a YAML or TOML file. The format is
// chosen by extension; anything other than .toml is read as YAML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if filepath.Ext(path) == ".toml" {
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Rules == nil {
		config.Rules = make(map[string]RuleConfig)
	}
	if len(config.Extensions) == 0 {
		config.Extensions = append([]string(nil), source.DefaultExtensions...)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Patterns))
	for i, p := range c.Patterns {
		if p.ID == "" {
			return fmt.Errorf("pattern #%d: missing id", i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("pattern %s: duplicate id", p.ID)
		}
		seen[p.ID] = true
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return fmt.Errorf("pattern %s: %w", p.ID, err)
		}
		if p.Group < 0 || p.Group > re.NumSubexp() {
			return fmt.Errorf("pattern %s: group %d out of range (pattern has %d)", p.ID, p.Group, re.NumSubexp())
		}
	}
	return nil
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Settings that are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Colors        map[int]string `yaml:"colors"`         // Class index -> display color
	FallbackColor string         `yaml:"fallback_color"` // Color for indices without an entry
	Defaults      DefaultsConfig `yaml:"defaults"`
}

// DefaultsConfig overrides the built-in lists used when a side-car file
// cannot be read.
type DefaultsConfig struct {
	Features []string `yaml:"features"`
	Classes  []string `yaml:"classes"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return loadYAMLFile(getEnv("CONFIG_FILE", "config.yaml"))
}

func loadYAMLFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ColorOverrides returns the configured palette entries.
func (c *YAMLConfig) ColorOverrides() (map[int]string, string) {
	if c == nil {
		return nil, ""
	}
	return c.Colors, c.FallbackColor
}

// DefaultFeatures returns the configured feature defaults, or nil.
func (c *YAMLConfig) DefaultFeatures() []string {
	if c == nil {
		return nil
	}
	return c.Defaults.Features
}

// DefaultClasses returns the configured class defaults, or nil.
func (c *YAMLConfig) DefaultClasses() []string {
	if c == nil {
		return nil
	}
	return c.Defaults.Classes
}

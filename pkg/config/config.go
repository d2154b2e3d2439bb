// Package config provides YAML-based configuration loading with environment variable expansion.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Load loads configuration from a YAML file with environment variable expansion.
func Load[T any](filename string, target *T) error {
	if err := loadFile(filename, target); err != nil {
		return err
	}
	return validate(target)
}

// LoadLayered fills target, which already carries its defaults, from an
// optional YAML file, applies overlay on top, then validates. An empty
// filename skips the file layer entirely.
func LoadLayered[T any](filename string, target *T, overlay func(*T)) error {
	if filename != "" {
		if err := loadFile(filename, target); err != nil {
			return err
		}
	}
	if overlay != nil {
		overlay(target)
	}
	return validate(target)
}

func loadFile[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expandedData := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expandedData), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	return nil
}

func validate[T any](target *T) error {
	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}

// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// MCP_ALEXA_VERIFIER_CONFIG_FILE environment variable, with defaults applied
// for any missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: settings applied to every verification tool call
	Defaults struct {
		// TimeoutSeconds: HTTP timeout for certificate bundle downloads
		TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// RootsFile: optional PEM file of trusted root CAs; empty means system roots
		RootsFile string `json:"rootsFile,omitempty" yaml:"rootsFile,omitempty"`
	} `json:"defaults" yaml:"defaults"`
}

// detectConfigFormat determines the configuration file format based on file
// extension, using case-insensitive matching for cross-platform behavior.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the detected format.
func unmarshalConfig(data []byte, format configFormat, config *Config) error {
	switch format {
	case configFormatYAML:
		return yaml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}

// loadConfig reads the configuration file at configPath, falling back to
// defaults when the path is empty or fields are unset.
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}
	config.Defaults.TimeoutSeconds = 10

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", configPath, err)
	}

	if err := unmarshalConfig(data, detectConfigFormat(configPath), config); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", configPath, err)
	}

	if config.Defaults.TimeoutSeconds <= 0 {
		config.Defaults.TimeoutSeconds = 10
	}

	return config, nil
}

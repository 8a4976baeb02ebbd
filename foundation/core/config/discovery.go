// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Finds the cmdkit configuration file in the project directory,
//              the project's .cmdkit directory or the user config directory.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2025-10-19 v0.2.0: cmdkit search paths, optional discovery by default

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

// DefaultEnvPrefix is the prefix of environment overrides, CMDKIT_LOG_LEVEL
// overrides log.level.
const DefaultEnvPrefix = "CMDKIT"

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string // Directories to search for config files
	Filenames  []string // Base filenames to look for (without extension)
	Extensions []string // File extensions to try (.toml, .yaml, .yml)
	EnvPrefix  string   // Environment variable prefix for overrides
	Required   bool     // Whether finding a config file is required
}

// DefaultDiscoveryOptions returns the cmdkit search order
func DefaultDiscoveryOptions() DiscoveryOptions {
	paths := []string{".", filepath.Join(".", ".cmdkit")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cmdkit"))
	}
	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{"cmdkit"},
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvPrefix:  DefaultEnvPrefix,
		Required:   false,
	}
}

// Discover finds and loads the first existing configuration file. When none
// exists and the file is not required an empty Config is returned.
func Discover(options DiscoveryOptions) (*Config, error) {
	if len(options.Paths) == 0 {
		options.Paths = []string{"."}
	}
	if len(options.Filenames) == 0 {
		options.Filenames = []string{"cmdkit"}
	}
	if len(options.Extensions) == 0 {
		options.Extensions = []string{".toml", ".yaml", ".yml"}
	}

	if configPath, err := FindConfigFile(options); err == nil {
		cfg, err := LoadWithOptions(configPath, LoadOptions{
			Format:    FormatAuto,
			EnvPrefix: options.EnvPrefix,
		})
		if err != nil {
			return nil, kiterror.Wrap(err, fmt.Sprintf("found config file %s but failed to load", configPath)).
				WithOperation("config.Discover").
				WithDetail("path", configPath)
		}
		return cfg, nil
	}

	if options.Required {
		searchPaths := ListPossibleConfigFiles(options)
		return nil, kiterror.Newf("no configuration file found in paths: %s", strings.Join(searchPaths, ", ")).
			WithCode(kiterror.CodeConfigError).
			WithOperation("config.Discover").
			WithDetail("searchPaths", searchPaths)
	}

	return Empty(options.EnvPrefix), nil
}

// DiscoverWithDefaults discovers configuration with default options
func DiscoverWithDefaults() (*Config, error) {
	return Discover(DefaultDiscoveryOptions())
}

// FindConfigFile searches for a configuration file without loading it
func FindConfigFile(options DiscoveryOptions) (string, error) {
	for _, configPath := range ListPossibleConfigFiles(options) {
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}
	}

	return "", kiterror.New("configuration file not found").
		WithCode(kiterror.CodeNotFound).
		WithOperation("config.FindConfigFile")
}

// ListPossibleConfigFiles returns every candidate path in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	var paths []string
	for _, path := range options.Paths {
		for _, filename := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(path, filename+ext))
			}
		}
	}
	return paths
}

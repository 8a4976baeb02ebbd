// Package config provides configuration loading for cmdkit.
//
// Package: config
// Title: cmdkit Configuration Management
// Description: Loads TOML (BurntSushi/toml) and YAML (yaml.v3) files into a
//              nested map, resolves dotted keys with environment overrides
//              and discovers the project configuration file.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Discovery searches ./cmdkit.{toml,yaml,yml}, ./.cmdkit/ and
// $HOME/.config/cmdkit/ in that order. A key such as log.level is overridden
// by the environment variable CMDKIT_LOG_LEVEL.
//
// Keys read by the runtime:
//
//	log.level            trace, debug, info, warn, error
//	log.format           console, text, json, logfmt
//	cli.default_command  command run when the first argument is unknown
//	plugins              list of declared plugin names
//	plugins.enabled      allow-list for plugins found in directories
//	plugins.dirs         additional local plugin directories
//	plugins.debug        report plugin load errors
//
// Usage:
//
//	cfg, err := kitconfig.DiscoverWithDefaults()
//	if err != nil {
//		return err
//	}
//	level := cfg.GetString("log.level", "info")
package config

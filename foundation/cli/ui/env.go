// File: env.go
// Title: Environment Detection
// Description: Reads CI, interaction, verbosity and debug switches from the
//              process environment.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package ui

import (
	"os"

	"github.com/msto63/cmdkit/foundation/cli/registry"
	kitstringx "github.com/msto63/cmdkit/foundation/utils/stringx"
)

// Environment variable names
const (
	EnvCI            = "CI"
	EnvNoInteraction = "CMDKIT_NO_INTERACTION"
	EnvVerbose       = "CMDKIT_VERBOSE"
	EnvDebug         = "CMDKIT_DEBUG"
)

// Environment describes how the CLI may use the terminal
type Environment struct {
	CI            bool
	NoInteraction bool
	Verbose       bool
	Debug         bool
}

// Registry tokens for the terminal collaborators
var (
	EnvironmentToken = registry.NewToken[Environment]("environment")
	PrompterToken    = registry.NewToken[*Prompter]("prompter")
	ProgressToken    = registry.NewToken[ProgressFactory]("progress")
)

// DetectEnvironment reads the process environment
func DetectEnvironment() Environment {
	return EnvironmentFrom(os.LookupEnv)
}

// EnvironmentFrom reads the environment through lookup
func EnvironmentFrom(lookup func(string) (string, bool)) Environment {
	flag := func(names ...string) bool {
		for _, name := range names {
			if v, ok := lookup(name); ok && kitstringx.IsTruthy(v) {
				return true
			}
		}
		return false
	}

	return Environment{
		CI:            flag(EnvCI),
		NoInteraction: flag(EnvNoInteraction, "NO_INTERACTION"),
		Verbose:       flag(EnvVerbose, "VERBOSE"),
		Debug:         flag(EnvDebug, "DEBUG"),
	}
}

// Interactive reports whether prompts and animations are allowed
func (e Environment) Interactive() bool {
	return !e.CI && !e.NoInteraction
}

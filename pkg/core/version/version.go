// ============================================================================
// cmdkit - declarative CLI runtime
// ============================================================================
//
// Package:     version
// Description: Build and framework version information
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Framework is the version of the cmdkit runtime
const Framework = "0.1.0"

// Build information, set with -ldflags "-X ..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Program   string
	Version   string
	Framework string
	Commit    string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the build information of program. An empty programVersion
// falls back to the framework version.
func Get(program, programVersion string) Info {
	if programVersion == "" {
		programVersion = Framework
	}
	return Info{
		Program:   program,
		Version:   programVersion,
		Framework: Framework,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short returns "program version"
func (i Info) Short() string {
	return fmt.Sprintf("%s %s", i.Program, i.Version)
}

// String returns the multi-line version report
func (i Info) String() string {
	return fmt.Sprintf("%s %s\n  cmdkit:  %s\n  commit:  %s\n  built:   %s\n  go:      %s (%s)\n",
		i.Program, i.Version, i.Framework, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}

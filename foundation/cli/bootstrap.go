// File: bootstrap.go
// Title: Process Bootstrap
// Description: One-shot installation of termination signal handling and the
//              global switch pre-scan.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package cli

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	kitlog "github.com/msto63/cmdkit/foundation/core/log"
)

var signalNotify = signal.Notify

// Global switches accepted in front of the command name
const (
	FlagVerbose       = "--verbose"
	FlagDebug         = "--debug"
	FlagNoInteraction = "--no-interaction"
)

// bootstrap installs signal handling on the first call and points the
// handler at the context of the current run
func (c *CLI) bootstrap(cancel context.CancelFunc) {
	c.mu.Lock()
	c.cancel = cancel
	if c.bootstrapped {
		c.mu.Unlock()
		return
	}
	c.bootstrapped = true
	c.mu.Unlock()

	signals := make(chan os.Signal, 1)
	c.notify(signals, os.Interrupt, syscall.SIGTERM)
	go c.watchSignals(signals)
}

func (c *CLI) watchSignals(signals <-chan os.Signal) {
	sig, ok := <-signals
	if !ok {
		return
	}

	c.logger.Warn("received termination signal, shutting down", kitlog.Fields{"signal": sig.String()})

	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	// one scheduling turn for pending output
	runtime.Gosched()
	c.exit(signalExitCode(sig))
}

func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

// scanGlobalFlags applies the leading global switches to the environment and
// the log level and returns the remaining arguments
func (c *CLI) scanGlobalFlags(args []string) []string {
	c.mu.Lock()
	i := 0
scan:
	for ; i < len(args); i++ {
		switch args[i] {
		case FlagVerbose:
			c.env.Verbose = true
		case FlagDebug:
			c.env.Debug = true
		case FlagNoInteraction:
			c.env.NoInteraction = true
		default:
			break scan
		}
	}
	verbose := c.env.Verbose
	c.mu.Unlock()

	if verbose && c.logger.GetLevel() > kitlog.LevelDebug {
		c.logger.SetLevel(kitlog.LevelDebug)
	}
	return args[i:]
}

// File: doc.go
// Title: Terminal Collaborators Package Documentation
// Description: Environment detection, interactive prompts, progress
//              indicators and shared terminal styles.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

/*
Package ui holds the terminal collaborators of a cmdkit CLI.

Environment reads the switches that change terminal behavior: CI and
CMDKIT_NO_INTERACTION disable prompts and animations, CMDKIT_VERBOSE enables
debug logging and CMDKIT_DEBUG enables developer diagnostics. The unprefixed
NO_INTERACTION, VERBOSE and DEBUG variables are honored as well.

Prompter asks for input through small bubbletea programs. In a
non-interactive environment every prompt fails with a NON_INTERACTIVE error
instead of blocking.

Progress shows a spinner while work is running. When the output is not a
terminal or the environment is non-interactive it prints plain status lines.
*/
package ui

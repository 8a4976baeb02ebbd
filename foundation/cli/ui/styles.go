// File: styles.go
// Title: Terminal Styles
// Description: Shared lipgloss palette and status line helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package ui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	PromptStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// Success formats a success status line
func Success(msg string) string {
	return SuccessStyle.Render("✓") + " " + msg
}

// Failure formats a failure status line
func Failure(msg string) string {
	return ErrorStyle.Render("✗") + " " + msg
}

// Warning formats a warning status line
func Warning(msg string) string {
	return WarningStyle.Render("!") + " " + msg
}

// Muted renders secondary text
func Muted(msg string) string {
	return MutedStyle.Render(msg)
}

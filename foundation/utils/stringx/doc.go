// Package stringx provides the small string helpers shared by cmdkit.
//
// Package: stringx
// Title: String Helpers for cmdkit
// Description: Blank checks, truthiness parsing for environment switches and
//              manifest flags, list splitting and rune-aware padding for the
//              help renderer.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-19
package stringx

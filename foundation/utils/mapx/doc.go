// File: doc.go
// Title: Map Utilities Package Documentation
// Description: Package documentation for mapx.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19

// Package mapx provides generic helpers for Go maps. Command tables, option
// sets and manifest fields are iterated through SortedKeys so help output,
// validation messages and plugin integration are deterministic.
package mapx

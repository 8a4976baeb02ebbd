// File: catalog.go
// Title: Plugin Catalog
// Description: Static registration table of plugins linked into the binary.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package plugin

import (
	"sort"
	"sync"
)

// Factory builds a plugin
type Factory func() (*Plugin, error)

// Entry registers a plugin factory under a name
type Entry struct {
	Name    string
	Source  string
	Version string
	Factory Factory
}

// Catalog maps plugin names to factories
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// DefaultCatalog is filled by Register, typically from init functions
var DefaultCatalog = NewCatalog()

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Register adds entry to the default catalog
func Register(entry Entry) {
	DefaultCatalog.Register(entry)
}

// Register adds entry, replacing an entry of the same name
func (c *Catalog) Register(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Name] = entry
}

// Lookup returns the entry registered under name
func (c *Catalog) Lookup(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// Names returns all registered names, sorted
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

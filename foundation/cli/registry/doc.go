// File: doc.go
// Title: Service Registry Package Documentation
// Description: Token-keyed dependency container shared by the router, the
//              plugin layer and command handlers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

/*
Package registry provides the service container of a cmdkit CLI.

Values are addressed by typed tokens. A token is an opaque string key that
carries the type of the value it resolves to, so lookups need no type
assertions at the call site:

	var DBToken = registry.NewToken[*sql.DB]("db")

	registry.RegisterFactory(r, DBToken, func(*registry.Registry) (*sql.DB, error) {
		return sql.Open("sqlite3", "app.db")
	})

	db, err := registry.Get(r, DBToken) // factory runs once, result is cached

Instances win over factories for the same key. A later registration under the
same key replaces the earlier one. The registry is filled during startup and
plugin loading and read while a command runs; it is not safe for concurrent
mutation.
*/
package registry

// File: doc.go
// Title: Plugin Layer Package Documentation
// Description: Static plugin catalog, manifest discovery, loading and
//              integration of plugin services, commands and middleware.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

/*
Package plugin extends a cmdkit CLI with bundles of commands, services,
middleware and lifecycle hooks.

Plugin code is linked into the binary and registers itself in a catalog,
usually from an init function:

	func init() {
		plugin.Register(plugin.Entry{
			Name:    "dns",
			Version: "1.0.0",
			Factory: func() (*plugin.Plugin, error) { return newDNSPlugin(), nil },
		})
	}

Which catalog entries a project activates is decided by manifests. The project
manifest (cmdkit.yaml, cmdkit.yml, cmdkit.toml or cmdkit.hcl) lists plugin
names under "plugins" and local plugin directories under "plugin_dirs". Each
plugin directory may hold plugin manifests (plugin.yaml, plugin.toml,
plugin.hcl) that are found with a recursive glob. A plugin manifest is only
eligible when its "cmdkit-plugin" or "plugin" field is truthy. A declared name
takes its eligibility from the directory manifest of the same name; without
one it names a plugin linked into the binary:

	name = "dns"
	version = "1.0.0"
	cmdkit-plugin = true

Loading never fails as a whole. Candidates that are not eligible, not in the
catalog or whose factory fails are skipped; the errors are kept and only
logged in detail when debugging is enabled.

The Manager integrates loaded plugins into a registry and a router in a fixed
order per plugin: BeforeInit, services, commands, middleware, AfterInit. The
BeforeCommand and AfterCommand hooks of every loaded plugin run around every
command dispatch.
*/
package plugin

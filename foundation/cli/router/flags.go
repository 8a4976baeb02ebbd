// File: flags.go
// Title: Flag Grammar
// Description: Splits the arguments after the command name into options and
//              positional arguments.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package router

import "strings"

// ParseFlags parses args with the router's flag grammar:
//
//	--name=value  binds value verbatim
//	--name value  binds value unless it starts with "-", else name=true
//	-x value      same rule for exactly one character after the dash
//
// Any other dash-prefixed token is kept as a positional argument.
func ParseFlags(args []string) (map[string]any, []string) {
	options := make(map[string]any)
	var positionals []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		var name string
		switch {
		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			name = arg[2:]
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				options[name[:eq]] = name[eq+1:]
				continue
			}
		case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
			name = arg[1:]
		default:
			positionals = append(positionals, arg)
			continue
		}

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			options[name] = args[i+1]
			i++
			continue
		}
		options[name] = true
	}

	return options, positionals
}

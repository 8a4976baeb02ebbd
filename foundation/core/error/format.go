// File: format.go
// Title: Error Formatting For Process Exit
// Description: Helper that renders an error for the terminal and picks the
//              exit code the error declares.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package error

import (
	"fmt"
	"strings"
)

// FormatForExit returns a user facing message and the exit code for err.
// Structured errors contribute their own exit code; plain errors exit 1.
func FormatForExit(err error) (string, int) {
	if err == nil {
		return "", 0
	}

	e, ok := As(err)
	if !ok {
		return fmt.Sprintf("Error: %s", err.Error()), 1
	}

	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(err.Error())
	if cat := e.Code().Category(); cat != "generic" {
		fmt.Fprintf(&b, " [%s]", strings.ToLower(string(e.Code())))
	}

	code := e.ExitCode()
	if code == 0 {
		code = 1
	}
	return b.String(), code
}

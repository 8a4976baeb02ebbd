package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/msto63/cmdkit/cmd/cmdkit/cmd"
	"github.com/msto63/cmdkit/foundation/cli/ui"
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exit *cmd.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		msg, code := kiterror.FormatForExit(err)
		fmt.Fprintln(os.Stderr, ui.Failure(msg))
		os.Exit(code)
	}
}

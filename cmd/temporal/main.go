// Command temporal performs calendar and time zone aware date arithmetic.
package main

import (
	"errors"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/theory/temporal/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Reported {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

package main

import (
	"errors"
	"fmt"
	"os"

	app "github.com/mohammadpnp/cohort-sync/internal/application/cohort"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitError carries the process exit code of a failed command.
type exitError struct {
	code app.ExitCode
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return int(exitErr.code)
	}
	return int(app.ExitCodeSetup)
}

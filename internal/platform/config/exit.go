package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// Exit status codes used by command entrypoints.
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitUsage follows the flag package convention for bad arguments.
	ExitUsage = 2
)

// ExitCode maps a startup or run error onto a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// ErrUsage marks configuration errors caused by command-line input.
var ErrUsage = errors.New("usage")

// Usage wraps err so ExitCode reports ExitUsage.
func Usage(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// Report writes err to w prefixed with stage and returns its exit status.
// Help requests are not reported.
func Report(w io.Writer, stage string, err error) int {
	code := ExitCode(err)
	if code != ExitOK {
		fmt.Fprintf(w, "%s: %v\n", stage, err)
	}
	return code
}

// Exit reports err on stderr and terminates the process with its exit status.
// It returns only when err is nil.
func Exit(stage string, err error) {
	if err == nil {
		return
	}
	os.Exit(Report(os.Stderr, stage, err))
}

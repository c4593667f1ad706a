package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "help", err: flag.ErrHelp, want: ExitOK},
		{name: "wrapped help", err: fmt.Errorf("parse: %w", flag.ErrHelp), want: ExitOK},
		{name: "usage", err: Usage(errors.New("bad flag")), want: ExitUsage},
		{name: "failure", err: errors.New("disk full"), want: ExitFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestUsageKeepsHelpAndNil(t *testing.T) {
	t.Parallel()

	if Usage(nil) != nil {
		t.Fatal("Usage(nil) should stay nil")
	}
	if !errors.Is(Usage(flag.ErrHelp), flag.ErrHelp) || errors.Is(Usage(flag.ErrHelp), ErrUsage) {
		t.Fatal("help requests must not become usage errors")
	}
	cause := errors.New("bad flag")
	if err := Usage(cause); !errors.Is(err, cause) {
		t.Fatalf("Usage() lost the cause: %v", err)
	}
}

func TestReportWritesStageAndError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := Report(&out, "storefront", errors.New("listen: address in use"))
	if code != ExitFailure {
		t.Fatalf("code = %d, want %d", code, ExitFailure)
	}
	if got := out.String(); got != "storefront: listen: address in use\n" {
		t.Fatalf("output = %q", got)
	}

	out.Reset()
	if code := Report(&out, "parse flags", flag.ErrHelp); code != ExitOK || out.Len() != 0 {
		t.Fatalf("help report = %d %q", code, out.String())
	}
}

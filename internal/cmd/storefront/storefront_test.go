package storefront

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/asjuices/storefront/internal/platform/config"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.DBPath != "data/storefront.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.PaymentDelay != 1500*time.Millisecond {
		t.Fatalf("PaymentDelay = %s", cfg.PaymentDelay)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Fatalf("SessionTTL = %s", cfg.SessionTTL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}
	if cfg.TrustForwardedProto {
		t.Fatal("TrustForwardedProto should default to false")
	}
}

func TestParseConfigReadsEnvironment(t *testing.T) {
	t.Setenv("ASJUICES_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("ASJUICES_PAYMENT_DELAY", "0s")
	t.Setenv("ASJUICES_LOG_FORMAT", "console")

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" || cfg.PaymentDelay != 0 || cfg.Logging.Format != "console" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ASJUICES_HTTP_ADDR", "0.0.0.0:9000")

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002", "-trust-forwarded-proto", "-cart-idle", "1h"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
	if !cfg.TrustForwardedProto || cfg.CartIdle != time.Hour {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "blank address", args: []string{"-http-addr", " "}},
		{name: "blank db", args: []string{"-db-path", ""}},
		{name: "negative delay", args: []string{"-payment-delay", "-1s"}},
		{name: "short session", args: []string{"-session-ttl", "30s"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			_, err := ParseConfig(fs, tc.args)
			if got := config.ExitCode(err); got != config.ExitUsage {
				t.Fatalf("ExitCode(%v) = %d, want %d", err, got, config.ExitUsage)
			}
		})
	}
}

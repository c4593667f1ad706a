// Package main starts the As Juices storefront.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	storefrontcmd "github.com/asjuices/storefront/internal/cmd/storefront"
	"github.com/asjuices/storefront/internal/platform/config"
)

func main() {
	cfg, err := storefrontcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	config.Exit("parse flags", err)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = storefrontcmd.Run(ctx, cfg)
	stop()
	config.Exit("storefront", err)
}

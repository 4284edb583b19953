// Package main is the entry point for the markfmt command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/markfmt/internal/cli"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.Version = version

	// Handle signals for graceful shutdown of watch
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cruciblehq/rpmlb/internal/cli"
)

// The entry point for rpmlb.
//
// Runs the command line until it completes or the process is interrupted.
// Any error is logged and the process exits with a non-zero code.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error(err.Error())
		cancel()
		os.Exit(1)
	}
}

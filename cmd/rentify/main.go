// Package main provides the entry point for the rentify command-line client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/rentifyapp/rentify-client/internal/config"
	"github.com/rentifyapp/rentify-client/internal/di"
	"github.com/rentifyapp/rentify-client/internal/logger"
)

func main() {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "rentify: %v\n", err)
		os.Exit(2)
	}

	injector := di.NewContainer(cfg)

	app, err := di.Bootstrap(injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rentify: failed to start: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Ctrl-C cancels the in-flight request instead of killing the process
	// so the session store still closes cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := app.Run(ctx, args)

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "rentify: %v\n", runErr)
		os.Exit(1)
	}
}

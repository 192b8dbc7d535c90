// Package main runs the in-memory development backend for the rentify client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentifyapp/rentify-client/internal/devserver"
	"github.com/rentifyapp/rentify-client/internal/logger"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	seed := flag.String("seed", "", "Seed fixture file (JSON), hot-reloaded on change")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(*level),
		Environment: "development",
	})

	store := devserver.NewStore(log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *seed != "" {
		if err := store.LoadSeed(*seed); err != nil {
			fmt.Fprintf(os.Stderr, "devserver: %v\n", err)
			os.Exit(1)
		}
		go func() {
			if err := store.WatchSeed(ctx, *seed, log.Logger); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("seed watcher stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           devserver.NewServer(store, log.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("devserver listening", "addr", *addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}
}

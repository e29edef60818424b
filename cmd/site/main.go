package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	venuesite "github.com/rumriverbarn/venuesite"
)

func main() {
	if err := runServe(os.Args[1:]); err != nil {
		log.Fatalf("site: %v", err)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("site", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	version := fs.String("version", "", "Content version to serve (draft or published, defaults to config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := venuesite.ConfigFromEnv()
	if *version != "" {
		cfg.Version = *version
	}

	module, err := venuesite.New(cfg)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	module.API().Register(mux)

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	fmt.Fprintf(os.Stderr, "serving %s content on %s\n", cfg.Version, *addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vanshika/routeplanner/internal/app"
	"github.com/vanshika/routeplanner/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("ROUTEPLANNER_CONFIG"), "path to a config file (yaml, json, or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			a.Logger.Warn("shutdown incomplete", "error", err)
		}
	}()

	if err := a.Serve(ctx); err != nil {
		a.Logger.Error("server stopped unexpectedly", "error", err)
		stop()
		_ = a.Close(context.Background())
		os.Exit(1)
	}
}

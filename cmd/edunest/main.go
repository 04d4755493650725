package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"edunest/internal/config"
	"edunest/internal/database"
	"edunest/internal/fallback"
	"edunest/internal/gateway"
	"edunest/internal/logger"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	flags := flag.NewFlagSet("edunest", flag.ContinueOnError)
	ephemeral := flags.Bool("ephemeral", false, "Keep offline records in memory instead of the fallback database")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	logr, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logr.Sync() }()

	var slots fallback.Slots
	if *ephemeral {
		slots = fallback.NewMemorySlots()
	} else {
		db, err := database.Open(&cfg.Gateway.FallbackURL, logr.Named("fallback"))
		if err != nil {
			logr.Error("failed to open fallback store", zap.Error(err))
			return 1
		}
		defer func() { _ = database.Close(db) }()
		if slots, err = fallback.NewGormSlots(db); err != nil {
			logr.Error("failed to prepare fallback store", zap.Error(err))
			return 1
		}
	}

	gw := gateway.New(gateway.Config{
		BaseURL:  cfg.Gateway.APIBaseURL,
		AdminPIN: cfg.Admin.PIN,
		Timeout:  cfg.Gateway.Timeout,
	}, slots, logr.Named("gateway"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := &commandLine{gw: gw, out: os.Stdout}
	if err := cli.run(ctx, flags.Args()); err != nil {
		if errors.Is(err, errHelp) || errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

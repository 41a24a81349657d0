// Package main is the entry point for the planner CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskplanner/internal/adapter/client"
	"taskplanner/internal/adapter/localstate"
	"taskplanner/internal/app/planner"
	"taskplanner/internal/cli"
	"taskplanner/internal/config"
	"taskplanner/internal/core/reminder"
	"taskplanner/internal/exitcode"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := newLogger()
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadClientConfig()
	state, err := localstate.NewFileStore(cfg.StateDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return exitcode.UserError
	}

	api := client.New(cfg.APIURL, cfg.HTTPTimeout)
	clock := reminder.SystemClock{}
	p := planner.New(planner.Deps{
		Tasks:     api,
		Auth:      api,
		Session:   state,
		Identity:  api,
		Reminders: reminder.NewEvaluator(state, clock),
		Clock:     clock,
	})

	dispatcher := cli.NewDispatcher(cli.DefaultRegistry(), cli.Env{
		Planner: p,
		Config:  cfg,
		In:      os.Stdin,
	})
	return dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// newLogger writes warnings to stderr. PLANNER_DEBUG=1 lowers the level to debug.
func newLogger() *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if os.Getenv("PLANNER_DEBUG") != "" {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zcfg.DisableStacktrace = true
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"aocnotify/internal/app"
	"aocnotify/internal/config"
	logx "aocnotify/pkg/logx"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	boot := logx.NewConsole(os.Getenv(config.EnvLogLevel))

	cfg, err := config.LoadEnv()
	if err != nil {
		boot.Error("fatal: configuration", logx.Err(err))
		return 1
	}

	a, err := app.New(cfg)
	if err != nil {
		boot.Error("fatal: startup", logx.Err(err))
		return 1
	}
	defer func() { _ = a.Close() }()

	if err := a.Run(ctx); err != nil {
		return 1
	}
	return 0
}

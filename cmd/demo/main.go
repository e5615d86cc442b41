// Package main is the entry point for the terminal demo.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/samdwyer/gbademo/internal/game"
	"github.com/samdwyer/gbademo/internal/logging"
	"github.com/samdwyer/gbademo/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; variables may be set directly
	envErr := godotenv.Load()

	// The screen owns the terminal while the game runs, so logs go to a
	// file when one is named
	var out io.Writer = os.Stderr
	if path := os.Getenv("DEMO_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logging.New(os.Stderr, "demo", "").Error("cannot open log file", "path", path, "err", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	logger := logging.New(out, "demo", os.Getenv("DEMO_LOG_LEVEL"))
	if envErr != nil {
		logger.Debug(".env file not loaded", "err", envErr)
	}

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if telemetry.Enabled() {
		otelLog := stdr.New(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}))
		shutdown, err := telemetry.Setup(ctx, "gbademo", otelLog)
		if err != nil {
			logger.Warn("telemetry setup failed, running without tracing", "err", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("telemetry shutdown failed", "err", err)
				}
			}()
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to initialize screen", "err", err)
		return 1
	}

	logger.Debug("starting", "fps", cfg.FPS, "sprite", cfg.SpriteTag)
	if err := g.Run(ctx); err != nil {
		logger.Error("game error", "err", err)
		return 1
	}
	return 0
}

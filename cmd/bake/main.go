// Package main is the build-time table baker. It is run by go generate in
// internal/gamedata.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/samdwyer/gbademo/internal/baker"
	"github.com/samdwyer/gbademo/internal/logging"
	"github.com/samdwyer/gbademo/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; variables may be set directly
	envErr := godotenv.Load()

	cfg, err := baker.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bake: %v\n", err)
		return 2
	}

	var (
		sprites   = flag.String("sprites", strings.Join(cfg.SpritePaths, ","), "comma-separated Aseprite JSON files, baked in order")
		tagPolicy = flag.String("tag-policy", cfg.TagPolicy.String(), "frame tags with to < from: reject or clamp")
		level     = flag.String("log-level", os.Getenv("BAKE_LOG_LEVEL"), "log level (debug, info, warn, error)")
		verbose   = flag.Bool("v", false, "verbose output (same as -log-level debug)")
	)
	flag.StringVar(&cfg.MapPath, "map", cfg.MapPath, "Tiled TMX map whose first layer is baked")
	flag.StringVar(&cfg.OutPath, "o", cfg.OutPath, "generated Go source file")
	flag.StringVar(&cfg.Package, "pkg", cfg.Package, "package name of the generated source")
	flag.StringVar(&cfg.StampPath, "stamp", cfg.StampPath, "build stamp file (default <o>.stamp)")
	flag.BoolVar(&cfg.Force, "force", false, "bake even if inputs are unchanged")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -map <file.tmx> -sprites <a.json,b.json> -o <generated.go>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		*level = "debug"
	}
	logger := logging.New(os.Stderr, "bake", *level)
	if envErr != nil {
		logger.Debug(".env file not loaded", "err", envErr)
	}

	cfg.SpritePaths = baker.SplitList(*sprites)
	if cfg.TagPolicy, err = baker.ParseTagPolicy(*tagPolicy); err != nil {
		logger.Error("invalid flag", "err", err)
		return 2
	}

	ctx := context.Background()
	if telemetry.Enabled() {
		otelLog := stdr.New(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}))
		shutdown, err := telemetry.Setup(ctx, "gbademo-bake", otelLog)
		if err != nil {
			logger.Warn("telemetry setup failed, continuing without tracing", "err", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown failed", "err", err)
				}
			}()
		}
	}

	if _, err := baker.Run(ctx, cfg, logger); err != nil {
		logFailure(logger, err)
		return 1
	}
	return 0
}

// logFailure reports a bake error with the offending file when one is known.
func logFailure(logger *log.Logger, err error) {
	var (
		loadErr  *baker.LoadError
		layerErr *baker.LayerKindError
		tagErr   *baker.MalformedTagError
	)
	switch {
	case errors.As(err, &loadErr):
		logger.Error("cannot load input", "path", loadErr.Path, "err", loadErr.Err)
	case errors.As(err, &layerErr):
		logger.Error("unsupported map layout", "path", layerErr.Path, "err", err)
	case errors.As(err, &tagErr):
		logger.Error("malformed frame tag", "path", tagErr.Path, "tag", tagErr.Name,
			"from", tagErr.From, "to", tagErr.To, "hint", "fix the tag or use -tag-policy clamp")
	default:
		logger.Error("bake failed", "err", err)
	}
}

package baker

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/gbademo/internal/telemetry"
)

// Result summarises a bake.
type Result struct {
	RunID   string
	Skipped bool // output was already current
	Cells   int
	Tags    int
}

// Run bakes the map and sprite sheets named by cfg and writes the generated
// source to cfg.OutPath. Nothing is written unless both bakers succeed.
func Run(ctx context.Context, cfg Config, logger *log.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{RunID: uuid.NewString()}
	logger = logger.With("run", res.RunID)

	tracer := telemetry.Tracer("baker")
	ctx, span := tracer.Start(ctx, "bake.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("bake.run_id", res.RunID),
		attribute.String("bake.map", cfg.MapPath),
		attribute.StringSlice("bake.sprites", cfg.SpritePaths),
		attribute.String("bake.out", cfg.OutPath),
	)

	if !cfg.Force {
		stamp, err := ReadStamp(cfg.StampPath)
		if err != nil {
			logger.Warn("ignoring unreadable stamp", "path", cfg.StampPath, "err", err)
		} else if upToDate(cfg, stamp) {
			logger.Info("tables up to date", "out", cfg.OutPath)
			span.SetAttributes(attribute.Bool("bake.skipped", true))
			res.Skipped = true
			return res, nil
		}
	}

	var tables Tables
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, span := tracer.Start(gctx, "bake.tilemap")
		defer span.End()

		tiles, err := BakeTileMap(cfg.MapPath)
		if err != nil {
			return fail(span, err)
		}
		span.SetAttributes(
			attribute.Int("tilemap.width", tiles.Width),
			attribute.Int("tilemap.height", tiles.Height),
		)
		logger.Debug("baked tile map", "path", cfg.MapPath, "width", tiles.Width, "height", tiles.Height)
		tables.Tiles = tiles
		return nil
	})
	g.Go(func() error {
		_, span := tracer.Start(gctx, "bake.animations")
		defer span.End()

		anims, err := BakeAnimationTags(cfg.SpritePaths, cfg.TagPolicy)
		if err != nil {
			return fail(span, err)
		}
		span.SetAttributes(attribute.Int("animations.tags", len(anims)))
		logger.Debug("baked animation tags", "files", len(cfg.SpritePaths), "tags", len(anims))
		tables.Animations = anims
		return nil
	})
	if err := g.Wait(); err != nil {
		return res, fail(span, err)
	}

	if err := emit(ctx, cfg, tables); err != nil {
		return res, fail(span, err)
	}

	res.Cells = tables.Tiles.Len()
	res.Tags = len(tables.Animations)
	logger.Info("wrote tables", "out", cfg.OutPath, "cells", res.Cells, "tags", res.Tags)
	return res, nil
}

// emit renders tables, replaces the output file and records the stamp.
func emit(ctx context.Context, cfg Config, tables Tables) error {
	_, span := telemetry.Tracer("baker").Start(ctx, "bake.emit")
	defer span.End()

	src, err := Render(cfg.Package, tables)
	if err != nil {
		return fail(span, err)
	}
	span.SetAttributes(attribute.Int("emit.bytes", len(src)))

	if err := writeFileAtomic(cfg.OutPath, src); err != nil {
		return fail(span, fmt.Errorf("write %s: %w", cfg.OutPath, err))
	}

	stamp, err := newStamp(cfg, src)
	if err != nil {
		return fail(span, fmt.Errorf("hash inputs: %w", err))
	}
	if err := WriteStamp(cfg.StampPath, stamp); err != nil {
		return fail(span, fmt.Errorf("write stamp %s: %w", cfg.StampPath, err))
	}
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

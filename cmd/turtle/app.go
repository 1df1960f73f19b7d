package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/console"
	"turtlescript/console/pkg/journal"
	"turtlescript/console/pkg/journal/recorder"
	"turtlescript/console/pkg/journal/retention"
	"turtlescript/console/pkg/journal/storage"
	"turtlescript/console/pkg/script/device"
	"turtlescript/console/pkg/telemetry/logging"
	"turtlescript/console/pkg/telemetry/metrics"
	"turtlescript/console/pkg/telemetry/tracing"
)

// app holds the process-wide services shared by every session of a command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer

	store    journal.Storage
	recorder *recorder.Recorder
	pruner   *retention.Pruner

	metricsDone chan struct{}
	cancel      context.CancelFunc
}

// newApp builds logging, metrics, tracing and the journal from the global
// configuration. The returned app must be closed.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		cfg = config.Default()
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}
	ctx, a.cancel = context.WithCancel(ctx)

	if cfg.Telemetry.Metrics.Enabled {
		a.metrics = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
		if addr := cfg.Telemetry.Metrics.Listen; addr != "" {
			a.metricsDone = make(chan struct{})
			go func() {
				defer close(a.metricsDone)
				if err := a.metrics.Serve(ctx, addr, logger); err != nil {
					logger.Error("metrics endpoint failed", "address", addr, "error", err)
				}
			}()
		}
	}

	a.tracer, err = tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	if cfg.Journal.Enabled {
		if err := a.openJournal(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

func (a *app) openJournal(ctx context.Context) error {
	store, err := storage.Open(&a.cfg.Journal, a.logger)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	a.store = store

	recorderConfig := recorder.DefaultConfig()
	recorderConfig.MaxSourceLength = a.cfg.Journal.MaxSourceLength
	a.recorder = recorder.NewRecorder(store, recorderConfig, a.logger)

	if a.cfg.Journal.Retention.Days > 0 {
		a.pruner = retention.NewPruner(store, &retention.Config{
			RetentionDays: a.cfg.Journal.Retention.Days,
			Schedule:      a.cfg.Journal.Retention.Schedule,
		}, a.logger)

		if a.cfg.Journal.Retention.Schedule != "" {
			if err := a.pruner.Start(ctx); err != nil {
				a.logger.Warn("failed to start retention scheduler", "error", err)
			} else if next := a.pruner.NextPruning(); next != nil {
				a.logger.Debug("journal retention scheduler started", "next_pruning", next)
			}
		}
	}

	a.logger.Debug("journal opened", "driver", a.cfg.Journal.Driver, "path", a.cfg.Journal.Path)
	return nil
}

// newSession creates a console session writing script output to out. A nil
// dev draws on the session's own canvas.
func (a *app) newSession(out io.Writer, dev device.Device) (*console.Session, error) {
	return console.NewSession(console.Options{
		Config:  a.cfg,
		Device:  dev,
		Output:  out,
		Logger:  a.logger,
		Metrics: a.metrics,
		Tracer:  a.tracer,
		Journal: a.recorder,
	})
}

// Close stops background work, drains the journal and flushes spans.
func (a *app) Close() error {
	if a.pruner != nil {
		a.pruner.Stop()
	}
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.logger.Warn("failed to close journal recorder", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close journal storage", "error", err)
		}
	}

	a.cancel()
	if a.metricsDone != nil {
		<-a.metricsDone
	}

	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Telemetry.Tracing.Timeout)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.Warn("failed to flush traces", "error", err)
			return err
		}
	}
	return nil
}

// writeSVG renders canvas to path. An empty path does nothing.
func writeSVG(canvas *device.Canvas, path string) error {
	if path == "" || canvas == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	if err := canvas.WriteSVG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render SVG: %w", err)
	}
	return f.Close()
}

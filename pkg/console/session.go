package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/journal"
	"turtlescript/console/pkg/journal/recorder"
	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/device"
	"turtlescript/console/pkg/script/env"
	scripterrors "turtlescript/console/pkg/script/errors"
	"turtlescript/console/pkg/script/eval"
	"turtlescript/console/pkg/script/parser"
	"turtlescript/console/pkg/telemetry/logging"
	"turtlescript/console/pkg/telemetry/metrics"
	"turtlescript/console/pkg/telemetry/tracing"
)

// Input origins.
const (
	OriginInteractive = "interactive"
	OriginFile        = "file"
	OriginWatch       = "watch"
)

// StdinName labels interactive input in error locations.
const StdinName = "<stdin>"

// ErrClosed is returned by a session used after Close.
var ErrClosed = errors.New("session closed")

// Options configures a Session. Every field is optional.
type Options struct {
	// Config supplies interpreter, parser and canvas settings.
	// Default: config.Default()
	Config *config.Config

	// Device receives turtle commands. If nil, the session draws on its own
	// Canvas built from Config.Canvas.
	Device device.Device

	// Output receives echo output, help text, diagnostics and syntax errors.
	Output io.Writer

	// Logger is used for operational logs. Default: slog.Default()
	Logger *slog.Logger

	// Metrics, Tracer and Journal are shared across sessions and may be nil.
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
	Journal *recorder.Recorder

	// CloseJournal makes Close drain and close Journal.
	CloseJournal bool

	// BaseDir resolves load statements in interactive input.
	// Default: Config.Interpreter.LoadDir
	BaseDir string
}

// Result describes one executed input.
type Result struct {
	RunID       string
	Origin      string
	File        string
	Status      metrics.Status
	Nodes       int
	Functions   int
	Commands    int
	Diagnostics int
	Duration    time.Duration

	// Exited is true when the input ran an exit statement.
	Exited bool
}

// Session owns the global environment of one console and runs inputs in it
// one at a time.
type Session struct {
	id     string
	config *config.Config
	logger *slog.Logger

	env      *env.Environment
	interp   *eval.Interpreter
	parser   *parser.Parser
	arena    *ast.Arena
	baseDir  string
	out      io.Writer
	sink     eval.Sink
	observer *runObserver

	canvas   *device.Canvas
	recorder *device.Recorder

	metrics      *metrics.Collector
	tracer       *tracing.Tracer
	journal      *recorder.Recorder
	closeJournal bool

	mu     sync.Mutex
	closed bool
}

// NewSession creates a session with an empty environment.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	tracer := opts.Tracer
	if tracer == nil {
		var err error
		if tracer, err = tracing.New(&config.TracingConfig{}, ""); err != nil {
			return nil, err
		}
	}

	s := &Session{
		id:           uuid.New().String(),
		config:       cfg,
		env:          env.New(),
		arena:        ast.NewArena(),
		out:          out,
		sink:         eval.NewWriterSink(out),
		metrics:      opts.Metrics,
		tracer:       tracer,
		journal:      opts.Journal,
		closeJournal: opts.CloseJournal,
	}
	s.logger = logger.With("component", "console", "session", s.id)

	dev := opts.Device
	if dev == nil {
		bg, err := device.ParseColor(cfg.Canvas.Background)
		if err != nil {
			return nil, fmt.Errorf("canvas background: %w", err)
		}
		s.canvas = device.NewCanvas(device.CanvasConfig{
			Width:      cfg.Canvas.Width,
			Height:     cfg.Canvas.Height,
			Background: bg,
		})
		dev = s.canvas
	}
	s.recorder = device.NewRecorder(dev)

	s.baseDir = opts.BaseDir
	if s.baseDir == "" {
		s.baseDir = cfg.Interpreter.LoadDir
	}

	s.parser = parser.NewParser().
		WithMaxFileSize(cfg.Interpreter.MaxFileSize).
		WithMaxErrors(cfg.Interpreter.MaxErrors)

	evalCfg := eval.DefaultConfig().
		WithMaxCallDepth(cfg.Interpreter.MaxCallDepth).
		WithMaxLoadDepth(cfg.Interpreter.MaxLoadDepth).
		WithSuggestions(!cfg.Interpreter.DisableSuggestions)
	if err := evalCfg.Validate(); err != nil {
		return nil, err
	}

	var next eval.Observer
	if opts.Metrics != nil {
		next = opts.Metrics
	}
	s.observer = &runObserver{next: next}

	s.interp = eval.NewInterpreter(s.recorder, s.sink, evalCfg, s.logger).
		WithObserver(s.observer)

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Environment returns the global environment.
func (s *Session) Environment() *env.Environment {
	return s.env
}

// Canvas returns the session's own canvas, or nil when Options.Device was
// set.
func (s *Session) Canvas() *device.Canvas {
	return s.canvas
}

// Recording returns every device call made so far.
func (s *Session) Recording() *device.Recording {
	return s.recorder.Recording(s.config.Canvas.Width, s.config.Canvas.Height)
}

// Execute parses source and runs it in the global environment.
//
// Syntax errors are printed to the output and returned. The returned error
// is also set for I/O errors, cancellation and internal interpreter errors;
// recoverable script problems only appear in the output.
func (s *Session) Execute(ctx context.Context, origin, source string) (*Result, error) {
	return s.execute(ctx, origin, "", StdinName, s.baseDir, func() (string, error) {
		return source, nil
	})
}

// ExecuteFile reads and runs the script at path. Its load statements
// resolve relative to the script's directory.
func (s *Session) ExecuteFile(ctx context.Context, path string) (*Result, error) {
	return s.ExecuteFileAs(ctx, OriginFile, path)
}

// ExecuteFileAs is ExecuteFile with an explicit origin, such as OriginWatch.
func (s *Session) ExecuteFileAs(ctx context.Context, origin, path string) (*Result, error) {
	return s.execute(ctx, origin, path, path, filepath.Dir(path), func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &scripterrors.Error{
				Type:    scripterrors.ErrorTypeIO,
				Message: fmt.Sprintf("failed to read file: %v", err),
				Err:     err,
			}
		}
		return string(data), nil
	})
}

func (s *Session) execute(ctx context.Context, origin, file, name, baseDir string, read func() (string, error)) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	res := &Result{RunID: uuid.New().String(), Origin: origin, File: file}
	start := time.Now()

	ctx = logging.WithSession(ctx, s.id)
	ctx = logging.WithRun(ctx, res.RunID)
	ctx = logging.WithOrigin(ctx, origin)

	source, err := read()

	ctx, span := s.tracer.StartRun(ctx, s.id, origin, file, len(source))
	defer span.End()

	var tree *ast.Node
	if err == nil {
		tree, err = s.parse(ctx, source, name, res)
	}
	if err != nil {
		s.sink.Print(err.Error())
		res.Status = statusOf(err)
		res.Duration = time.Since(start)
		tracing.SetStatus(span, err)
		s.record(ctx, res, source, err, start)
		return res, err
	}

	s.arena.Track(tree)
	s.interp.WithLoader(parser.NewFileLoader(s.parser, baseDir, s.arena, s.logger))
	s.observer.reset()

	execCtx, execSpan := s.tracer.Start(ctx, tracing.SpanExec)
	err = s.interp.Run(execCtx, s.env, tree)
	ast.Release(tree)

	res.Commands = s.observer.commands
	res.Diagnostics = s.observer.diagnostics
	res.Duration = time.Since(start)

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		res.Status = metrics.StatusCancelled
	case err != nil:
		res.Status = metrics.StatusInternal
		s.sink.Print(err.Error())
	case s.env.ExitRequested():
		res.Status = metrics.StatusExit
		res.Exited = true
	default:
		res.Status = metrics.StatusOK
	}

	tracing.SetRunResult(execSpan, string(res.Status), res.Commands)
	tracing.SetStatus(execSpan, err)
	execSpan.End()
	tracing.SetStatus(span, err)

	s.record(ctx, res, source, err, start)
	return res, err
}

// parse parses source under a child span and fills in the tree statistics.
func (s *Session) parse(ctx context.Context, source, name string, res *Result) (*ast.Node, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanParse)
	defer span.End()

	tree, err := s.parser.Parse(source, name)
	if err != nil {
		var list *scripterrors.ErrorList
		if errors.As(err, &list) {
			tracing.SetSyntaxErrors(span, list.Count())
		}
		tracing.SetStatus(span, err)
		return nil, err
	}

	stats := ast.Inspect(tree)
	res.Nodes = stats.Nodes
	res.Functions = len(stats.Functions)
	tracing.SetTreeAttributes(span, res.Nodes, res.Functions)
	return tree, nil
}

// record reports a finished input to metrics, the journal and the log.
func (s *Session) record(ctx context.Context, res *Result, source string, runErr error, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordRun(res.Origin, res.Status, res.Duration, res.Nodes)
	}

	if s.journal != nil {
		entry := &journal.Entry{
			ID:          res.RunID,
			SessionID:   s.id,
			Origin:      res.Origin,
			File:        res.File,
			Source:      source,
			Status:      string(res.Status),
			Nodes:       res.Nodes,
			Functions:   res.Functions,
			Commands:    res.Commands,
			Diagnostics: res.Diagnostics,
			TraceID:     tracing.TraceID(ctx),
			StartedAt:   start,
			Duration:    res.Duration,
		}
		if runErr != nil {
			entry.Error = strings.TrimSpace(runErr.Error())
		}
		if err := s.journal.Record(ctx, entry); err != nil {
			s.logger.WarnContext(ctx, "failed to journal input", "error", err)
		}
	}

	s.logger.DebugContext(ctx, "input executed",
		"status", res.Status,
		"nodes", res.Nodes,
		"commands", res.Commands,
		"diagnostics", res.Diagnostics,
		"duration_ms", res.Duration.Milliseconds(),
	)
}

// Close frees every tree the session parsed, clears the environment and,
// with Options.CloseJournal, drains the journal. It is safe to call twice.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	freed := s.arena.Free()
	s.env.Clear()
	s.logger.Debug("session closed", "nodes_freed", freed)

	if s.closeJournal && s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

// statusOf classifies a parse-stage error.
func statusOf(err error) metrics.Status {
	if t, ok := scripterrors.TypeOf(err); ok && t == scripterrors.ErrorTypeIO {
		return metrics.StatusIOError
	}
	return metrics.StatusSyntaxError
}

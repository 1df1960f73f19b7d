package eval

import (
	"context"
	"fmt"
	"log/slog"

	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/device"
	"turtlescript/console/pkg/script/env"
	scripterrors "turtlescript/console/pkg/script/errors"
)

// DiagnosticPrefix starts every diagnostic line.
const DiagnosticPrefix = "-!- "

// Interpreter executes script trees. It holds no per-run state and may be
// reused for any number of runs, one at a time.
type Interpreter struct {
	device   device.Device
	sink     Sink
	loader   Loader
	observer Observer
	config   *Config
	logger   *slog.Logger
}

// NewInterpreter creates an interpreter drawing on dev and printing to sink.
// Nil arguments are replaced by a no-op device, a discarding sink, the
// default configuration and the default logger.
func NewInterpreter(dev device.Device, sink Sink, config *Config, logger *slog.Logger) *Interpreter {
	if dev == nil {
		dev = device.Nop{}
	}
	if sink == nil {
		sink = SinkFunc(func(string) {})
	}
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{
		device:   dev,
		sink:     sink,
		observer: nopObserver{},
		config:   config,
		logger:   logger,
	}
}

// WithLoader sets the loader used by load statements.
func (in *Interpreter) WithLoader(l Loader) *Interpreter {
	in.loader = l
	return in
}

// WithObserver sets the execution observer.
func (in *Interpreter) WithObserver(o Observer) *Interpreter {
	if o == nil {
		o = nopObserver{}
	}
	in.observer = o
	return in
}

// Config returns the interpreter configuration.
func (in *Interpreter) Config() *Config {
	return in.config
}

// Run executes node against e. A return left over from a previous run of e
// is cleared first, so a top-level return only ends the current tree.
//
// Run returns ctx.Err() if the context was cancelled during the run, and an
// *errors.Error of type internal if the tree is malformed. Script-level
// problems are reported through the sink and never returned.
func (in *Interpreter) Run(ctx context.Context, e *env.Environment, node *ast.Node) (err error) {
	if e == nil {
		return ErrNilEnvironment
	}
	if ctx == nil {
		ctx = context.Background()
	}
	e.ResetReturn()

	r := &run{in: in, ctx: ctx, done: ctx.Done(), loader: in.loader}

	defer func() {
		if rec := recover(); rec != nil {
			internal, ok := rec.(*scripterrors.Error)
			if !ok || internal.Type != scripterrors.ErrorTypeInternal {
				panic(rec)
			}
			in.logger.Error("internal interpreter error",
				"error", internal.Message,
				"location", internal.Location.String(),
			)
			err = internal
		}
	}()

	r.exec(e, node)

	if r.cancelled != nil {
		return r.cancelled
	}
	return nil
}

// run carries the state of one Run call.
type run struct {
	in        *Interpreter
	ctx       context.Context
	done      <-chan struct{}
	cancelled error
	loadDepth int
	loader    Loader // scoped to the file being loaded
}

// halted reports whether e must stop executing. A cancelled context
// requests exit on e so that the request propagates out of calls.
func (r *run) halted(e *env.Environment) bool {
	if r.cancelled == nil && r.done != nil {
		select {
		case <-r.done:
			r.cancelled = r.ctx.Err()
			r.in.logger.Debug("run cancelled", "error", r.cancelled)
		default:
		}
	}
	if r.cancelled != nil {
		e.RequestExit()
	}
	return e.Halted()
}

// diagnose reports a recoverable script error.
func (r *run) diagnose(kind DiagnosticKind, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.in.sink.Print(DiagnosticPrefix + msg + "\n")
	r.in.observer.ObserveDiagnostic(kind)
	r.in.logger.Debug("script diagnostic", "kind", string(kind), "message", msg)
}

// suggest appends a "did you mean" hint for name to msg.
func (r *run) suggest(msg, name string, candidates []string) string {
	if !r.in.config.Suggestions {
		return msg
	}
	if hint := scripterrors.DidYouMean(name, candidates); hint != "" {
		return msg + " (" + hint + ")"
	}
	return msg
}

// fail aborts the run: n is not valid where it was found.
func fail(n *ast.Node, where string) {
	panic(scripterrors.Internal(n, where))
}

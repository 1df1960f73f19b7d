package eval

import (
	"io"
	"sync"

	"turtlescript/console/pkg/script/ast"
)

// Sink receives the text output of a script: echo output, help text and
// diagnostics. Each string is complete, including its trailing newline.
type Sink interface {
	Print(s string)
}

// WriterSink adapts an io.Writer to a Sink. Write errors are dropped.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Print writes s to the underlying writer.
func (s *WriterSink) Print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, text)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(s string)

// Print calls f(s).
func (f SinkFunc) Print(s string) {
	f(s)
}

// Loader produces the tree for a load statement. The evaluator runs the tree
// in the current environment and releases it afterwards.
type Loader interface {
	LoadAST(path string) (*ast.Node, error)
}

// NestedLoader is a Loader that can scope the load statements of a loaded
// file to that file, so nested loads resolve relative to the file doing the
// loading rather than the top-level script.
type NestedLoader interface {
	Loader
	Nested(path string) Loader
}

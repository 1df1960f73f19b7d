package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"turtlescript/console/pkg/script/eval"
	"turtlescript/console/pkg/script/parser"
	"turtlescript/console/pkg/telemetry/metrics"
)

// Prompts written before each interactive line.
const (
	Prompt             = ">>> "
	ContinuationPrompt = "... "
)

// ErrInterrupted is returned by a LineReader when the user aborts the
// prompt, for example with Ctrl+C on a terminal.
var ErrInterrupted = errors.New("input interrupted")

// LineReader supplies interactive input one line at a time.
type LineReader interface {
	// ReadLine shows prompt and returns the next line without its line
	// ending. It returns io.EOF at end of input.
	ReadLine(prompt string) (string, error)
}

// scanReader reads lines from any io.Reader and prints prompts to the
// session sink.
type scanReader struct {
	scanner *bufio.Scanner
	sink    eval.Sink
}

func newScanReader(in io.Reader, sink eval.Sink) *scanReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scanReader{scanner: scanner, sink: sink}
}

func (r *scanReader) ReadLine(prompt string) (string, error) {
	r.sink.Print(prompt)
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// REPL reads statements from in and executes each complete input in the
// session. Prompts are written to the session output. See Interact.
func (s *Session) REPL(ctx context.Context, in io.Reader) error {
	return s.Interact(ctx, newScanReader(in, s.sink))
}

// Interact reads statements from lines and executes each complete input in
// the session. Lines are buffered while they leave a block or string open.
//
// Interact returns nil at end of input, after an exit statement, when the
// prompt is interrupted or when ctx is cancelled. Syntax errors are printed
// and reading continues; internal interpreter errors are returned.
func (s *Session) Interact(ctx context.Context, lines LineReader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type input struct {
		line string
		err  error
	}
	prompts := make(chan string)
	inputs := make(chan input)

	go func() {
		for {
			var prompt string
			select {
			case prompt = <-prompts:
			case <-ctx.Done():
				return
			}

			line, err := lines.ReadLine(prompt)
			select {
			case inputs <- input{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var pending strings.Builder
	for {
		prompt := Prompt
		if pending.Len() > 0 {
			prompt = ContinuationPrompt
		}

		var in input
		select {
		case prompts <- prompt:
		case <-ctx.Done():
			s.sink.Print("\n")
			return nil
		}
		select {
		case in = <-inputs:
		case <-ctx.Done():
			s.sink.Print("\n")
			return nil
		}

		switch {
		case errors.Is(in.err, io.EOF), errors.Is(in.err, ErrInterrupted):
			s.sink.Print("\n")
			return nil
		case in.err != nil:
			return in.err
		}

		pending.WriteString(in.line)
		pending.WriteString("\n")
		source := pending.String()
		if parser.Incomplete(source) {
			continue
		}
		pending.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		res, err := s.Execute(ctx, OriginInteractive, source)
		switch {
		case errors.Is(err, ErrClosed):
			return err
		case res == nil:
			return err
		case res.Status == metrics.StatusCancelled:
			return nil
		case res.Status == metrics.StatusInternal:
			return err
		case res.Exited:
			return nil
		}
	}
}

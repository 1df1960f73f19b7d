package script

import (
	"context"
	"io"
	"path/filepath"

	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/device"
	"turtlescript/console/pkg/script/env"
	"turtlescript/console/pkg/script/eval"
	"turtlescript/console/pkg/script/parser"
)

// Parse parses source without running it.
func Parse(source, name string) (*ast.Node, error) {
	return parser.NewParser().Parse(source, name)
}

// ParseAndRun parses source and runs it in a fresh environment, drawing on
// dev and writing echo output and diagnostics to out. Load statements resolve
// relative to the working directory.
//
// The environment is returned so callers can inspect what the program left
// behind. Syntax errors are returned before anything runs.
func ParseAndRun(ctx context.Context, source, name string, dev device.Device, out io.Writer) (*env.Environment, error) {
	tree, err := Parse(source, name)
	if err != nil {
		return nil, err
	}
	return execute(ctx, tree, "", dev, out)
}

// RunFile parses and runs the script at path. Load statements resolve
// relative to the script's directory.
func RunFile(ctx context.Context, path string, dev device.Device, out io.Writer) (*env.Environment, error) {
	tree, err := parser.NewParser().ParseFile(path)
	if err != nil {
		return nil, err
	}
	return execute(ctx, tree, filepath.Dir(path), dev, out)
}

func execute(ctx context.Context, tree *ast.Node, baseDir string, dev device.Device, out io.Writer) (*env.Environment, error) {
	if out == nil {
		out = io.Discard
	}

	in := eval.NewInterpreter(dev, eval.NewWriterSink(out), nil, nil).
		WithLoader(parser.NewFileLoader(nil, baseDir, nil, nil))

	e := env.New()
	defer ast.Release(tree)

	if err := in.Run(ctx, e, tree); err != nil {
		return e, err
	}
	return e, nil
}

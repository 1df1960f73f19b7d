package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/eval"
)

var _ eval.NestedLoader = (*FileLoader)(nil)

// FileLoader resolves load statements against a base directory and parses
// the named files. Loaded trees are registered with an arena so function
// bodies they define can be freed at shutdown.
type FileLoader struct {
	parser  *Parser
	baseDir string
	arena   *ast.Arena
	logger  *slog.Logger
}

// NewFileLoader creates a loader. arena may be nil.
func NewFileLoader(p *Parser, baseDir string, arena *ast.Arena, logger *slog.Logger) *FileLoader {
	if p == nil {
		p = NewParser()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLoader{parser: p, baseDir: baseDir, arena: arena, logger: logger}
}

// Resolve returns the path a load statement refers to.
func (l *FileLoader) Resolve(path string) string {
	if filepath.IsAbs(path) || l.baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(l.baseDir, path)
}

// Nested returns a loader for the load statements inside the file at path.
// Their paths resolve against that file's directory.
func (l *FileLoader) Nested(path string) eval.Loader {
	return &FileLoader{
		parser:  l.parser,
		baseDir: filepath.Dir(l.Resolve(path)),
		arena:   l.arena,
		logger:  l.logger,
	}
}

// LoadAST parses the file at path.
func (l *FileLoader) LoadAST(path string) (*ast.Node, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}

	resolved := l.Resolve(path)
	tree, err := l.parser.ParseFile(resolved)
	if err != nil {
		l.logger.Debug("load failed", "path", resolved, "error", err)
		return nil, err
	}

	if l.arena != nil {
		l.arena.Track(tree)
	}
	l.logger.Debug("script loaded", "path", resolved, "nodes", ast.Inspect(tree).Nodes)
	return tree, nil
}

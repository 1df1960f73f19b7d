// Package script provides convenience functions for parsing and running
// Turtle Script programs.
//
// Turtle Script is a small imperative language for driving a drawing turtle:
//
//	function square(length) {
//	    repeat 4 {
//	        forward length
//	        left 90
//	    }
//	}
//	pendown
//	square(50)
//
// The language is split across subpackages:
//
//   - ast: the program tree produced by the parser
//   - parser: lexer, parser and the file loader behind load statements
//   - env: the activation record holding variables and functions
//   - eval: the tree-walking evaluator
//   - device: the drawing surface the turtle moves on
//   - errors: syntax errors with source context and suggestions
//
// ParseAndRun and RunFile wire these together for the common case of
// executing a whole program once. Long-lived sessions that keep their environment
// between inputs use the subpackages directly, see pkg/console.
package script

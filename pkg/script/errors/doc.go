// Package errors provides located error reporting for Turtle Script.
//
// Errors carry a category, a source location, the surrounding source lines
// and an optional suggestion:
//
//	[syntax] unexpected token "}"
//	  --> square.tsc:4:1
//	  |
//	   3 |   forward n
//	-> 4 | }}
//	     |  ^
//	  |
//	  = suggestion: remove the extra '}'
//
// Syntax errors are produced by the parser and collected in an ErrorList.
// Internal errors describe malformed trees that reach the evaluator; they
// abort the run that hit them.
package errors

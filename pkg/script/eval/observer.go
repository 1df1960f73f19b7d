package eval

import "turtlescript/console/pkg/script/ast"

// DiagnosticKind classifies recoverable script errors.
type DiagnosticKind string

const (
	DiagDivisionByZero   DiagnosticKind = "division_by_zero"
	DiagModuloByZero     DiagnosticKind = "modulo_by_zero"
	DiagUndefinedVar     DiagnosticKind = "undefined_variable"
	DiagUndefinedFunc    DiagnosticKind = "undefined_function"
	DiagNotAFunction     DiagnosticKind = "not_a_function"
	DiagRejectedBinding  DiagnosticKind = "rejected_binding"
	DiagMissingArguments DiagnosticKind = "missing_arguments"
	DiagCallDepth        DiagnosticKind = "call_depth_exceeded"
	DiagLoadFailed       DiagnosticKind = "load_failed"
)

// Observer receives execution events. Implementations must be cheap; they
// are called on every statement.
type Observer interface {
	ObserveStatement(kind ast.Kind)
	ObserveTurtle(action ast.Action)
	ObserveDiagnostic(kind DiagnosticKind)
	ObserveCall(name string, depth int)
}

type nopObserver struct{}

func (nopObserver) ObserveStatement(ast.Kind) {}
func (nopObserver) ObserveTurtle(ast.Action) {}
func (nopObserver) ObserveDiagnostic(DiagnosticKind) {}
func (nopObserver) ObserveCall(string, int) {}

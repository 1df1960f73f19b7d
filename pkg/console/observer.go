package console

import (
	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/eval"
)

// runObserver counts what one run does and forwards every event.
type runObserver struct {
	next        eval.Observer
	commands    int
	diagnostics int
}

func (o *runObserver) reset() {
	o.commands = 0
	o.diagnostics = 0
}

func (o *runObserver) ObserveStatement(kind ast.Kind) {
	if o.next != nil {
		o.next.ObserveStatement(kind)
	}
}

func (o *runObserver) ObserveTurtle(action ast.Action) {
	o.commands++
	if o.next != nil {
		o.next.ObserveTurtle(action)
	}
}

func (o *runObserver) ObserveDiagnostic(kind eval.DiagnosticKind) {
	o.diagnostics++
	if o.next != nil {
		o.next.ObserveDiagnostic(kind)
	}
}

func (o *runObserver) ObserveCall(name string, depth int) {
	if o.next != nil {
		o.next.ObserveCall(name, depth)
	}
}

package eval

import (
	"fmt"
	"strings"

	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/env"
)

// call invokes a user function and returns its result. The callee name is
// computed at run time. Failed calls are no-ops returning 0.
func (r *run) call(e *env.Environment, n *ast.Node) float64 {
	if r.halted(e) {
		return 0
	}

	calleeName := r.evalString(e, n.Callee)

	b, ok := e.Lookup(calleeName)
	if !ok {
		msg := fmt.Sprintf("Undefined function %s!", calleeName)
		r.diagnose(DiagUndefinedFunc, "%s", r.suggest(msg, calleeName, e.NamesOf(env.KindFunction)))
		return 0
	}
	if b.Kind != env.KindFunction {
		r.diagnose(DiagNotAFunction, "%s is not a function!", calleeName)
		return 0
	}
	fn := b.Func

	if e.Depth() >= r.in.config.MaxCallDepth {
		r.diagnose(DiagCallDepth, "Maximum call depth of %d exceeded calling %s!", r.in.config.MaxCallDepth, calleeName)
		return 0
	}

	frame := e.Copy()
	defer frame.Clear()

	bound := len(n.Args)
	if bound > fn.Arity() {
		r.in.logger.Debug("ignoring extra arguments",
			"function", calleeName,
			"arity", fn.Arity(),
			"given", len(n.Args),
		)
		bound = fn.Arity()
	}

	for i := 0; i < bound; i++ {
		v := r.evalNumber(e, n.Args[i])
		r.bind(frame.SetVariable(fn.Params[i], v))
	}
	if r.halted(e) {
		return 0
	}

	if missing := fn.Params[bound:]; len(missing) > 0 {
		r.diagnose(DiagMissingArguments, "%s expects %d argument(s) but got %d, %s keep(s) the caller's value!",
			calleeName, fn.Arity(), len(n.Args), strings.Join(missing, ", "))
	}

	r.in.observer.ObserveCall(calleeName, frame.Depth())

	r.exec(frame, fn.Body)

	if frame.ExitRequested() {
		e.RequestExit()
	}
	v, _ := frame.Returned()
	return v
}

package eval

import (
	"errors"
	"math"

	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/env"
	scripterrors "turtlescript/console/pkg/script/errors"
)

const helpText = `Turtle Script commands:
  forward|fd [n]   backward|bk [n]   left|lt [deg]   right|rt [deg]
  penup|pu   pendown|pd   show   hide   home   clear   reset
  circle [r]   ccircle [r]   write text   color r, g, b
  x = expr   if cond { }   while cond { }   for i = a to b { }   repeat n { }
  function name(a, b) { }   return [expr]   name(args)   call(nameExpr, args)
  echo expr   load "file"   help   exit
`

// exec executes a statement. Statement chains are followed along their
// right spine iteratively so long scripts do not deepen the Go stack.
func (r *run) exec(e *env.Environment, n *ast.Node) {
	for n != nil {
		if r.halted(e) {
			return
		}
		if n.Kind != ast.KindStatements {
			r.execNode(e, n)
			return
		}
		r.exec(e, n.Left)
		n = n.Right
	}
}

func (r *run) execNode(e *env.Environment, n *ast.Node) {
	r.in.observer.ObserveStatement(n.Kind)

	switch n.Kind {
	case ast.KindAssign:
		v := r.evalNumber(e, n.Value)
		r.bind(e.SetVariable(n.Name, v))

	case ast.KindIf:
		if r.evalBool(e, n.Cond) {
			r.exec(e, n.Then)
		} else {
			r.exec(e, n.Else)
		}

	case ast.KindWhile:
		for !r.halted(e) && r.evalBool(e, n.Cond) {
			r.exec(e, n.Body)
		}

	case ast.KindFor:
		r.execFor(e, n)

	case ast.KindRepeat:
		count := math.Trunc(r.evalNumber(e, n.Count))
		for i := 0.0; i < count; i++ {
			if r.halted(e) {
				return
			}
			r.exec(e, n.Body)
		}

	case ast.KindFunctionDef:
		r.bind(e.DefineFunction(n.Name, n.Params, n.Body))

	case ast.KindCall:
		r.call(e, n)

	case ast.KindReturn:
		var v float64
		if n.Value != nil {
			v = r.evalNumber(e, n.Value)
		}
		e.Return(v)

	case ast.KindExit:
		e.RequestExit()

	case ast.KindEcho:
		r.in.sink.Print(r.evalString(e, n.Value) + "\n")

	case ast.KindShowHelp:
		r.in.sink.Print(helpText)

	case ast.KindLoadFile:
		r.load(e, n)

	case ast.KindTurtle:
		r.turtle(e, n)

	case ast.KindSetColor:
		red := channel(r.evalNumber(e, n.Red))
		green := channel(r.evalNumber(e, n.Green))
		blue := channel(r.evalNumber(e, n.Blue))
		r.in.device.SetColor(red, green, blue)

	default:
		fail(n, "statement")
	}
}

// execFor binds the loop variable to begin..end inclusive. After a normal
// finish the variable holds end+1.
func (r *run) execFor(e *env.Environment, n *ast.Node) {
	i := math.Trunc(r.evalNumber(e, n.Begin))
	end := math.Trunc(r.evalNumber(e, n.End))

	for ; i <= end; i++ {
		if err := e.SetVariable(n.Name, i); err != nil {
			r.bind(err)
			return
		}
		r.exec(e, n.Body)
		if r.halted(e) {
			return
		}
	}
	r.bind(e.SetVariable(n.Name, i))
}

// bind reports a rejected binding.
func (r *run) bind(err error) {
	if err == nil {
		return
	}
	var bindErr *env.BindingError
	if !errors.As(err, &bindErr) {
		r.diagnose(DiagRejectedBinding, "%v", err)
		return
	}
	switch {
	case errors.Is(err, env.ErrNameIsFunction):
		r.diagnose(DiagRejectedBinding, "%s is a function, cannot assign to it!", bindErr.Name)
	case errors.Is(err, env.ErrFunctionExists):
		r.diagnose(DiagRejectedBinding, "Function %s is already defined!", bindErr.Name)
	case errors.Is(err, env.ErrNameIsVariable):
		r.diagnose(DiagRejectedBinding, "%s is a variable, cannot define a function with that name!", bindErr.Name)
	default:
		r.diagnose(DiagRejectedBinding, "%v", err)
	}
}

// load runs the tree of another script file in e and releases it.
func (r *run) load(e *env.Environment, n *ast.Node) {
	path := r.evalString(e, n.Value)

	loader := r.loader
	if loader == nil {
		r.diagnose(DiagLoadFailed, "Cannot load %s: loading is not available!", path)
		return
	}
	if r.loadDepth >= r.in.config.MaxLoadDepth {
		r.diagnose(DiagLoadFailed, "Cannot load %s: files nested deeper than %d!", path, r.in.config.MaxLoadDepth)
		return
	}

	tree, err := loader.LoadAST(path)
	if err != nil {
		r.diagnose(DiagLoadFailed, "Cannot load %s: %s", path, scripterrors.Summary(err))
		return
	}

	r.in.logger.Debug("loaded script", "path", path, "depth", r.loadDepth+1)

	if nested, ok := loader.(NestedLoader); ok {
		r.loader = nested.Nested(path)
	}
	r.loadDepth++
	defer func() {
		r.loadDepth--
		r.loader = loader
		ast.Release(tree)
	}()
	r.exec(e, tree)
}

// channel clamps a color component into [0,255].
func channel(v float64) uint8 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

package eval

import (
	"fmt"
	"math"

	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/env"
)

// evalNumber evaluates a numeric expression.
func (r *run) evalNumber(e *env.Environment, n *ast.Node) float64 {
	if n == nil {
		fail(nil, "numeric expression")
	}

	switch n.Kind {
	case ast.KindInteger:
		return float64(n.Int)
	case ast.KindFloat:
		return n.Float

	case ast.KindAdd:
		return r.evalNumber(e, n.Left) + r.evalNumber(e, n.Right)
	case ast.KindSubtract:
		return r.evalNumber(e, n.Left) - r.evalNumber(e, n.Right)
	case ast.KindMultiply:
		return r.evalNumber(e, n.Left) * r.evalNumber(e, n.Right)
	case ast.KindDivide:
		left, right := r.evalNumber(e, n.Left), r.evalNumber(e, n.Right)
		if right == 0 {
			r.diagnose(DiagDivisionByZero, "Division by zero, defaulting to 0!")
			return 0
		}
		return left / right
	case ast.KindModulo:
		left, right := r.evalNumber(e, n.Left), r.evalNumber(e, n.Right)
		if right == 0 {
			r.diagnose(DiagModuloByZero, "Modulo by zero, defaulting to 0!")
			return 0
		}
		return math.Mod(left, right)
	case ast.KindNegate:
		return -r.evalNumber(e, n.Left)

	case ast.KindSymbol:
		if v, ok := e.Variable(n.Name); ok {
			return v
		}
		msg := fmt.Sprintf("Undefined variable %s, defaulting to 0!", n.Name)
		r.diagnose(DiagUndefinedVar, "%s", r.suggest(msg, n.Name, e.NamesOf(env.KindVariable)))
		return 0

	case ast.KindMath:
		return r.evalMath(e, n)

	case ast.KindCall:
		return r.call(e, n)
	}

	fail(n, "numeric expression")
	return 0
}

// evalMath evaluates a math-library call. Trigonometric functions take degrees.
func (r *run) evalMath(e *env.Environment, n *ast.Node) float64 {
	if n.Func.Arity() == 2 {
		if n.Right == nil {
			fail(n, "binary math function")
		}
		left, right := r.evalNumber(e, n.Left), r.evalNumber(e, n.Right)
		switch n.Func {
		case ast.MathRmdr:
			if right == 0 {
				r.diagnose(DiagDivisionByZero, "Division by zero, defaulting to 0!")
				return 0
			}
			rem := math.Mod(left, right)
			if rem < 0 {
				rem += right
			}
			return rem
		case ast.MathMin:
			return math.Min(left, right)
		case ast.MathMax:
			return math.Max(left, right)
		}
	}

	x := r.evalNumber(e, n.Left)
	switch n.Func {
	case ast.MathCos:
		return math.Cos(radians(x))
	case ast.MathSin:
		return math.Sin(radians(x))
	case ast.MathTan:
		return math.Tan(radians(x))
	case ast.MathAbs:
		return math.Abs(x)
	case ast.MathSqrt:
		return math.Sqrt(x)
	case ast.MathLog:
		return math.Log(x)
	case ast.MathLog10:
		return math.Log10(x)
	case ast.MathExp:
		return math.Exp(x)
	case ast.MathCeil:
		return math.Ceil(x)
	case ast.MathFloor:
		return math.Floor(x)
	}

	fail(n, "math function "+string(n.Func))
	return 0
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// evalBool evaluates a boolean expression. and/or short-circuit.
func (r *run) evalBool(e *env.Environment, n *ast.Node) bool {
	if n == nil {
		fail(nil, "boolean expression")
	}

	switch n.Kind {
	case ast.KindCompare:
		left, right := r.evalNumber(e, n.Left), r.evalNumber(e, n.Right)
		switch n.Op {
		case ast.OpEqual:
			return left == right
		case ast.OpNotEqual:
			return left != right
		case ast.OpLess:
			return left < right
		case ast.OpGreater:
			return left > right
		case ast.OpLessEqual:
			return left <= right
		case ast.OpGreaterEqual:
			return left >= right
		}
		fail(n, "comparison "+string(n.Op))

	case ast.KindAnd:
		return r.evalBool(e, n.Left) && r.evalBool(e, n.Right)
	case ast.KindOr:
		return r.evalBool(e, n.Left) || r.evalBool(e, n.Right)
	case ast.KindNot:
		return !r.evalBool(e, n.Left)
	}

	fail(n, "boolean expression")
	return false
}

// evalString converts an expression to text. String literals are used as
// they are, boolean expressions become True or False, integer literals are
// printed without decimals and every other number with six.
func (r *run) evalString(e *env.Environment, n *ast.Node) string {
	if n == nil {
		fail(nil, "string expression")
	}

	switch {
	case n.Kind == ast.KindString:
		return n.Str
	case n.IsBoolean():
		if r.evalBool(e, n) {
			return "True"
		}
		return "False"
	case n.Kind == ast.KindInteger:
		return fmt.Sprintf("%d", n.Int)
	case n.IsNumeric():
		return fmt.Sprintf("%f", r.evalNumber(e, n))
	}

	fail(n, "string expression")
	return ""
}

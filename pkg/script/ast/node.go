package ast

// Kind represents the syntactic form of an AST node.
type Kind string

const (
	// Literals
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindString  Kind = "string"

	// Arithmetic
	KindAdd      Kind = "add"
	KindSubtract Kind = "subtract"
	KindMultiply Kind = "multiply"
	KindDivide   Kind = "divide"
	KindModulo   Kind = "modulo"
	KindNegate   Kind = "unary_minus"

	// Relational and boolean
	KindCompare Kind = "compare"
	KindAnd     Kind = "and"
	KindOr      Kind = "or"
	KindNot     Kind = "not"

	// Math-library call (cos, sqrt, rmdr, ...)
	KindMath Kind = "math"

	// Variables
	KindSymbol Kind = "symref"
	KindAssign Kind = "assign"

	// Control flow
	KindIf         Kind = "if"
	KindWhile      Kind = "while"
	KindFor        Kind = "for"
	KindRepeat     Kind = "repeat"
	KindStatements Kind = "statements"

	// Functions
	KindFunctionDef Kind = "function"
	KindCall        Kind = "call"
	KindReturn      Kind = "return"

	// Console statements
	KindExit     Kind = "exit"
	KindEcho     Kind = "echo"
	KindShowHelp Kind = "help"
	KindLoadFile Kind = "load"

	// Drawing
	KindTurtle   Kind = "turtle"
	KindSetColor Kind = "color"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// CompareOp represents a relational operator.
type CompareOp string

const (
	OpEqual        CompareOp = "=="
	OpNotEqual     CompareOp = "!="
	OpLess         CompareOp = "<"
	OpGreater      CompareOp = ">"
	OpLessEqual    CompareOp = "<="
	OpGreaterEqual CompareOp = ">="
)

// MathFunc represents a math-library function.
type MathFunc string

const (
	MathCos   MathFunc = "cos" // degrees
	MathSin   MathFunc = "sin" // degrees
	MathTan   MathFunc = "tan" // degrees
	MathAbs   MathFunc = "abs"
	MathSqrt  MathFunc = "sqrt"
	MathLog   MathFunc = "log"
	MathLog10 MathFunc = "log10"
	MathExp   MathFunc = "exp"
	MathRmdr  MathFunc = "rmdr" // floored remainder, sign follows the divisor
	MathMin   MathFunc = "min"
	MathMax   MathFunc = "max"
	MathCeil  MathFunc = "ceil"
	MathFloor MathFunc = "floor"
)

// MathFuncs lists every math-library function in declaration order.
var MathFuncs = []MathFunc{
	MathCos, MathSin, MathTan, MathAbs, MathSqrt, MathLog, MathLog10,
	MathExp, MathRmdr, MathMin, MathMax, MathCeil, MathFloor,
}

// Arity returns the number of arguments the function takes.
func (f MathFunc) Arity() int {
	switch f {
	case MathRmdr, MathMin, MathMax:
		return 2
	default:
		return 1
	}
}

// LookupMathFunc returns the math function with the given name.
func LookupMathFunc(name string) (MathFunc, bool) {
	for _, f := range MathFuncs {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Action represents a turtle action.
type Action string

const (
	ActionForward        Action = "forward"
	ActionBackward       Action = "backward"
	ActionLeft           Action = "left"
	ActionRight          Action = "right"
	ActionPenUp          Action = "penup"
	ActionPenDown        Action = "pendown"
	ActionShow           Action = "show"
	ActionHide           Action = "hide"
	ActionWrite          Action = "write"
	ActionCircle         Action = "circle"
	ActionCenteredCircle Action = "ccircle"
	ActionHome           Action = "home"
	ActionClear          Action = "clear"
	ActionReset          Action = "reset"
)

// ParamKind describes the parameter an action accepts.
type ParamKind int

const (
	ParamNone ParamKind = iota
	ParamNumber
	ParamString
)

// Param returns the kind of parameter the action accepts.
func (a Action) Param() ParamKind {
	switch a {
	case ActionForward, ActionBackward, ActionLeft, ActionRight, ActionCircle, ActionCenteredCircle:
		return ParamNumber
	case ActionWrite:
		return ParamString
	default:
		return ParamNone
	}
}

// Node is a single element of the program tree.
// Only the fields relevant to Kind are populated:
//
//	literals         Int, Float, Str
//	binary ops       Left, Right (unary ops use Left)
//	compare          Op, Left, Right
//	math             Func, Left, Right (Right is nil for unary functions)
//	symref           Name
//	assign           Name, Value
//	if               Cond, Then, Else
//	while            Cond, Body
//	for              Name, Begin, End, Body
//	repeat           Count, Body
//	statements       Left, Right
//	function         Name, Params, Body
//	call             Callee, Args
//	return           Value (optional)
//	echo, load       Value
//	turtle           Action, Value (optional)
//	color            Red, Green, Blue
type Node struct {
	Kind Kind

	Int   int64
	Float float64
	Str   string

	Left  *Node
	Right *Node
	Op    CompareOp
	Func  MathFunc

	Name  string
	Value *Node

	Cond *Node
	Then *Node
	Else *Node
	Body *Node

	Begin *Node
	End   *Node
	Count *Node

	Params []string
	Callee *Node
	Args   []*Node

	Action Action

	Red   *Node
	Green *Node
	Blue  *Node

	Location Location
}

// IsBoolean returns true if the node produces a truth value.
func (n *Node) IsBoolean() bool {
	switch n.Kind {
	case KindCompare, KindAnd, KindOr, KindNot:
		return true
	}
	return false
}

// IsNumeric returns true if the node produces a number.
func (n *Node) IsNumeric() bool {
	switch n.Kind {
	case KindInteger, KindFloat, KindAdd, KindSubtract, KindMultiply, KindDivide,
		KindModulo, KindNegate, KindMath, KindSymbol, KindCall:
		return true
	}
	return false
}

// IsStatement returns true if the node can be executed for effect.
func (n *Node) IsStatement() bool {
	switch n.Kind {
	case KindAssign, KindIf, KindWhile, KindFor, KindRepeat, KindStatements,
		KindFunctionDef, KindCall, KindReturn, KindExit, KindEcho, KindShowHelp,
		KindLoadFile, KindTurtle, KindSetColor:
		return true
	}
	return false
}

// Children returns the non-nil child nodes in evaluation order.
func (n *Node) Children() []*Node {
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}

	add(n.Left)
	add(n.Right)
	add(n.Value)
	add(n.Cond)
	add(n.Then)
	add(n.Else)
	add(n.Begin)
	add(n.End)
	add(n.Count)
	add(n.Callee)
	for _, a := range n.Args {
		add(a)
	}
	add(n.Red)
	add(n.Green)
	add(n.Blue)
	add(n.Body)

	return out
}

// At sets the node's source location and returns the node.
func (n *Node) At(loc Location) *Node {
	n.Location = loc
	return n
}

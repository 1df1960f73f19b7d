package ast

// NewInteger creates an integer literal.
func NewInteger(v int64) *Node {
	return &Node{Kind: KindInteger, Int: v}
}

// NewFloat creates a float literal.
func NewFloat(v float64) *Node {
	return &Node{Kind: KindFloat, Float: v}
}

// NewString creates a string literal.
func NewString(s string) *Node {
	return &Node{Kind: KindString, Str: s}
}

// NewBinary creates an arithmetic, boolean or statements node with two children.
// kind must be one of add, subtract, multiply, divide, modulo, and, or, statements.
func NewBinary(kind Kind, left, right *Node) *Node {
	return &Node{Kind: kind, Left: left, Right: right}
}

// NewNegate creates a unary-minus node.
func NewNegate(operand *Node) *Node {
	return &Node{Kind: KindNegate, Left: operand}
}

// NewCompare creates a comparison node.
func NewCompare(op CompareOp, left, right *Node) *Node {
	return &Node{Kind: KindCompare, Op: op, Left: left, Right: right}
}

// NewAnd creates a short-circuiting conjunction.
func NewAnd(left, right *Node) *Node {
	return NewBinary(KindAnd, left, right)
}

// NewOr creates a short-circuiting disjunction.
func NewOr(left, right *Node) *Node {
	return NewBinary(KindOr, left, right)
}

// NewNot creates a negation.
func NewNot(operand *Node) *Node {
	return &Node{Kind: KindNot, Left: operand}
}

// NewMath creates a math-library call. right is nil for unary functions.
func NewMath(fn MathFunc, left, right *Node) *Node {
	return &Node{Kind: KindMath, Func: fn, Left: left, Right: right}
}

// NewSymbol creates a variable reference.
func NewSymbol(name string) *Node {
	return &Node{Kind: KindSymbol, Name: name}
}

// NewAssign creates an assignment.
func NewAssign(name string, value *Node) *Node {
	return &Node{Kind: KindAssign, Name: name, Value: value}
}

// NewIf creates a conditional. elseBranch may be nil.
func NewIf(cond, thenBranch, elseBranch *Node) *Node {
	return &Node{Kind: KindIf, Cond: cond, Then: thenBranch, Else: elseBranch}
}

// NewWhile creates a while loop.
func NewWhile(cond, body *Node) *Node {
	return &Node{Kind: KindWhile, Cond: cond, Body: body}
}

// NewFor creates a bounded, ascending for loop over name.
func NewFor(name string, begin, end, body *Node) *Node {
	return &Node{Kind: KindFor, Name: name, Begin: begin, End: end, Body: body}
}

// NewRepeat creates a repeat loop.
func NewRepeat(count, body *Node) *Node {
	return &Node{Kind: KindRepeat, Count: count, Body: body}
}

// NewStatements chains two statements: left executes before right.
func NewStatements(left, right *Node) *Node {
	return NewBinary(KindStatements, left, right)
}

// Sequence chains statements into a right-leaning statements list.
// Nil entries are dropped. It returns nil for an empty list and the
// statement itself for a single entry.
func Sequence(stmts ...*Node) *Node {
	var out *Node
	for i := len(stmts) - 1; i >= 0; i-- {
		s := stmts[i]
		if s == nil {
			continue
		}
		if out == nil {
			out = s
			continue
		}
		out = NewStatements(s, out).At(s.Location)
	}
	return out
}

// NewFunctionDef creates a function definition.
func NewFunctionDef(name string, params []string, body *Node) *Node {
	return &Node{Kind: KindFunctionDef, Name: name, Params: params, Body: body}
}

// NewCall creates a call. callee is evaluated as a string at run time.
func NewCall(callee *Node, args []*Node) *Node {
	return &Node{Kind: KindCall, Callee: callee, Args: args}
}

// NewReturn creates a return statement. value may be nil.
func NewReturn(value *Node) *Node {
	return &Node{Kind: KindReturn, Value: value}
}

// NewExit creates an exit statement.
func NewExit() *Node {
	return &Node{Kind: KindExit}
}

// NewEcho creates an echo statement.
func NewEcho(value *Node) *Node {
	return &Node{Kind: KindEcho, Value: value}
}

// NewShowHelp creates a help statement.
func NewShowHelp() *Node {
	return &Node{Kind: KindShowHelp}
}

// NewLoadFile creates a load-file statement.
func NewLoadFile(path *Node) *Node {
	return &Node{Kind: KindLoadFile, Value: path}
}

// NewTurtle creates a turtle action. param may be nil.
func NewTurtle(action Action, param *Node) *Node {
	return &Node{Kind: KindTurtle, Action: action, Value: param}
}

// NewSetColor creates a set-color statement.
func NewSetColor(r, g, b *Node) *Node {
	return &Node{Kind: KindSetColor, Red: r, Green: g, Blue: b}
}

// Package env implements the activation record of a Turtle Script run.
//
// An Environment holds the variable and function bindings of one frame. The
// global frame lives as long as the console; each function call runs in a
// copy of the caller's frame that is discarded when the call returns, so
// assignments made by a callee never write back to the caller.
package env

import "turtlescript/console/pkg/script/ast"

// BindingKind distinguishes variables from functions.
type BindingKind int

const (
	KindVariable BindingKind = iota
	KindFunction
)

// String returns the binding kind name.
func (k BindingKind) String() string {
	if k == KindFunction {
		return "function"
	}
	return "variable"
}

// Function is a user-defined function. Bodies are shared between copies of
// an environment and are never modified after definition.
type Function struct {
	Name   string
	Params []string
	Body   *ast.Node
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Binding pairs a name with a number or a function.
type Binding struct {
	Name  string
	Kind  BindingKind
	Value float64
	Func  *Function
}

// Environment is an ordered set of uniquely named bindings plus the control
// flags of the frame that owns it.
type Environment struct {
	bindings []Binding
	index    map[string]int
	depth    int

	returned    bool
	returnValue float64
	exit        bool
}

// New creates an empty global environment.
func New() *Environment {
	return &Environment{index: make(map[string]int)}
}

// Lookup returns the binding for name.
func (e *Environment) Lookup(name string) (*Binding, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	return &e.bindings[i], true
}

// Variable returns the value of the variable name.
func (e *Environment) Variable(name string) (float64, bool) {
	b, ok := e.Lookup(name)
	if !ok || b.Kind != KindVariable {
		return 0, false
	}
	return b.Value, true
}

// Function returns the function bound to name.
func (e *Environment) Function(name string) (*Function, bool) {
	b, ok := e.Lookup(name)
	if !ok || b.Kind != KindFunction {
		return nil, false
	}
	return b.Func, true
}

// SetVariable creates or overwrites the variable name.
// Names bound to functions are rejected with ErrNameIsFunction.
func (e *Environment) SetVariable(name string, value float64) error {
	if b, ok := e.Lookup(name); ok {
		if b.Kind == KindFunction {
			return &BindingError{Name: name, Cause: ErrNameIsFunction}
		}
		b.Value = value
		return nil
	}
	e.add(Binding{Name: name, Kind: KindVariable, Value: value})
	return nil
}

// DefineFunction binds name to a new function.
// Any existing binding causes ErrFunctionExists or ErrNameIsVariable.
func (e *Environment) DefineFunction(name string, params []string, body *ast.Node) error {
	if b, ok := e.Lookup(name); ok {
		if b.Kind == KindFunction {
			return &BindingError{Name: name, Cause: ErrFunctionExists}
		}
		return &BindingError{Name: name, Cause: ErrNameIsVariable}
	}

	p := make([]string, len(params))
	copy(p, params)
	e.add(Binding{Name: name, Kind: KindFunction, Func: &Function{Name: name, Params: p, Body: body}})
	return nil
}

func (e *Environment) add(b Binding) {
	if e.index == nil {
		e.index = make(map[string]int)
	}
	e.index[b.Name] = len(e.bindings)
	e.bindings = append(e.bindings, b)
}

// Copy returns a call frame for a function invoked from e. Variables are
// copied by value and function bodies are shared. The copy starts with
// cleared control flags one level deeper than e.
func (e *Environment) Copy() *Environment {
	c := &Environment{
		bindings: make([]Binding, len(e.bindings)),
		index:    make(map[string]int, len(e.index)),
		depth:    e.depth + 1,
	}
	copy(c.bindings, e.bindings)
	for name, i := range e.index {
		c.index[name] = i
	}
	return c
}

// Clear drops every binding and resets the control flags. Function bodies
// stay alive for other frames that share them.
func (e *Environment) Clear() {
	e.bindings = nil
	e.index = make(map[string]int)
	e.returned = false
	e.returnValue = 0
	e.exit = false
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.bindings)
}

// Depth returns the call depth: zero for the global frame.
func (e *Environment) Depth() int {
	return e.depth
}

// Names returns the bound names in definition order.
func (e *Environment) Names() []string {
	names := make([]string, len(e.bindings))
	for i, b := range e.bindings {
		names[i] = b.Name
	}
	return names
}

// NamesOf returns the names of bindings of kind k in definition order.
func (e *Environment) NamesOf(k BindingKind) []string {
	var names []string
	for _, b := range e.bindings {
		if b.Kind == k {
			names = append(names, b.Name)
		}
	}
	return names
}

// Bindings returns a snapshot of the bindings in definition order.
func (e *Environment) Bindings() []Binding {
	out := make([]Binding, len(e.bindings))
	copy(out, e.bindings)
	return out
}

// Return marks the frame as returned with value v.
func (e *Environment) Return(v float64) {
	e.returned = true
	e.returnValue = v
}

// Returned reports whether the frame has returned and with which value.
func (e *Environment) Returned() (float64, bool) {
	return e.returnValue, e.returned
}

// ResetReturn clears the return flag and value.
func (e *Environment) ResetReturn() {
	e.returned = false
	e.returnValue = 0
}

// RequestExit asks the whole program to stop.
func (e *Environment) RequestExit() {
	e.exit = true
}

// ExitRequested reports whether exit was requested in this frame or
// propagated into it.
func (e *Environment) ExitRequested() bool {
	return e.exit
}

// Halted reports whether no further statements may run in this frame.
func (e *Environment) Halted() bool {
	return e.returned || e.exit
}

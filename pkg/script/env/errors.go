package env

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected bindings.
var (
	// ErrNameIsFunction indicates an assignment to a name bound as a function.
	ErrNameIsFunction = errors.New("name is bound to a function")

	// ErrFunctionExists indicates a redefinition of a function.
	ErrFunctionExists = errors.New("function already defined")

	// ErrNameIsVariable indicates a function definition over a variable.
	ErrNameIsVariable = errors.New("name is bound to a variable")
)

// BindingError reports a rejected binding. The existing binding is unchanged.
type BindingError struct {
	Name  string
	Cause error
}

// Error returns the error message.
func (e *BindingError) Error() string {
	return fmt.Sprintf("cannot bind %q: %v", e.Name, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *BindingError) Unwrap() error {
	return e.Cause
}

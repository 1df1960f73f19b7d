package errors

import (
	"errors"
	"fmt"
	"strings"

	"turtlescript/console/pkg/script/ast"
)

// ErrorType categorizes an error.
type ErrorType string

const (
	ErrorTypeSyntax   ErrorType = "syntax"   // Lexing or parsing error
	ErrorTypeIO       ErrorType = "io"       // Script file could not be read
	ErrorTypeInternal ErrorType = "internal" // Malformed tree reached the evaluator
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Location   ast.Location // Source location (file, line, column)
	Context    string       // Surrounding lines of code
	Suggestion string       // Suggested fix (optional)
	Err        error        // Underlying cause (optional)
}

// New creates an error of the given type.
func New(errType ErrorType, location ast.Location, format string, args ...interface{}) *Error {
	return &Error{
		Type:     errType,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// Internal creates an internal error for a node that is invalid where it was found.
func Internal(n *ast.Node, context string) *Error {
	if n == nil {
		return &Error{Type: ErrorTypeInternal, Message: fmt.Sprintf("missing node in %s", context)}
	}
	return &Error{
		Type:     ErrorTypeInternal,
		Message:  fmt.Sprintf("unexpected %s node in %s", n.Kind, context),
		Location: n.Location,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorList accumulates errors instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	if el.Count() == 1 {
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// HasErrorType returns true if the list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// TypeOf reports the category of err. It looks through wrapping and through
// error lists, returning the type of the first error found.
func TypeOf(err error) (ErrorType, bool) {
	var list *ErrorList
	if errors.As(err, &list) && list.HasErrors() {
		return list.Errors[0].Type, true
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return "", false
}

// Summary renders err on one line: the type, message and location of the
// first error, followed by a count of any further errors in a list.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var list *ErrorList
	if errors.As(err, &list) && list.HasErrors() {
		s := list.Errors[0].summary()
		if more := list.Count() - 1; more > 0 {
			s += fmt.Sprintf(" (and %d more)", more)
		}
		return s
	}
	var e *Error
	if errors.As(err, &e) {
		return e.summary()
	}
	msg := strings.TrimSpace(err.Error())
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func (e *Error) summary() string {
	s := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Location.IsValid() {
		s += " at " + e.Location.String()
	}
	return s
}

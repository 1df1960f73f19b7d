package cli

import (
	"errors"
	"fmt"

	scripterrors "turtlescript/console/pkg/script/errors"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitSyntax   = 2
	ExitInternal = 3
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ErrSilent marks an error that has already been reported to the user.
// Commands wrap script errors with it so the root command does not print
// them a second time.
var ErrSilent = errors.New("already reported")

// silentError carries the original error for exit code selection.
type silentError struct {
	err error
}

func (e *silentError) Error() string   { return e.err.Error() }
func (e *silentError) Unwrap() []error { return []error{ErrSilent, e.err} }

// Silence wraps err so that it is not printed again. A nil err stays nil.
func Silence(err error) error {
	if err == nil {
		return nil
	}
	return &silentError{err: err}
}

// ExitCode maps err to the process exit code: 0 for nil, 2 for script
// syntax errors, 3 for internal interpreter errors and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	t, ok := scripterrors.TypeOf(err)
	if !ok {
		return ExitFailure
	}
	switch t {
	case scripterrors.ErrorTypeSyntax:
		return ExitSyntax
	case scripterrors.ErrorTypeInternal:
		return ExitInternal
	default:
		return ExitFailure
	}
}

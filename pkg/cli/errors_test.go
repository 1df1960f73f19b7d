package cli

import (
	"errors"
	"fmt"
	"testing"

	"turtlescript/console/pkg/script/ast"
	scripterrors "turtlescript/console/pkg/script/errors"
)

func TestConfigError(t *testing.T) {
	tests := []struct {
		err  *ConfigError
		want string
	}{
		{NewConfigError("canvas.width", "must be positive"), "config error in canvas.width: must be positive"},
		{NewConfigError("", "file not readable"), "config error: file not readable"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("run", underlyingErr)

	expected := "command run failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestSilence(t *testing.T) {
	if Silence(nil) != nil {
		t.Error("Silence(nil) should be nil")
	}

	cause := scripterrors.New(scripterrors.ErrorTypeSyntax, ast.Location{}, "unexpected token")
	err := Silence(cause)
	if !errors.Is(err, ErrSilent) {
		t.Error("silenced error should match ErrSilent")
	}
	if !errors.Is(err, cause) {
		t.Error("silenced error should keep its cause")
	}
	if ExitCode(err) != ExitSyntax {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(err), ExitSyntax)
	}
}

func TestExitCode(t *testing.T) {
	syntax := scripterrors.NewErrorList()
	syntax.AddError(scripterrors.ErrorTypeSyntax, "missing }", ast.Location{File: "a.tsc", Line: 1})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("boom"), ExitFailure},
		{"syntax list", syntax, ExitSyntax},
		{"wrapped syntax", fmt.Errorf("run: %w", syntax), ExitSyntax},
		{"internal", scripterrors.New(scripterrors.ErrorTypeInternal, ast.Location{}, "bad node"), ExitInternal},
		{"io", scripterrors.New(scripterrors.ErrorTypeIO, ast.Location{}, "missing"), ExitFailure},
		{"command wrapping internal", NewCommandError("run", scripterrors.New(scripterrors.ErrorTypeInternal, ast.Location{}, "x")), ExitInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

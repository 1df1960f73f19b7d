package env

import (
	"errors"
	"reflect"
	"testing"

	"turtlescript/console/pkg/script/ast"
)

func TestSetVariable(t *testing.T) {
	e := New()

	if err := e.SetVariable("x", 1); err != nil {
		t.Fatalf("SetVariable() error = %v", err)
	}
	if err := e.SetVariable("x", 2.5); err != nil {
		t.Fatalf("SetVariable() overwrite error = %v", err)
	}

	if v, ok := e.Variable("x"); !ok || v != 2.5 {
		t.Errorf("Variable(x) = (%v, %v), want (2.5, true)", v, ok)
	}
	if e.Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Len())
	}
}

func TestSetVariable_RejectsFunctionName(t *testing.T) {
	e := New()
	body := ast.NewExit()
	if err := e.DefineFunction("f", nil, body); err != nil {
		t.Fatalf("DefineFunction() error = %v", err)
	}

	err := e.SetVariable("f", 3)
	if !errors.Is(err, ErrNameIsFunction) {
		t.Fatalf("SetVariable(f) error = %v, want ErrNameIsFunction", err)
	}

	var bindErr *BindingError
	if !errors.As(err, &bindErr) || bindErr.Name != "f" {
		t.Errorf("expected BindingError for f, got %T", err)
	}

	fn, ok := e.Function("f")
	if !ok || fn.Body != body {
		t.Error("function binding should be preserved")
	}
}

func TestDefineFunction(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(e *Environment)
		wantErr error
	}{
		{
			name:  "new name",
			setup: func(e *Environment) {},
		},
		{
			name: "redefinition",
			setup: func(e *Environment) {
				_ = e.DefineFunction("sq", []string{"n"}, ast.NewExit())
			},
			wantErr: ErrFunctionExists,
		},
		{
			name: "over variable",
			setup: func(e *Environment) {
				_ = e.SetVariable("sq", 4)
			},
			wantErr: ErrNameIsVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			tt.setup(e)
			before := e.Bindings()

			err := e.DefineFunction("sq", []string{"size"}, ast.NewShowHelp())
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("DefineFunction() error = %v", err)
				}
				fn, ok := e.Function("sq")
				if !ok || fn.Arity() != 1 || fn.Params[0] != "size" {
					t.Errorf("unexpected function: %+v", fn)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DefineFunction() error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(e.Bindings(), before) {
				t.Error("rejected definition modified the environment")
			}
		})
	}
}

func TestCopy(t *testing.T) {
	global := New()
	_ = global.SetVariable("x", 1)
	_ = global.DefineFunction("f", nil, ast.NewExit())
	global.Return(7)
	global.RequestExit()

	frame := global.Copy()

	if frame.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", frame.Depth())
	}
	if frame.Halted() {
		t.Error("copy should start with cleared flags")
	}

	// Variables are independent.
	_ = frame.SetVariable("x", 2)
	_ = frame.SetVariable("y", 3)
	if v, _ := global.Variable("x"); v != 1 {
		t.Errorf("caller x = %v, want 1", v)
	}
	if _, ok := global.Lookup("y"); ok {
		t.Error("callee binding leaked into caller")
	}

	// Function bodies are shared.
	gf, _ := global.Function("f")
	cf, _ := frame.Function("f")
	if gf.Body != cf.Body {
		t.Error("function body should be shared between frames")
	}

	if got := frame.Names(); !reflect.DeepEqual(got, []string{"x", "f", "y"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestClear(t *testing.T) {
	e := New().Copy()
	_ = e.SetVariable("a", 1)
	_ = e.DefineFunction("g", nil, ast.NewExit())
	e.Return(1)

	e.Clear()

	if e.Len() != 0 || e.Halted() {
		t.Errorf("Clear() left Len=%d Halted=%v", e.Len(), e.Halted())
	}
	if err := e.SetVariable("g", 1); err != nil {
		t.Errorf("name should be free after Clear: %v", err)
	}
}

func TestControlFlags(t *testing.T) {
	e := New()

	if _, ok := e.Returned(); ok {
		t.Fatal("new environment should not be returned")
	}

	e.Return(42)
	if v, ok := e.Returned(); !ok || v != 42 {
		t.Errorf("Returned() = (%v, %v), want (42, true)", v, ok)
	}

	e.ResetReturn()
	if _, ok := e.Returned(); ok {
		t.Error("ResetReturn() should clear the flag")
	}

	e.RequestExit()
	if !e.ExitRequested() || !e.Halted() {
		t.Error("RequestExit() should halt the frame")
	}
}

func TestNamesOf(t *testing.T) {
	e := New()
	_ = e.SetVariable("size", 10)
	_ = e.DefineFunction("square", nil, ast.NewExit())
	_ = e.SetVariable("angle", 90)

	if got := e.NamesOf(KindVariable); !reflect.DeepEqual(got, []string{"size", "angle"}) {
		t.Errorf("NamesOf(variable) = %v", got)
	}
	if got := e.NamesOf(KindFunction); !reflect.DeepEqual(got, []string{"square"}) {
		t.Errorf("NamesOf(function) = %v", got)
	}
}

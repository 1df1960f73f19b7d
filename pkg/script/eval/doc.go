// Package eval implements the tree-walking evaluator for Turtle Script.
//
// An Interpreter runs one tree at a time against an Environment. Statements
// are executed for effect; expressions are evaluated as numbers, booleans
// or strings depending on where they appear.
//
// # Error Handling
//
// Script mistakes never stop a run. Division by zero, undefined names,
// rejected bindings and calls to unknown functions print a diagnostic
// prefixed with "-!- " to the text sink and continue with a safe default
// (0 for values, no-op for statements).
//
// A node of a kind that is invalid where it appears means the tree was built
// incorrectly. Run stops and returns an *errors.Error of type internal.
//
// The exit statement and context cancellation both halt the run without
// error semantics for the script; cancellation is reported as ctx.Err().
//
// # Calls
//
// A call runs the function body in a copy of the caller's environment.
// Arguments are evaluated in the caller and bound to the parameters of the
// copy; assignments made by the callee are discarded when it returns.
// Function names are resolved at call time from the string value of the
// callee expression:
//
//	call("square", 30)
//
// Call depth is bounded by Config.MaxCallDepth.
package eval

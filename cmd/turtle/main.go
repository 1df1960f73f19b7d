// Turtle is the console for Turtle Script, a small language for turtle
// graphics.
//
// It runs scripts and interactive sessions on a headless canvas, provides:
//   - SVG rendering and CBOR recordings of the drawing
//   - Re-running a script whenever it changes on disk
//   - A journal of every executed input in SQLite
//   - Prometheus metrics and OpenTelemetry traces of script runs
//
// Usage:
//
//	# Run a script and render it
//	turtle run examples/scripts/flower.tsc --svg flower.svg
//
//	# Start an interactive session
//	turtle repl
//
//	# Re-render a script on every save
//	turtle watch spiral.tsc --svg spiral.svg
//
//	# Parse scripts without running them
//	turtle check examples/scripts/*.tsc
//
//	# Show the journal
//	turtle history --limit 20
package main

func main() {
	Execute()
}

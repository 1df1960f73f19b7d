// Package console runs Turtle Script input against a persistent global
// environment.
//
// A Session owns the environment, the drawing device and the parsed trees
// of one console. Each input, whether typed at the prompt or read from a
// file, is parsed and executed as its own run: it gets a run ID, a trace
// span, a metrics observation and, when a journal is configured, a journal
// entry.
//
//	s, err := console.NewSession(console.Options{Output: os.Stdout})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	return s.REPL(ctx, os.Stdin)
//
// On a terminal, Interact with a Terminal adds line editing and history:
//
//	term := console.NewTerminal(historyPath, logger)
//	defer term.Close()
//	return s.Interact(ctx, term)
package console

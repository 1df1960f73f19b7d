// Package journal keeps a durable record of every input a console session
// executes.
//
// # Overview
//
// Each executed input (a REPL line, a script file, a watch re-run) becomes
// an Entry carrying the session and run identifiers, the source text and
// its SHA-256 hash, how the run ended, how much work it did and how long it
// took. Entries are written asynchronously by a Recorder so journaling never
// slows the interpreter down.
//
// # Architecture
//
//	console.Session
//	     │ Entry
//	     ▼
//	recorder.Recorder ──(buffered channel)──► worker ──► Storage
//	                                                       ▲
//	retention.Pruner ◄── retention.Scheduler (cron) ───────┘
//
// # Storage Backends
//
//   - storage.MemoryStorage: process-local, for tests and throwaway sessions
//   - storage.SQLiteStorage: durable, with the pure-Go "sqlite" driver or the
//     cgo "sqlite3" driver
//
// # Configuration
//
//	journal:
//	  enabled: true
//	  driver: sqlite
//	  path: data/journal.db
//	  retention:
//	    days: 30
//	    schedule: "0 3 * * *"
//
// # Querying
//
//	entries, err := store.Query(ctx, &journal.Query{
//	    SessionID: id,
//	    Limit:     20,
//	})
package journal

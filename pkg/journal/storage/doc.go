// Package storage provides journal storage backends.
//
// MemoryStorage keeps entries in a map and is used by tests and by the
// "memory" driver. SQLiteStorage persists entries in a single table and
// works with either the pure-Go modernc.org/sqlite driver ("sqlite") or
// github.com/mattn/go-sqlite3 ("sqlite3", requires cgo).
package storage

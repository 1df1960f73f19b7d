package journal

import (
	"context"
	"time"
)

// Status values recorded for an entry.
const (
	StatusOK          = "ok"
	StatusSyntaxError = "syntax_error"
	StatusIOError     = "io_error"
	StatusInternal    = "internal_error"
	StatusCancelled   = "cancelled"
	StatusExit        = "exit"
)

// Entry is the journal record of one executed input.
type Entry struct {
	// Identity
	ID        string `json:"id"`
	SessionID string `json:"session_id"`

	// Input
	Origin     string `json:"origin"`         // "interactive", "file", "watch"
	File       string `json:"file,omitempty"` // empty for interactive input
	Source     string `json:"source"`
	SourceHash string `json:"source_hash"` // SHA-256 of the full source
	Truncated  bool   `json:"truncated,omitempty"`

	// Outcome
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	Nodes       int    `json:"nodes"`
	Functions   int    `json:"functions"`
	Commands    int    `json:"commands"`    // device calls issued
	Diagnostics int    `json:"diagnostics"` // recoverable script errors
	TraceID     string `json:"trace_id,omitempty"`

	// Timing
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// Query selects journal entries. Zero-valued fields do not filter.
type Query struct {
	// Time range
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive start time
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive end time

	// Filters
	SessionID string `json:"session_id,omitempty"`
	Origin    string `json:"origin,omitempty"`
	Status    string `json:"status,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max entries to return
	Offset int `json:"offset,omitempty"` // Skip N entries

	// Ascending returns the oldest entries first. The default is newest first.
	Ascending bool `json:"ascending,omitempty"`
}

// Storage defines the interface for journal storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists an entry.
	Store(ctx context.Context, entry *Entry) error

	// Query retrieves entries matching the query, ordered by StartedAt.
	// Returns an empty slice if nothing matches.
	Query(ctx context.Context, query *Query) ([]*Entry, error)

	// Count returns the number of entries matching the query.
	// Pagination fields are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes entries matching the query and returns how many were
	// removed. Pagination fields are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}

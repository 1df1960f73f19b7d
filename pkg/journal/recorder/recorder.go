package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"turtlescript/console/pkg/journal"
)

// Config contains configuration for the journal recorder.
type Config struct {
	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 256
	AsyncBuffer int

	// EnqueueTimeout bounds how long Record waits for buffer space.
	// Default: 100ms
	EnqueueTimeout time.Duration

	// WriteTimeout is the timeout for writing one entry to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration

	// MaxSourceLength truncates the stored source text. 0 keeps it whole.
	MaxSourceLength int
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		AsyncBuffer:     256,
		EnqueueTimeout:  100 * time.Millisecond,
		WriteTimeout:    5 * time.Second,
		MaxSourceLength: 4096,
	}
}

// Recorder writes journal entries to storage from a background worker.
type Recorder struct {
	storage   journal.Storage
	config    *Config
	entries   chan *journal.Entry
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	logger    *slog.Logger

	// mu orders enqueues before Close: senders hold the read lock, Close
	// takes the write lock to set closed.
	mu     sync.RWMutex
	closed bool
}

// NewRecorder creates a recorder and starts its worker.
func NewRecorder(storage journal.Storage, config *Config, logger *slog.Logger) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage: storage,
		config:  config,
		entries: make(chan *journal.Entry, config.AsyncBuffer),
		done:    make(chan struct{}),
		logger:  logger.With("component", "journal.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// Record fills in the entry ID, source hash and truncation, then enqueues
// the entry for writing. It returns without waiting for storage.
func (r *Recorder) Record(ctx context.Context, entry *journal.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.SourceHash == "" {
		entry.SourceHash = HashSource(entry.Source)
	}
	if src, cut := TruncateSource(entry.Source, r.config.MaxSourceLength); cut {
		entry.Source = src
		entry.Truncated = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// A closed recorder must never accept work, even with buffer space left.
	if r.closed {
		return &journal.RecorderError{EntryID: entry.ID, Cause: journal.ErrClosed}
	}

	timer := time.NewTimer(r.config.EnqueueTimeout)
	defer timer.Stop()

	select {
	case r.entries <- entry:
		return nil
	case <-timer.C:
		r.logger.Warn("journal buffer full, dropping entry",
			"entry_id", entry.ID,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return &journal.RecorderError{EntryID: entry.ID, Cause: context.DeadlineExceeded}
	case <-ctx.Done():
		return &journal.RecorderError{EntryID: entry.ID, Cause: ctx.Err()}
	}
}

// Close waits for in-flight Record calls, drains pending entries and waits
// for the worker to exit. Every entry Record accepted is written. The
// storage is not closed.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.done)
		r.mu.Unlock()

		r.wg.Wait()
	})
	return nil
}

// worker drains the entry channel into storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case entry := <-r.entries:
			r.write(entry)

		case <-r.done:
			for {
				select {
				case entry := <-r.entries:
					r.write(entry)
				default:
					return
				}
			}
		}
	}
}

// write stores a single entry.
func (r *Recorder) write(entry *journal.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()
	if err := r.storage.Store(ctx, entry); err != nil {
		r.logger.Error("failed to store journal entry",
			"entry_id", entry.ID,
			"session", entry.SessionID,
			"error", err,
		)
		return
	}

	r.logger.Debug("journal entry recorded",
		"entry_id", entry.ID,
		"session", entry.SessionID,
		"status", entry.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

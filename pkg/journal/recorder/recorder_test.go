package recorder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"turtlescript/console/pkg/journal"
	"turtlescript/console/pkg/journal/storage"
	"turtlescript/console/pkg/telemetry/logging"
)

func TestRecorder_Record(t *testing.T) {
	store := storage.NewMemoryStorage()
	r := NewRecorder(store, &Config{AsyncBuffer: 8, EnqueueTimeout: time.Second, WriteTimeout: time.Second, MaxSourceLength: 8}, logging.Discard())

	entry := &journal.Entry{
		SessionID: "s1",
		Origin:    "interactive",
		Source:    "forward 100",
		Status:    journal.StatusOK,
		StartedAt: time.Now(),
	}
	if err := r.Record(context.Background(), entry); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := store.Query(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("stored %d entries, want 1", len(got))
	}

	e := got[0]
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", e.ID, err)
	}
	if e.Source != "forward " || !e.Truncated {
		t.Errorf("Source = %q (truncated=%v), want %q truncated", e.Source, e.Truncated, "forward ")
	}
	if e.SourceHash != HashSource("forward 100") {
		t.Error("hash must cover the full source, not the truncated text")
	}
}

func TestRecorder_KeepsExistingID(t *testing.T) {
	store := storage.NewMemoryStorage()
	r := NewRecorder(store, nil, logging.Discard())

	if err := r.Record(context.Background(), &journal.Entry{ID: "fixed", Source: "home"}); err != nil {
		t.Fatal(err)
	}
	r.Close()

	got, _ := store.Query(context.Background(), nil)
	if len(got) != 1 || got[0].ID != "fixed" {
		t.Errorf("entries = %+v, want one entry with ID fixed", got)
	}
}

func TestRecorder_CloseDrains(t *testing.T) {
	store := storage.NewMemoryStorage()
	r := NewRecorder(store, &Config{AsyncBuffer: 100, EnqueueTimeout: time.Second, WriteTimeout: time.Second}, logging.Discard())

	for i := 0; i < 50; i++ {
		if err := r.Record(context.Background(), &journal.Entry{Source: "fd 1"}); err != nil {
			t.Fatal(err)
		}
	}
	r.Close()

	count, _ := store.Count(context.Background(), nil)
	if count != 50 {
		t.Errorf("stored %d entries after Close, want 50", count)
	}
}

func TestRecorder_RecordAfterClose(t *testing.T) {
	r := NewRecorder(storage.NewMemoryStorage(), nil, logging.Discard())
	r.Close()
	r.Close()

	err := r.Record(context.Background(), &journal.Entry{Source: "fd 1"})
	if !errors.Is(err, journal.ErrClosed) {
		t.Errorf("Record() after Close error = %v, want ErrClosed", err)
	}
}

func TestRecorder_CloseRacesRecord(t *testing.T) {
	for round := 0; round < 20; round++ {
		store := storage.NewMemoryStorage()
		r := NewRecorder(store, &Config{AsyncBuffer: 4, EnqueueTimeout: time.Second, WriteTimeout: time.Second}, logging.Discard())

		var accepted atomic.Int64
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 25; i++ {
					err := r.Record(context.Background(), &journal.Entry{Source: "fd 1"})
					switch {
					case err == nil:
						accepted.Add(1)
					case errors.Is(err, journal.ErrClosed):
						return
					default:
						t.Errorf("Record() error = %v", err)
						return
					}
				}
			}()
		}

		time.Sleep(time.Millisecond)
		r.Close()
		wg.Wait()

		count, err := store.Count(context.Background(), nil)
		if err != nil {
			t.Fatal(err)
		}
		if int64(count) != accepted.Load() {
			t.Fatalf("round %d: stored %d entries, Record accepted %d", round, count, accepted.Load())
		}
	}
}

// blockingStorage stalls Store until released.
type blockingStorage struct {
	*storage.MemoryStorage
	release chan struct{}
	once    sync.Once
}

func (b *blockingStorage) Store(ctx context.Context, e *journal.Entry) error {
	<-b.release
	return b.MemoryStorage.Store(ctx, e)
}

func (b *blockingStorage) unblock() {
	b.once.Do(func() { close(b.release) })
}

func TestRecorder_BufferFull(t *testing.T) {
	store := &blockingStorage{MemoryStorage: storage.NewMemoryStorage(), release: make(chan struct{})}
	r := NewRecorder(store, &Config{AsyncBuffer: 1, EnqueueTimeout: 10 * time.Millisecond, WriteTimeout: time.Second}, logging.Discard())
	defer func() {
		store.unblock()
		r.Close()
	}()

	// The worker takes the first entry and blocks on it, the second fills
	// the buffer, and the third cannot be enqueued.
	var lastErr error
	for i := 0; i < 3; i++ {
		lastErr = r.Record(context.Background(), &journal.Entry{Source: "fd 1"})
	}
	if lastErr == nil {
		// The worker may not have picked up the first entry yet.
		lastErr = r.Record(context.Background(), &journal.Entry{Source: "fd 1"})
	}

	var re *journal.RecorderError
	if !errors.As(lastErr, &re) || !errors.Is(lastErr, context.DeadlineExceeded) {
		t.Errorf("Record() on full buffer error = %v, want RecorderError(DeadlineExceeded)", lastErr)
	}
}

// failingStorage rejects every write.
type failingStorage struct {
	*storage.MemoryStorage
}

func (failingStorage) Store(context.Context, *journal.Entry) error {
	return journal.NewStorageError("memory", "store", errors.New("disk full"))
}

func TestRecorder_StorageFailureIsLogged(t *testing.T) {
	var buf strings.Builder
	logger, err := logging.New(logging.Config{Level: "debug", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	r := NewRecorder(failingStorage{storage.NewMemoryStorage()}, nil, logger)
	if err := r.Record(context.Background(), &journal.Entry{ID: "e1", Source: "fd 1"}); err != nil {
		t.Fatal(err)
	}
	r.Close()

	out := buf.String()
	if !strings.Contains(out, "failed to store journal entry") || !strings.Contains(out, "entry_id=e1") {
		t.Errorf("log output missing store failure:\n%s", out)
	}
}

func TestHashSource(t *testing.T) {
	if HashSource("") != "" {
		t.Error("empty source should hash to empty string")
	}
	// sha256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := HashSource("abc"); got != want {
		t.Errorf("HashSource(abc) = %s, want %s", got, want)
	}
}

func TestTruncateSource(t *testing.T) {
	tests := []struct {
		in      string
		max     int
		want    string
		wantCut bool
	}{
		{"forward 10", 0, "forward 10", false},
		{"forward 10", 20, "forward 10", false},
		{"forward 10", 10, "forward 10", false},
		{"forward 10", 7, "forward", true},
		{"écho", 1, "", true},
		{"aé", 2, "a", true},
	}

	for _, tt := range tests {
		got, cut := TruncateSource(tt.in, tt.max)
		if got != tt.want || cut != tt.wantCut {
			t.Errorf("TruncateSource(%q, %d) = %q, %v; want %q, %v", tt.in, tt.max, got, cut, tt.want, tt.wantCut)
		}
	}
}

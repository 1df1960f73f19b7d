package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/journal"
	"turtlescript/console/pkg/telemetry/logging"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testEntry(id, session string, offset time.Duration) *journal.Entry {
	return &journal.Entry{
		ID:         id,
		SessionID:  session,
		Origin:     "interactive",
		Source:     "forward 10",
		SourceHash: "hash-" + id,
		Status:     journal.StatusOK,
		Nodes:      3,
		Commands:   1,
		StartedAt:  base.Add(offset),
		Duration:   1500 * time.Microsecond,
	}
}

// backends returns a constructor per storage implementation.
func backends(t *testing.T) map[string]func(t *testing.T) journal.Storage {
	t.Helper()

	sqlite := func(driver string) func(t *testing.T) journal.Storage {
		return func(t *testing.T) journal.Storage {
			t.Helper()
			s, err := NewSQLiteStorage(SQLiteConfig{
				Driver:  driver,
				Path:    filepath.Join(t.TempDir(), "journal.db"),
				WALMode: true,
			}, logging.Discard())
			if err != nil {
				if strings.Contains(err.Error(), "CGO_ENABLED=0") {
					t.Skipf("driver %s needs cgo", driver)
				}
				t.Fatalf("NewSQLiteStorage(%s) error = %v", driver, err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		}
	}

	return map[string]func(t *testing.T) journal.Storage{
		"memory": func(t *testing.T) journal.Storage {
			s := NewMemoryStorage()
			t.Cleanup(func() { s.Close() })
			return s
		},
		"sqlite":  sqlite("sqlite"),
		"sqlite3": sqlite("sqlite3"),
	}
}

func seed(t *testing.T, s journal.Storage, entries ...*journal.Entry) {
	t.Helper()
	for _, e := range entries {
		if err := s.Store(context.Background(), e); err != nil {
			t.Fatalf("Store(%s) error = %v", e.ID, err)
		}
	}
}

func ids(entries []*journal.Entry) string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return strings.Join(out, ",")
}

func TestStorage_RoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			want := testEntry("e1", "s1", 0)
			want.Origin = "file"
			want.File = "spiral.tsc"
			want.Status = journal.StatusSyntaxError
			want.Error = "[syntax] unexpected '}'"
			want.Truncated = true
			want.Functions = 2
			want.Diagnostics = 4
			want.TraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
			seed(t, s, want)

			got, err := s.Query(context.Background(), &journal.Query{})
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 {
				t.Fatalf("Query() returned %d entries, want 1", len(got))
			}

			e := got[0]
			if !e.StartedAt.Equal(want.StartedAt) {
				t.Errorf("StartedAt = %v, want %v", e.StartedAt, want.StartedAt)
			}
			e.StartedAt = want.StartedAt
			if *e != *want {
				t.Errorf("entry = %+v\nwant    %+v", *e, *want)
			}
		})
	}
}

func TestStorage_EmptyOptionalFields(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			seed(t, s, testEntry("e1", "s1", 0))

			got, err := s.Query(context.Background(), nil)
			if err != nil {
				t.Fatal(err)
			}
			if got[0].File != "" || got[0].Error != "" || got[0].TraceID != "" {
				t.Errorf("optional fields not empty: %+v", got[0])
			}
		})
	}
}

func TestStorage_Query(t *testing.T) {
	entries := []*journal.Entry{
		testEntry("a", "s1", 0),
		testEntry("b", "s1", time.Minute),
		testEntry("c", "s2", 2*time.Minute),
		testEntry("d", "s2", 3*time.Minute),
	}
	entries[2].Status = journal.StatusInternal
	entries[3].Origin = "watch"

	start := base.Add(time.Minute)
	end := base.Add(2 * time.Minute)

	tests := []struct {
		name  string
		query *journal.Query
		want  string
	}{
		{"all newest first", &journal.Query{}, "d,c,b,a"},
		{"ascending", &journal.Query{Ascending: true}, "a,b,c,d"},
		{"by session", &journal.Query{SessionID: "s1"}, "b,a"},
		{"by status", &journal.Query{Status: journal.StatusInternal}, "c"},
		{"by origin", &journal.Query{Origin: "watch"}, "d"},
		{"time range inclusive", &journal.Query{StartTime: &start, EndTime: &end}, "c,b"},
		{"limit", &journal.Query{Limit: 2}, "d,c"},
		{"limit and offset", &journal.Query{Limit: 2, Offset: 1}, "c,b"},
		{"offset only", &journal.Query{Offset: 3}, "a"},
		{"offset past end", &journal.Query{Offset: 10}, ""},
		{"no match", &journal.Query{SessionID: "missing"}, ""},
	}

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			seed(t, s, entries...)

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.Query(context.Background(), tt.query)
					if err != nil {
						t.Fatal(err)
					}
					if ids(got) != tt.want {
						t.Errorf("Query() = [%s], want [%s]", ids(got), tt.want)
					}
				})
			}
		})
	}
}

func TestStorage_CountAndDelete(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()
			for i := 0; i < 5; i++ {
				seed(t, s, testEntry(fmt.Sprintf("e%d", i), "s1", time.Duration(i)*time.Hour))
			}

			count, err := s.Count(ctx, &journal.Query{})
			if err != nil || count != 5 {
				t.Fatalf("Count() = %d, %v; want 5", count, err)
			}

			cutoff := base.Add(90 * time.Minute)
			deleted, err := s.Delete(ctx, &journal.Query{EndTime: &cutoff})
			if err != nil {
				t.Fatal(err)
			}
			if deleted != 2 {
				t.Errorf("Delete() = %d, want 2", deleted)
			}

			count, _ = s.Count(ctx, &journal.Query{Limit: 1})
			if count != 3 {
				t.Errorf("Count() after delete = %d, want 3 (limit ignored)", count)
			}
		})
	}
}

func TestStorage_DuplicateID(t *testing.T) {
	s := backends(t)["sqlite"](t)
	seed(t, s, testEntry("e1", "s1", 0))

	err := s.Store(context.Background(), testEntry("e1", "s1", time.Second))
	var se *journal.StorageError
	if !errors.As(err, &se) || se.Operation != "store" {
		t.Errorf("Store(duplicate) error = %v, want StorageError on store", err)
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := NewSQLiteStorage(SQLiteConfig{Path: path}, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	seed(t, s, testEntry("e1", "s1", 0))
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewSQLiteStorage(SQLiteConfig{Path: path}, logging.Discard())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	count, err := s.Count(context.Background(), nil)
	if err != nil || count != 1 {
		t.Errorf("Count() after reopen = %d, %v; want 1", count, err)
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(SQLiteConfig{}, logging.Discard())
	var se *journal.StorageError
	if !errors.As(err, &se) || se.Operation != "open" {
		t.Errorf("error = %v, want StorageError on open", err)
	}
}

func TestMemoryStorage_Closed(t *testing.T) {
	s := NewMemoryStorage()
	s.Close()

	err := s.Store(context.Background(), testEntry("e1", "s1", 0))
	if !errors.Is(err, journal.ErrClosed) {
		t.Errorf("Store() after Close error = %v, want ErrClosed", err)
	}
}

func TestMemoryStorage_CopiesEntries(t *testing.T) {
	s := NewMemoryStorage()
	e := testEntry("e1", "s1", 0)
	seed(t, s, e)

	e.Status = "mutated"
	got, _ := s.Query(context.Background(), nil)
	if got[0].Status != journal.StatusOK {
		t.Error("stored entry shares memory with the caller")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.JournalConfig
		wantErr bool
	}{
		{"memory", config.JournalConfig{Driver: "memory"}, false},
		{"sqlite in new dir", config.JournalConfig{Driver: "sqlite", Path: filepath.Join(dir, "nested", "j.db")}, false},
		{"unknown driver", config.JournalConfig{Driver: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(&tt.cfg, logging.Discard())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				s.Close()
			}
		})
	}
}

package retention

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"turtlescript/console/pkg/journal"
	"turtlescript/console/pkg/journal/storage"
	"turtlescript/console/pkg/telemetry/logging"
)

var now = time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC)

func seedAges(t *testing.T, s journal.Storage, ages ...time.Duration) {
	t.Helper()
	for i, age := range ages {
		err := s.Store(context.Background(), &journal.Entry{
			ID:        fmt.Sprintf("e%d", i),
			StartedAt: now.Add(-age),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
}

func newTestPruner(s journal.Storage, days int, schedule string) *Pruner {
	p := NewPruner(s, &Config{RetentionDays: days, Schedule: schedule}, logging.Discard())
	p.now = func() time.Time { return now }
	return p
}

func TestPruner_Prune(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name        string
		days        int
		ages        []time.Duration
		wantDeleted int64
	}{
		{"keeps recent entries", 30, []time.Duration{time.Hour, 29 * day}, 0},
		{"deletes old entries", 30, []time.Duration{time.Hour, 31 * day, 90 * day}, 2},
		{"cutoff is inclusive", 30, []time.Duration{30 * day}, 0},
		{"retention disabled", 0, []time.Duration{365 * day}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := storage.NewMemoryStorage()
			seedAges(t, s, tt.ages...)

			deleted, err := newTestPruner(s, tt.days, "").Prune(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("Prune() deleted %d, want %d", deleted, tt.wantDeleted)
			}

			remaining, _ := s.Count(context.Background(), nil)
			if remaining != int64(len(tt.ages))-tt.wantDeleted {
				t.Errorf("remaining = %d, want %d", remaining, int64(len(tt.ages))-tt.wantDeleted)
			}
		})
	}
}

// brokenStorage fails every delete.
type brokenStorage struct {
	*storage.MemoryStorage
}

func (brokenStorage) Delete(context.Context, *journal.Query) (int64, error) {
	return 0, journal.NewStorageError("memory", "delete", errors.New("locked"))
}

func TestPruner_StorageError(t *testing.T) {
	p := newTestPruner(brokenStorage{storage.NewMemoryStorage()}, 7, "")

	_, err := p.Prune(context.Background())
	var re *journal.RetentionError
	if !errors.As(err, &re) || re.RetentionDays != 7 {
		t.Fatalf("Prune() error = %v, want RetentionError", err)
	}
	var se *journal.StorageError
	if !errors.As(err, &se) {
		t.Error("RetentionError does not wrap the StorageError")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	p := newTestPruner(storage.NewMemoryStorage(), 30, "0 3 * * *")

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !p.scheduler.IsRunning() {
		t.Fatal("scheduler not running after Start")
	}

	next := p.NextPruning()
	if next == nil {
		t.Fatal("NextPruning() = nil")
	}
	if next.Hour() != 3 || next.Minute() != 0 {
		t.Errorf("NextPruning() = %v, want 03:00", next)
	}

	p.Stop()
	if p.scheduler.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
	if p.NextPruning() != nil {
		t.Error("NextPruning() should be nil once stopped")
	}
	p.Stop()
}

func TestScheduler_NotScheduled(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		schedule string
	}{
		{"empty schedule", 30, ""},
		{"retention disabled", 0, "@daily"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPruner(storage.NewMemoryStorage(), tt.days, tt.schedule)
			if err := p.Start(context.Background()); err != nil {
				t.Fatal(err)
			}
			if p.scheduler.IsRunning() {
				t.Error("scheduler should not run")
			}
		})
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	p := newTestPruner(storage.NewMemoryStorage(), 30, "every tuesday")
	if err := p.Start(context.Background()); err == nil {
		t.Error("Start() with invalid schedule should fail")
	}
}

func TestScheduler_StopsOnContextDone(t *testing.T) {
	p := newTestPruner(storage.NewMemoryStorage(), 30, "@hourly")

	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	deadline := time.Now().Add(5 * time.Second)
	for p.scheduler.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler still running after context cancel")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_RunPruning(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedAges(t, s, 60*24*time.Hour)

	p := newTestPruner(s, 30, "@daily")
	p.scheduler.runPruning(context.Background())

	if n, _ := s.Count(context.Background(), nil); n != 0 {
		t.Errorf("entries after scheduled prune = %d, want 0", n)
	}
}

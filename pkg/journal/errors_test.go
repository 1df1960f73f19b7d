package journal

import (
	"context"
	"errors"
	"testing"
)

func TestErrors(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "storage",
			err:  NewStorageError("sqlite", "store", cause),
			want: "storage error [backend=sqlite, operation=store]: disk full",
		},
		{
			name: "recorder with id",
			err:  &RecorderError{EntryID: "e1", Cause: cause},
			want: "recorder error [entry_id=e1]: disk full",
		},
		{
			name: "recorder without id",
			err:  &RecorderError{Cause: cause},
			want: "recorder error: disk full",
		},
		{
			name: "retention",
			err:  &RetentionError{RetentionDays: 30, Cause: cause},
			want: "retention error [retention_days=30]: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("errors.Is does not reach the cause")
			}
		})
	}
}

func TestStorageError_As(t *testing.T) {
	var err error = &RecorderError{Cause: NewStorageError("memory", "store", context.DeadlineExceeded)}

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatal("errors.As did not find the StorageError")
	}
	if se.Backend != "memory" || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("unexpected chain: %v", err)
	}
}

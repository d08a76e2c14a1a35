package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/romanus/internal/convert"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// createTestRecord creates a successful to_roman record.
func createTestRecord(id, input, output string) Record {
	return Record{
		ID:        id,
		Direction: convert.ToRoman,
		Input:     input,
		Output:    output,
		CreatedAt: testTime,
	}
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/romanus/internal/convert"
	"github.com/roach88/romanus/internal/numeral"
)

// KindInvalidInput is stored as ErrorKind for failures that are not numeral
// errors, such as integer input that does not parse.
const KindInvalidInput = "InvalidInput"

// Record is one stored conversion.
type Record struct {
	ID        string            `json:"id"`
	Seq       int64             `json:"seq"`
	Direction convert.Direction `json:"direction"`
	Input     string            `json:"input"`
	Output    string            `json:"output,omitempty"`
	ErrorKind string            `json:"error_kind,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// WriteRecord appends rec and returns it as stored, with Seq assigned.
// Seq on the argument is ignored. Writing an ID that already exists is a
// no-op and returns the existing record.
func (s *Store) WriteRecord(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		return Record{}, fmt.Errorf("write record: id is required")
	}
	if _, err := convert.ParseDirection(string(rec.Direction)); err != nil {
		return Record{}, fmt.Errorf("write record: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO conversions
		(id, seq, direction, input, output, error_kind, error, created_at)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?, ?
		FROM conversions
	`,
		rec.ID,
		string(rec.Direction),
		rec.Input,
		rec.Output,
		rec.ErrorKind,
		rec.Error,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("write record: %w", err)
	}

	stored, found, err := s.ReadRecord(ctx, rec.ID)
	if err != nil {
		return Record{}, fmt.Errorf("write record: %w", err)
	}
	if !found {
		return Record{}, fmt.Errorf("write record: %s not found after insert", rec.ID)
	}
	return stored, nil
}

// Recorder turns conversion outcomes into records.
type Recorder struct {
	Store *Store
	IDs   IDGenerator
	Now   func() time.Time
}

// NewRecorder returns a Recorder using UUIDv7 IDs and the wall clock.
func NewRecorder(s *Store) *Recorder {
	return &Recorder{Store: s, IDs: UUIDv7Generator{}, Now: time.Now}
}

// Record stores out.
func (r *Recorder) Record(ctx context.Context, out convert.Outcome) (Record, error) {
	rec := Record{
		ID:        r.IDs.Generate(),
		Direction: out.Request.Direction,
		Input:     out.Request.Input,
		Output:    out.Output,
		CreatedAt: r.Now(),
	}
	if out.Err != nil {
		rec.Output = ""
		rec.Error = out.Err.Error()
		if kind := numeral.KindOf(out.Err); kind != 0 {
			rec.ErrorKind = kind.String()
		} else {
			rec.ErrorKind = KindInvalidInput
		}
	}
	return r.Store.WriteRecord(ctx, rec)
}

// RecordAll stores outs in order and stops at the first failure.
func (r *Recorder) RecordAll(ctx context.Context, outs []convert.Outcome) error {
	for i, out := range outs {
		if _, err := r.Record(ctx, out); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/romanus/internal/convert"
)

// Filter narrows ListRecords. Zero values mean no restriction.
type Filter struct {
	Direction convert.Direction
	// FailedOnly keeps only records with an error.
	FailedOnly bool
	Limit      int
}

const selectColumns = `id, seq, direction, input, output, error_kind, error, created_at`

// ReadRecord fetches a record by ID. found is false if it does not exist.
func (s *Store) ReadRecord(ctx context.Context, id string) (rec Record, found bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM conversions WHERE id = ?`, id)
	rec, err = scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("read record %s: %w", id, err)
	}
	return rec, true, nil
}

// ListRecords returns records matching f ordered by seq ASC, id ASC.
func (s *Store) ListRecords(ctx context.Context, f Filter) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if f.Direction != "" {
		where = append(where, "direction = ?")
		args = append(args, string(f.Direction))
	}
	if f.FailedOnly {
		where = append(where, "error_kind != ''")
	}

	query := `SELECT ` + selectColumns + ` FROM conversions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq ASC, id ASC COLLATE BINARY`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// CountRecords returns the number of stored records.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec       Record
		direction string
		createdAt string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Seq,
		&direction,
		&rec.Input,
		&rec.Output,
		&rec.ErrorKind,
		&rec.Error,
		&createdAt,
	); err != nil {
		return Record{}, err
	}
	rec.Direction = convert.Direction(direction)

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = t
	return rec, nil
}

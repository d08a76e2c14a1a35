package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/romanus/internal/convert"
)

func TestWriteRecord_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.WriteRecord(ctx, createTestRecord("a", "1", "I"))
	require.NoError(t, err)
	second, err := s.WriteRecord(ctx, createTestRecord("b", "2", "II"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)
	assert.Equal(t, "II", second.Output)
	assert.True(t, testTime.Equal(second.CreatedAt))
}

func TestWriteRecord_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.WriteRecord(ctx, createTestRecord("a", "1", "I"))
	require.NoError(t, err)

	again, err := s.WriteRecord(ctx, createTestRecord("a", "5", "V"))
	require.NoError(t, err)
	assert.Equal(t, first, again)

	n, err := s.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteRecord_Validation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRecord(ctx, createTestRecord("", "1", "I"))
	assert.ErrorContains(t, err, "id is required")

	rec := createTestRecord("x", "1", "I")
	rec.Direction = "sideways"
	_, err = s.WriteRecord(ctx, rec)
	assert.ErrorContains(t, err, "invalid direction")
}

func TestRecorder_Record(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	r := &Recorder{
		Store: s,
		IDs:   NewFixedGenerator("id-1", "id-2", "id-3"),
		Now:   func() time.Time { return testTime },
	}

	ok, err := r.Record(ctx, convert.Do(convert.Request{Direction: convert.ToRoman, Input: "48"}, convert.Options{}))
	require.NoError(t, err)
	assert.Equal(t, "id-1", ok.ID)
	assert.Equal(t, "XLVIII", ok.Output)
	assert.Empty(t, ok.ErrorKind)

	bad, err := r.Record(ctx, convert.Do(convert.Request{Direction: convert.ToInteger, Input: "vv"}, convert.Options{}))
	require.NoError(t, err)
	assert.Equal(t, "Unparsable", bad.ErrorKind)
	assert.Equal(t, "VV is not a valid Roman numeral", bad.Error)
	assert.Empty(t, bad.Output)

	junk, err := r.Record(ctx, convert.Do(convert.Request{Direction: convert.ToRoman, Input: "ten"}, convert.Options{}))
	require.NoError(t, err)
	assert.Equal(t, "InvalidInput", junk.ErrorKind)
}

func TestRecorder_RecordAll(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	r := &Recorder{Store: s, IDs: NewFixedGenerator("a", "b"), Now: func() time.Time { return testTime }}

	outs := []convert.Outcome{
		{Request: convert.Request{Direction: convert.ToRoman, Input: "1"}, Output: "I"},
		{Request: convert.Request{Direction: convert.ToInteger, Input: ""}, Err: errors.New("boom")},
	}
	require.NoError(t, r.RecordAll(ctx, outs))

	n, err := s.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewRecorder_UsesUUIDv7(t *testing.T) {
	s := createTestStore(t)
	r := NewRecorder(s)

	rec, err := r.Record(context.Background(), convert.Outcome{
		Request: convert.Request{Direction: convert.ToRoman, Input: "3"},
		Output:  "III",
	})
	require.NoError(t, err)
	assert.Len(t, rec.ID, 36)
}

package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/romanus/internal/convert"
	"github.com/roach88/romanus/internal/ctxlog"
	"github.com/roach88/romanus/internal/numeral"
	"github.com/roach88/romanus/internal/store"
)

// traceEpoch is the timestamp given to every recorded case.
var traceEpoch = time.Unix(0, 0).UTC()

// Harness executes one scenario against a private history store.
type Harness struct {
	store    *store.Store
	recorder *store.Recorder
	logger   *slog.Logger
	opts     convert.Options
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Expectation mismatches are reported in Result.Errors; the returned error
// is reserved for infrastructure failures and cancellation.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ids := make([]string, len(scenario.Cases))
	for i := range ids {
		ids[i] = fmt.Sprintf("case-%04d", i+1)
	}

	h := &Harness{
		store: st,
		recorder: &store.Recorder{
			Store: st,
			IDs:   store.NewFixedGenerator(ids...),
			Now:   func() time.Time { return traceEpoch },
		},
		logger: ctxlog.FromContext(ctx),
		opts:   convert.Options{Strict: scenario.Strict},
	}

	result := NewResult()
	if err := h.executeCases(ctx, scenario.Cases, result); err != nil {
		return nil, fmt.Errorf("failed to execute cases: %w", err)
	}

	records, err := st.ListRecords(ctx, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	for _, rec := range records {
		result.Trace = append(result.Trace, TraceEvent{
			Seq:       rec.Seq,
			Direction: string(rec.Direction),
			Input:     rec.Input,
			Output:    rec.Output,
			ErrorKind: rec.ErrorKind,
		})
	}

	h.logger.Debug("scenario finished", "scenario", scenario.Name, "pass", result.Pass, "cases", len(scenario.Cases))
	return result, nil
}

func (h *Harness) executeCases(ctx context.Context, cases []Case, result *Result) error {
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			return err
		}

		req := caseRequest(c)
		out := convert.Do(req, h.opts)
		if _, err := h.recorder.Record(ctx, out); err != nil {
			return fmt.Errorf("cases[%d]: %w", i, err)
		}

		if msg := checkCase(c, out); msg != "" {
			h.logger.Debug("case mismatch", "index", i, "input", req.Input, "detail", msg)
			result.AddError(fmt.Sprintf("cases[%d] %s %q: %s", i, req.Direction, req.Input, msg))
		}
	}
	return nil
}

func caseRequest(c Case) convert.Request {
	if c.Integer != nil {
		return convert.Request{Direction: convert.ToRoman, Input: string(*c.Integer)}
	}
	return convert.Request{Direction: convert.ToInteger, Input: string(*c.Roman)}
}

// checkCase returns a mismatch description, or "" if out matches c.
func checkCase(c Case, out convert.Outcome) string {
	got := errorKindName(out.Err)

	if c.Error != "" {
		if out.Err == nil {
			return fmt.Sprintf("expected error %s, got %q", c.Error, out.Output)
		}
		if got != c.Error {
			return fmt.Sprintf("expected error %s, got %s (%v)", c.Error, got, out.Err)
		}
		return ""
	}

	if out.Err != nil {
		return fmt.Sprintf("expected %q, got error %s (%v)", string(*c.Expect), got, out.Err)
	}
	want := strings.TrimSpace(string(*c.Expect))
	if out.Request.Direction == convert.ToRoman {
		want = strings.ToUpper(want)
	}
	if out.Output != want {
		return fmt.Sprintf("expected %q, got %q", want, out.Output)
	}
	return ""
}

func errorKindName(err error) string {
	if err == nil {
		return ""
	}
	if convert.IsInputError(err) {
		return KindInvalidInput
	}
	if kind := numeral.KindOf(err); kind != 0 {
		return kind.String()
	}
	return "Unknown"
}

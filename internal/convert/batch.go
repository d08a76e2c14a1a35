package convert

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/romanus/internal/ctxlog"
)

// Batch converts reqs using up to workers goroutines. Outcomes keep the order
// of reqs. Conversion failures are reported per Outcome; the returned error is
// only set when ctx is cancelled.
func Batch(ctx context.Context, reqs []Request, workers int, opts Options) ([]Outcome, error) {
	if workers < 1 {
		workers = 1
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("batch starting", "requests", len(reqs), "workers", workers)

	outcomes := make([]Outcome, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = Do(req, opts)
			if outcomes[i].Err != nil {
				logger.Debug("conversion failed", "index", i, "input", req.Input, "error", outcomes[i].Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("batch finished", "requests", len(reqs))
	return outcomes, nil
}

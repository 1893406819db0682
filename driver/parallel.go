package driver

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/instclass/classify"
	"github.com/sarchlab/instclass/ir"
)

// ClassifyParallel classifies functions on up to workers goroutines, one
// classification run per function, and then delivers the results to the
// sink in the order of fns. A non-positive workers value means one goroutine
// per function.
func ClassifyParallel(
	ctx context.Context,
	fns []*ir.Function,
	workers int,
	sink Sink,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runID := xid.New().String()
	Trace("ParallelRunStart", "Run", runID, "Functions", len(fns), "Workers", workers)

	results := make([]*classify.Result, len(fns))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = classify.NewClassifier().ClassifyFunction(fn)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if err := sink.Deliver(res); err != nil {
			return fmt.Errorf("failed to deliver result of function %s: %w",
				res.Function(), err)
		}
	}

	Trace("ParallelRunEnd", "Run", runID, "Classified", len(results))

	return nil
}

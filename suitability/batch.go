package suitability

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RecommendBatch scores queries on up to workers goroutines and returns the
// recommendations in input order. workers <= 0 uses GOMAXPROCS.
//
// The first failing query cancels the batch and its error is returned,
// annotated with the query index. Cancelling ctx stops scheduling further
// queries; queries already running finish.
func (e *Engine) RecommendBatch(ctx context.Context, queries [][]float64, workers int) ([]Recommendation, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]Recommendation, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rec, err := e.Recommend(q)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			out[i] = rec

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

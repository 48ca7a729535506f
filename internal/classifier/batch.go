package classifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"workorder-classifier-go/internal/logger"
	"workorder-classifier-go/internal/types"
)

// ErrEmptyBatch rejects a run with nothing to classify before any
// record is touched.
var ErrEmptyBatch = errors.New("no work orders to classify")

// Batch classifies records with a bounded worker pool. Results come
// back in input order. Per-record problems never abort the run; only
// NotReady/empty input do, and those are checked up front.
func (e *Engine) Batch(ctx context.Context, orders []types.WorkOrder) ([]types.ClassificationResult, error) {
	if !e.ready {
		return nil, ErrNotReady
	}
	if len(orders) == 0 {
		return nil, ErrEmptyBatch
	}

	log := logger.NewComponent("batch")

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(orders) {
		workers = len(orders)
	}

	// Minimum spacing between provider calls, shared by all workers, to
	// stay under the provider's rate limit.
	delay := time.Duration(e.cfg.ProviderDelayMs) * time.Millisecond
	var gate sync.Mutex
	var lastCall time.Time

	results := make([]types.ClassificationResult, len(orders))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if delay > 0 {
					gate.Lock()
					if wait := delay - time.Since(lastCall); wait > 0 {
						time.Sleep(wait)
					}
					lastCall = time.Now()
					gate.Unlock()
				}
				res, err := e.Classify(ctx, orders[i])
				if err != nil {
					// Only ErrNotReady reaches here and readiness was
					// checked above; degrade the record and move on.
					log.WithField("order_id", orders[i].OrderID).
						WithField("error", err.Error()).Warn("record degraded")
					res = types.ClassificationResult{
						OrderID:    orders[i].OrderID,
						Category:   types.CategoryNeedsReview,
						Confidence: 0,
						Method:     types.MethodNone,
						Rationale:  "classification unavailable",
					}
				}
				results[i] = res
			}
		}()
	}

feed:
	for i := range orders {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

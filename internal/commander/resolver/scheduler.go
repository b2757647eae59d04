package resolver

import (
	"context"
	"time"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
)

// BatchFunc resolves one batch of names.
type BatchFunc func(ctx context.Context, names []string) ([]cards.Card, error)

// BatchResult is the outcome of one scheduled batch.
type BatchResult struct {
	Index    int
	Names    []string
	Cards    []cards.Card
	Err      error
	Started  time.Time
	Finished time.Time
}

// Scheduler drains a queue of fixed-size batches one at a time, waiting
// Delay after every batch except the last. A batch never starts before the
// previous one has returned.
type Scheduler struct {
	BatchSize int
	Delay     time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewScheduler creates a scheduler. batchSize below 1 means one name per batch.
func NewScheduler(batchSize int, delay time.Duration) *Scheduler {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Scheduler{
		BatchSize: batchSize,
		Delay:     delay,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Split cuts names into consecutive batches of at most BatchSize.
func (s *Scheduler) Split(names []string) [][]string {
	var batches [][]string
	for i := 0; i < len(names); i += s.BatchSize {
		end := i + s.BatchSize
		if end > len(names) {
			end = len(names)
		}
		batches = append(batches, names[i:end])
	}
	return batches
}

// Run executes fn for every batch in order and returns one result per batch.
// A failing batch is recorded and the queue moves on. If ctx ends, the
// remaining batches are reported with ctx's error without being attempted.
func (s *Scheduler) Run(ctx context.Context, names []string, fn BatchFunc) []BatchResult {
	batches := s.Split(names)
	results := make([]BatchResult, len(batches))

	for i, batch := range batches {
		results[i] = BatchResult{Index: i, Names: batch}

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		results[i].Started = s.now()
		results[i].Cards, results[i].Err = fn(ctx, batch)
		results[i].Finished = s.now()

		if i < len(batches)-1 {
			// An interrupted wait surfaces through ctx.Err() on the next batch.
			_ = s.sleep(ctx, s.Delay)
		}
	}

	return results
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

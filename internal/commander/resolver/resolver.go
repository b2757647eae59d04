// Package resolver fills in card metadata from the card database for decks
// whose source did not include rules text.
package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
)

const (
	// DefaultBatchSize is the card database's per-request name limit.
	DefaultBatchSize = 75

	// DefaultBatchDelay is the pause between consecutive batch requests.
	DefaultBatchDelay = 100 * time.Millisecond
)

// Lookup resolves one batch of card names. Names the database does not know
// are simply absent from the result.
type Lookup interface {
	FetchBatch(ctx context.Context, names []string) ([]cards.Card, error)
}

// FailedBatch describes a batch that was skipped.
type FailedBatch struct {
	Index int
	Size  int
	Err   error
}

// Report summarizes one resolution run.
type Report struct {
	Requested     int // unique names asked for
	Resolved      int // unique names returned
	Batches       int
	FailedBatches []FailedBatch
	Duration      time.Duration
	Skipped       bool // every card already had rules text
}

// Degraded reports whether any batch failed.
func (r Report) Degraded() bool {
	return len(r.FailedBatches) > 0
}

// Resolver batches name lookups through a Scheduler.
type Resolver struct {
	lookup    Lookup
	scheduler *Scheduler
	logger    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBatching sets the batch size and the delay between batches.
func WithBatching(size int, delay time.Duration) Option {
	return func(r *Resolver) {
		r.scheduler = NewScheduler(size, delay)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver backed by lookup.
func New(lookup Lookup, opts ...Option) *Resolver {
	r := &Resolver{
		lookup:    lookup,
		scheduler: NewScheduler(DefaultBatchSize, DefaultBatchDelay),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NeedsResolution reports whether any card lacks rules text.
func NeedsResolution(groups ...[]cards.Card) bool {
	for _, group := range groups {
		for _, c := range group {
			if !c.HasOracleText() {
				return true
			}
		}
	}
	return false
}

// Resolve looks up the given names, deduplicated, and returns the cards found
// keyed by exact name. Failed batches are logged and listed in the report;
// they never fail the call.
func (r *Resolver) Resolve(ctx context.Context, names []string) (map[string]cards.Card, Report) {
	start := time.Now()
	unique := dedupe(names)
	report := Report{Requested: len(unique)}
	found := make(map[string]cards.Card, len(unique))

	results := r.scheduler.Run(ctx, unique, r.lookup.FetchBatch)
	report.Batches = len(results)

	for _, res := range results {
		if res.Err != nil {
			r.logger.Warn("Skipping card metadata batch",
				zap.Int("batch", res.Index),
				zap.Int("size", len(res.Names)),
				zap.Error(res.Err))
			report.FailedBatches = append(report.FailedBatches, FailedBatch{
				Index: res.Index,
				Size:  len(res.Names),
				Err:   res.Err,
			})
			continue
		}
		for _, c := range res.Cards {
			found[c.Name] = c
		}
		r.logger.Debug("Resolved card metadata batch",
			zap.Int("batch", res.Index),
			zap.Int("requested", len(res.Names)),
			zap.Int("returned", len(res.Cards)),
			zap.Duration("took", res.Finished.Sub(res.Started)))
	}

	report.Resolved = len(found)
	report.Duration = time.Since(start)
	return found, report
}

// Enrich resolves metadata for a deck when any commander or card is missing
// rules text, then merges the results back by exact name. Each card keeps
// its commander flag. Inputs are not modified.
func (r *Resolver) Enrich(ctx context.Context, commanders, main []cards.Card) ([]cards.Card, []cards.Card, Report) {
	if !NeedsResolution(commanders, main) {
		return commanders, main, Report{Skipped: true}
	}

	found, report := r.Resolve(ctx, cards.UniqueNames(commanders, main))
	return Merge(commanders, found), Merge(main, found), report
}

// Merge replaces each card with its resolved counterpart, matched by exact
// name, preserving the original commander flag. Unmatched cards are kept.
func Merge(in []cards.Card, resolved map[string]cards.Card) []cards.Card {
	out := make([]cards.Card, len(in))
	for i, c := range in {
		if rc, ok := resolved[c.Name]; ok {
			rc.IsCommander = c.IsCommander
			out[i] = rc
			continue
		}
		out[i] = c
	}
	return out
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

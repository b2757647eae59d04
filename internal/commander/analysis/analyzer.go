package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/decksource"
	"github.com/ramonehamilton/edh-power/internal/commander/resolver"
	"github.com/ramonehamilton/edh-power/internal/commander/scoring"
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
	"github.com/ramonehamilton/edh-power/internal/logging"
	"github.com/ramonehamilton/edh-power/internal/metrics"
)

// DeckFetcher turns a deck URL into a deck.
type DeckFetcher interface {
	Fetch(ctx context.Context, deckURL string) (*decksource.Deck, error)
}

// MetadataResolver fills in missing card metadata.
type MetadataResolver interface {
	Enrich(ctx context.Context, commanders, main []cards.Card) ([]cards.Card, []cards.Card, resolver.Report)
}

// Analyzer runs the full pipeline for one deck at a time. It holds no
// per-request state and is safe for concurrent use.
type Analyzer struct {
	fetcher     DeckFetcher
	resolver    MetadataResolver
	tax         *taxonomy.Taxonomy
	categorizer *cards.Categorizer
	engine      *scoring.Engine
	metrics     *metrics.AnalysisMetrics
	logger      *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTaxonomy replaces the embedded taxonomy.
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(a *Analyzer) {
		if tax != nil {
			a.tax = tax
		}
	}
}

// WithMetrics records pipeline timings into m.
func WithMetrics(m *metrics.AnalysisMetrics) Option {
	return func(a *Analyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logging.OrNop(logger)
	}
}

// New creates an Analyzer. A nil resolver disables metadata resolution.
func New(fetcher DeckFetcher, res MetadataResolver, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:  fetcher,
		resolver: res,
		tax:      taxonomy.Default(),
		metrics:  metrics.NewAnalysisMetrics(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.categorizer = cards.NewCategorizer(a.tax)
	a.engine = scoring.NewEngine(a.tax)
	return a
}

// Metrics returns the collector the analyzer records into.
func (a *Analyzer) Metrics() *metrics.AnalysisMetrics {
	return a.metrics
}

// Analyze fetches the deck behind deckURL and analyzes it. Input errors and
// deck host failures are terminal; metadata batch failures only degrade the
// result.
func (a *Analyzer) Analyze(ctx context.Context, deckURL string) (*DeckAnalysis, error) {
	if a.fetcher == nil {
		return nil, errors.New("no deck fetcher configured")
	}

	runID := uuid.NewString()
	log := a.logger.With(zap.String("run_id", runID))
	start := time.Now()

	log.Debug("Fetching deck", zap.String("url", deckURL))
	deck, err := a.fetcher.Fetch(ctx, deckURL)
	a.metrics.RecordFetch(time.Since(start))
	if err != nil {
		inputErr := IsInputError(err)
		a.metrics.RecordFailure(inputErr)
		log.Error("Deck analysis failed",
			zap.String("url", deckURL),
			zap.Bool("input_error", inputErr),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch deck: %w", err)
	}

	result := a.analyze(ctx, log, deck)
	result.RunID = runID
	a.metrics.RecordSuccess(time.Since(start), int(result.BracketLevel))
	return result, nil
}

// AnalyzeDeck analyzes a deck that is already in hand.
func (a *Analyzer) AnalyzeDeck(ctx context.Context, deck *decksource.Deck) (*DeckAnalysis, error) {
	if deck == nil {
		return nil, errors.New("deck is nil")
	}

	runID := uuid.NewString()
	start := time.Now()
	result := a.analyze(ctx, a.logger.With(zap.String("run_id", runID)), deck)
	result.RunID = runID
	a.metrics.RecordSuccess(time.Since(start), int(result.BracketLevel))
	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, log *zap.Logger, deck *decksource.Deck) *DeckAnalysis {
	commanders, main := deck.Commanders, deck.Cards
	log.Debug("Deck fetched",
		zap.String("site", string(deck.Site)),
		zap.String("deck_id", deck.ID),
		zap.Int("commanders", len(commanders)),
		zap.Int("cards", len(main)))

	meta := &MetadataSummary{Skipped: true}
	if a.resolver != nil {
		var report resolver.Report
		commanders, main, report = a.resolver.Enrich(ctx, commanders, main)
		meta = summarize(report)
		if !report.Skipped {
			a.metrics.RecordResolve(report.Duration, report.Batches, len(report.FailedBatches))
			log.Debug("Card metadata resolved",
				zap.Int("requested", report.Requested),
				zap.Int("resolved", report.Resolved),
				zap.Int("batches", report.Batches),
				zap.Int("failed_batches", len(report.FailedBatches)))
		}
	}

	categorized := a.categorizer.CategorizeAll(main)
	s := stats.Compute(commanders, categorized, a.tax)
	assessment := a.engine.Assess(commanders, categorized, s)

	result := Combine(commanders, s, assessment)
	result.Site = string(deck.Site)
	result.DeckID = deck.ID
	result.DeckName = deck.Name
	result.Metadata = meta

	log.Info("Deck analyzed",
		zap.String("deck_id", deck.ID),
		zap.Int("bracket", int(result.BracketLevel)),
		zap.Float64("salt_score", result.OriginalSaltScore),
		zap.Int("salt_bracket", int(result.SaltBracketLevel)))
	return &result
}

func summarize(r resolver.Report) *MetadataSummary {
	m := &MetadataSummary{
		Skipped:   r.Skipped,
		Requested: r.Requested,
		Resolved:  r.Resolved,
		Batches:   r.Batches,
	}
	for _, fb := range r.FailedBatches {
		m.FailedBatches = append(m.FailedBatches, fb.Index)
	}
	return m
}

// IsInputError reports whether err was caused by the deck URL.
func IsInputError(err error) bool {
	return decksource.IsInputError(err)
}

// IsUpstreamError reports whether err came from a deck host.
func IsUpstreamError(err error) bool {
	var fe *decksource.FetchError
	return errors.As(err, &fe)
}

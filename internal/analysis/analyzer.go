// Package analysis composes statement fetching, fundamental metrics, and
// valuation into a single company report.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/oracle-cli/internal/fundamentals"
	"github.com/sells-group/oracle-cli/internal/model"
	"github.com/sells-group/oracle-cli/internal/valuation"
)

// Fetcher retrieves statement sets and symbol matches from a data provider.
// *quote.Client satisfies it.
type Fetcher interface {
	FetchStatements(ctx context.Context, ticker string) (*model.StatementSet, error)
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// Analyzer runs the full pipeline for one ticker at a time. Safe for
// concurrent use when the Fetcher is.
type Analyzer struct {
	fetcher Fetcher
}

func New(fetcher Fetcher) *Analyzer {
	return &Analyzer{fetcher: fetcher}
}

// Analyze fetches statements for the ticker and builds the full report.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*model.Report, error) {
	start := time.Now()

	set, err := a.fetcher.FetchStatements(ctx, ticker)
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: fetch %s", ticker)
	}

	report, err := a.Build(set)
	if err != nil {
		return nil, err
	}

	zap.L().Info("analysis complete",
		zap.String("ticker", report.Ticker),
		zap.Int("score", report.ScoreCard.Score),
		zap.String("verdict", report.ScoreCard.Verdict),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// Build derives metrics, valuations, and the scorecard from an
// already-fetched statement set.
func (a *Analyzer) Build(set *model.StatementSet) (*model.Report, error) {
	metrics, err := fundamentals.ComputeMetrics(set)
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: metrics %s", set.Ticker)
	}

	val, err := valuation.Value(set, metrics)
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: valuation %s", set.Ticker)
	}

	return &model.Report{
		ID:          uuid.NewString(),
		Ticker:      set.Ticker,
		GeneratedAt: time.Now().UTC(),
		Quote:       set.Quote,
		Metrics:     *metrics,
		Valuation:   val,
		ScoreCard:   valuation.Scorecard(metrics),
	}, nil
}

// Search passes a company-name query through to the provider.
func (a *Analyzer) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	results, err := a.fetcher.Search(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: search")
	}
	return results, nil
}

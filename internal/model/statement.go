// Package model defines the plain data structures exchanged between the
// analysis pipeline stages and their collaborators. Types here carry no
// behavior beyond small accessors so they can cross the engine boundary
// as-is (CLI rendering, HTTP JSON, xlsx export).
package model

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
)

// ErrDataUnavailable signals that a ticker's statement data is too sparse to
// analyze (empty income statement or balance sheet). It is the only engine
// error that crosses the analysis boundary; everything else degrades into
// per-metric absent states.
var ErrDataUnavailable = eris.New("insufficient financial data available")

// PeriodValue is a single line-item observation for one fiscal period.
type PeriodValue struct {
	Period time.Time `json:"period"`
	Value  float64   `json:"value"`
}

// LineSeries holds the observations for one line item, most recent first.
type LineSeries []PeriodValue

// Latest returns the most recent observation.
func (s LineSeries) Latest() (PeriodValue, bool) {
	if len(s) == 0 {
		return PeriodValue{}, false
	}
	return s[0], true
}

// Oldest returns the earliest observation.
func (s LineSeries) Oldest() (PeriodValue, bool) {
	if len(s) == 0 {
		return PeriodValue{}, false
	}
	return s[len(s)-1], true
}

// Ascending returns a copy of the series ordered oldest-first, the shape the
// presentation layer charts expect.
func (s LineSeries) Ascending() LineSeries {
	out := make(LineSeries, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// StatementTable maps provider line-item names to their period series.
// Row names are provider-schema dependent; use the statement package's
// alias-aware accessors rather than indexing directly.
type StatementTable map[string]LineSeries

// Empty reports whether the table carries no rows.
func (t StatementTable) Empty() bool { return len(t) == 0 }

// QuoteInfo is the scalar market snapshot attached to a statement set.
// Pointer fields are absent when the provider did not report them.
type QuoteInfo struct {
	Symbol            string   `json:"symbol"`
	LongName          string   `json:"long_name,omitempty"`
	Sector            string   `json:"sector,omitempty"`
	Industry          string   `json:"industry,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	RecommendationKey string   `json:"recommendation_key,omitempty"`
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`
	TrailingEPS       *float64 `json:"trailing_eps,omitempty"`
	BookValuePerShare *float64 `json:"book_value_per_share,omitempty"`
	TrailingPE        *float64 `json:"trailing_pe,omitempty"`
	PriceToBook       *float64 `json:"price_to_book,omitempty"`
	TargetMeanPrice   *float64 `json:"target_mean_price,omitempty"`
	RevenueGrowth     *float64 `json:"revenue_growth,omitempty"` // fractional, e.g. 0.12
	ReturnOnEquity    *float64 `json:"return_on_equity,omitempty"`
	DebtToEquity      *float64 `json:"debt_to_equity,omitempty"`
	GrossMargins      *float64 `json:"gross_margins,omitempty"`
	FreeCashflow      *float64 `json:"free_cashflow,omitempty"`
}

// StatementSet is an immutable snapshot of one ticker's financial statements
// and quote metadata, typically covering the four most recent fiscal years.
type StatementSet struct {
	Ticker    string         `json:"ticker"`
	Income    StatementTable `json:"income_statement"`
	Balance   StatementTable `json:"balance_sheet"`
	CashFlow  StatementTable `json:"cash_flow_statement"`
	Quote     QuoteInfo      `json:"quote"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// Validate checks the minimum data-availability invariant. A set without an
// income statement or balance sheet cannot be analyzed at all.
func (s *StatementSet) Validate() error {
	if s == nil || s.Income.Empty() || s.Balance.Empty() {
		return eris.Wrap(ErrDataUnavailable, "statement set")
	}
	return nil
}

// SearchResult is one match from the company name lookup.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}

// Float returns a pointer to v, for populating optional report fields.
func Float(v float64) *float64 { return &v }

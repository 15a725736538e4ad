package model

import "time"

// MetricsReport holds the derived fundamental metrics for one ticker.
// A nil pointer means the metric could not be derived from the available
// line items; the value zero is never used as an unavailability sentinel.
type MetricsReport struct {
	// Moat: gross margin, percent.
	GrossMarginCurrent *float64   `json:"gross_margin_current,omitempty"`
	GrossMarginAverage *float64   `json:"gross_margin_average,omitempty"`
	GrossMarginStdDev  *float64   `json:"gross_margin_stddev,omitempty"`
	MarginSeries       LineSeries `json:"margin_series,omitempty"` // ascending time

	// Management: return on equity, percent. Periods with non-positive
	// equity are excluded.
	ROECurrent *float64   `json:"roe_current,omitempty"`
	ROEAverage *float64   `json:"roe_average,omitempty"`
	ROESeries  LineSeries `json:"roe_series,omitempty"` // ascending time

	// Debt: years of latest net income needed to clear long-term debt,
	// capped at the payback sentinel when earnings are non-positive.
	DebtYears *float64 `json:"debt_years,omitempty"`

	// Cash: free cash flow for the most recent period.
	FreeCashFlow         *float64   `json:"free_cash_flow,omitempty"`
	FreeCashFlowPositive bool       `json:"free_cash_flow_positive"`
	FCFSeries            LineSeries `json:"fcf_series,omitempty"` // ascending time

	// Balance sheet snapshot for the cash-vs-debt check.
	CashOnHand      *float64 `json:"cash_on_hand,omitempty"`
	TotalDebt       *float64 `json:"total_debt,omitempty"`
	NetCashPositive bool     `json:"net_cash_positive"`

	// Equity trend: latest stockholders' equity strictly above the oldest
	// available period. Requires at least two periods.
	BookValueGrowing bool `json:"book_value_growing"`

	// History for presentation charts, ascending time.
	RevenueSeries   LineSeries `json:"revenue_series,omitempty"`
	NetIncomeSeries LineSeries `json:"net_income_series,omitempty"`
}

// Valuation holds the fair-value estimates. Each estimate is present only
// when its model preconditions hold; the note carries the reason otherwise.
type Valuation struct {
	Graham     *float64 `json:"graham,omitempty"`
	GrahamNote string   `json:"graham_note,omitempty"`

	DCF           *float64 `json:"dcf,omitempty"`
	DCFGrowthRate *float64 `json:"dcf_growth_rate,omitempty"` // assumption actually used
	DCFNote       string   `json:"dcf_note,omitempty"`

	AnalystTarget *float64 `json:"analyst_target,omitempty"`
}

// ScoreCard is the four-pillar quality verdict. Score is a fixed weighted
// sum, always a multiple of ten in [0,100]. Constructed once per analysis.
type ScoreCard struct {
	MoatPass       bool   `json:"moat_pass"`
	ManagementPass bool   `json:"management_pass"`
	DebtPass       bool   `json:"debt_pass"`
	CashPass       bool   `json:"cash_pass"`
	Score          int    `json:"score"`
	Verdict        string `json:"verdict"`
}

// Report is the full analysis output for one ticker.
type Report struct {
	ID          string        `json:"id"`
	Ticker      string        `json:"ticker"`
	GeneratedAt time.Time     `json:"generated_at"`
	Quote       QuoteInfo     `json:"quote"`
	Metrics     MetricsReport `json:"metrics"`
	Valuation   Valuation     `json:"valuation"`
	ScoreCard   ScoreCard     `json:"scorecard"`
}

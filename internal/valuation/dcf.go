package valuation

import (
	"math"

	"github.com/sells-group/oracle-cli/internal/model"
)

// DCF runs the two-stage discounted-cash-flow projection over the metrics'
// base free cash flow. The returned growth rate is the assumption actually
// used after capping; it is reported even when the per-share value cannot be
// derived, as long as the model itself was eligible. An inapplicable model
// returns a nil fair value with a reason.
//
// Projection: base FCF grown annually for ProjectionYears, each year
// discounted at DiscountRate; a Gordon-growth terminal value on the final
// year, discounted back over the full horizon; the sum divided by shares
// outstanding.
func DCF(m *model.MetricsReport, q model.QuoteInfo) (fair, growthUsed *float64, note string) {
	if m == nil || m.FreeCashFlow == nil {
		return nil, nil, "free cash flow unavailable"
	}
	base := *m.FreeCashFlow
	if base <= 0 {
		return nil, nil, "negative free cash flow"
	}

	growth := DefaultGrowthRate
	if q.RevenueGrowth != nil {
		growth = *q.RevenueGrowth
		if growth > GrowthRateCap {
			growth = GrowthRateCap
		}
		// Declining revenue passes through unmodified: only the base FCF
		// sign gates eligibility, not the growth assumption.
	}
	growthUsed = model.Float(growth)

	if q.SharesOutstanding == nil || *q.SharesOutstanding <= 0 {
		return nil, growthUsed, "shares outstanding unavailable"
	}

	fcf := base
	var presentValue float64
	for year := 1; year <= ProjectionYears; year++ {
		fcf *= 1 + growth
		presentValue += fcf / math.Pow(1+DiscountRate, float64(year))
	}

	terminal := fcf * (1 + TerminalGrowthRate) / (DiscountRate - TerminalGrowthRate)
	presentValue += terminal / math.Pow(1+DiscountRate, ProjectionYears)

	return model.Float(presentValue / *q.SharesOutstanding), growthUsed, ""
}

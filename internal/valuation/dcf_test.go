package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/oracle-cli/internal/model"
)

func metricsWithFCF(fcf float64) *model.MetricsReport {
	return &model.MetricsReport{FreeCashFlow: model.Float(fcf), FreeCashFlowPositive: fcf > 0}
}

func TestDCFZeroGrowthClosedForm(t *testing.T) {
	m := metricsWithFCF(100)
	q := model.QuoteInfo{
		RevenueGrowth:     model.Float(0),
		SharesOutstanding: model.Float(10),
	}

	fair, growth, note := DCF(m, q)
	require.NotNil(t, fair)
	require.NotNil(t, growth)
	assert.Empty(t, note)
	assert.InDelta(t, 0, *growth, 0.0001)

	// With zero growth every projected year is the base FCF, so the explicit
	// stage is a plain annuity and the terminal value capitalizes the final
	// year directly.
	annuity := 100 * (1 - math.Pow(1+DiscountRate, -ProjectionYears)) / DiscountRate
	terminal := 100 * (1 + TerminalGrowthRate) / (DiscountRate - TerminalGrowthRate) /
		math.Pow(1+DiscountRate, ProjectionYears)
	want := (annuity + terminal) / 10

	assert.InDelta(t, want, *fair, 0.0001)
}

func TestDCFGrowthCap(t *testing.T) {
	m := metricsWithFCF(100)
	q := model.QuoteInfo{
		RevenueGrowth:     model.Float(0.40),
		SharesOutstanding: model.Float(10),
	}

	fair, growth, _ := DCF(m, q)
	require.NotNil(t, fair)
	require.NotNil(t, growth)
	assert.InDelta(t, GrowthRateCap, *growth, 0.0001)
}

func TestDCFNegativeGrowthPassesThrough(t *testing.T) {
	m := metricsWithFCF(100)
	q := model.QuoteInfo{
		RevenueGrowth:     model.Float(-0.10),
		SharesOutstanding: model.Float(10),
	}

	fair, growth, note := DCF(m, q)
	require.NotNil(t, fair, "a declining growth assumption must not gate the model: %s", note)
	require.NotNil(t, growth)
	assert.InDelta(t, -0.10, *growth, 0.0001)
	assert.Greater(t, *fair, 0.0)
}

func TestDCFDefaultGrowth(t *testing.T) {
	m := metricsWithFCF(100)
	q := model.QuoteInfo{SharesOutstanding: model.Float(10)}

	fair, growth, _ := DCF(m, q)
	require.NotNil(t, fair)
	require.NotNil(t, growth)
	assert.InDelta(t, DefaultGrowthRate, *growth, 0.0001)
}

func TestDCFNegativeBaseFCF(t *testing.T) {
	fair, growth, note := DCF(metricsWithFCF(-50), model.QuoteInfo{SharesOutstanding: model.Float(10)})
	assert.Nil(t, fair)
	assert.Nil(t, growth)
	assert.Equal(t, "negative free cash flow", note)
}

func TestDCFMissingBaseFCF(t *testing.T) {
	fair, _, note := DCF(&model.MetricsReport{}, model.QuoteInfo{SharesOutstanding: model.Float(10)})
	assert.Nil(t, fair)
	assert.Equal(t, "free cash flow unavailable", note)

	fair, _, note = DCF(nil, model.QuoteInfo{})
	assert.Nil(t, fair)
	assert.Equal(t, "free cash flow unavailable", note)
}

func TestDCFMissingShares(t *testing.T) {
	fair, growth, note := DCF(metricsWithFCF(100), model.QuoteInfo{})
	assert.Nil(t, fair)
	require.NotNil(t, growth, "growth assumption is still reported for an eligible model")
	assert.Equal(t, "shares outstanding unavailable", note)

	fair, _, note = DCF(metricsWithFCF(100), model.QuoteInfo{SharesOutstanding: model.Float(0)})
	assert.Nil(t, fair)
	assert.Equal(t, "shares outstanding unavailable", note)
}

// The fixed policy constants must keep the Gordon-growth denominator positive.
func TestPolicyConstantsConverge(t *testing.T) {
	assert.Greater(t, DiscountRate, TerminalGrowthRate)
}

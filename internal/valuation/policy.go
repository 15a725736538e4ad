// Package valuation produces intrinsic-value estimates and the four-pillar
// quality scorecard from a statement snapshot and its derived metrics.
package valuation

// Valuation model policy constants. These are fixed business policy, named
// for auditability; they are deliberately not runtime configuration.
const (
	// DiscountRate is the annual rate future cash flows are discounted at.
	// It must stay above TerminalGrowthRate or the terminal value diverges.
	DiscountRate = 0.10

	// TerminalGrowthRate is the perpetual growth assumed past the explicit
	// projection horizon.
	TerminalGrowthRate = 0.03

	// GrowthRateCap bounds the provider-reported revenue growth used in the
	// projection. Growth above this is not extrapolated ten years forward.
	GrowthRateCap = 0.15

	// DefaultGrowthRate applies when the provider reports no revenue growth.
	DefaultGrowthRate = 0.05

	// ProjectionYears is the explicit DCF projection horizon.
	ProjectionYears = 10

	// GrahamMultiplier is the 22.5 constant from Graham's fair-value
	// heuristic (a P/E of 15 times a price-to-book of 1.5).
	GrahamMultiplier = 22.5
)

// Scorecard policy: pillar thresholds, weights, and verdict bands.
const (
	MoatMarginThreshold = 40.0 // average gross margin, percent
	ROEThreshold        = 15.0 // average return on equity, percent
	DebtYearsThreshold  = 5.0  // years of earnings to clear long-term debt

	WeightMoat       = 30
	WeightManagement = 30
	WeightDebt       = 20
	WeightCash       = 20

	HighQualityScore = 80
	MixedScore       = 50
)

// Verdict bands for the aggregate score.
const (
	VerdictHighQuality = "high quality"
	VerdictMixed       = "mixed"
	VerdictFails       = "fails criteria"
)

package valuation

import "github.com/sells-group/oracle-cli/internal/model"

// Scorecard aggregates the metrics into the four-pillar quality score.
// A metric that could not be derived fails its pillar; the score is always
// a multiple of ten in [0,100].
func Scorecard(m *model.MetricsReport) model.ScoreCard {
	var sc model.ScoreCard
	if m != nil {
		sc.MoatPass = m.GrossMarginAverage != nil && *m.GrossMarginAverage > MoatMarginThreshold
		sc.ManagementPass = m.ROEAverage != nil && *m.ROEAverage > ROEThreshold
		sc.DebtPass = m.DebtYears != nil && *m.DebtYears < DebtYearsThreshold
		sc.CashPass = m.FreeCashFlowPositive
	}

	if sc.MoatPass {
		sc.Score += WeightMoat
	}
	if sc.ManagementPass {
		sc.Score += WeightManagement
	}
	if sc.DebtPass {
		sc.Score += WeightDebt
	}
	if sc.CashPass {
		sc.Score += WeightCash
	}
	sc.Verdict = verdict(sc.Score)
	return sc
}

func verdict(score int) string {
	switch {
	case score >= HighQualityScore:
		return VerdictHighQuality
	case score >= MixedScore:
		return VerdictMixed
	default:
		return VerdictFails
	}
}

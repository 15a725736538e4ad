package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/oracle-cli/internal/model"
)

func TestScorecardWeights(t *testing.T) {
	m := &model.MetricsReport{
		GrossMarginAverage:   model.Float(55), // moat pass
		ROEAverage:           model.Float(22), // management pass
		DebtYears:            model.Float(8),  // debt fail
		FreeCashFlowPositive: true,            // cash pass
	}

	sc := Scorecard(m)
	assert.True(t, sc.MoatPass)
	assert.True(t, sc.ManagementPass)
	assert.False(t, sc.DebtPass)
	assert.True(t, sc.CashPass)
	assert.Equal(t, 80, sc.Score) // 30 + 30 + 0 + 20
	assert.Equal(t, VerdictHighQuality, sc.Verdict)
}

func TestScorecardAbsentMetricsFailPillars(t *testing.T) {
	sc := Scorecard(&model.MetricsReport{})
	assert.False(t, sc.MoatPass)
	assert.False(t, sc.ManagementPass)
	assert.False(t, sc.DebtPass)
	assert.False(t, sc.CashPass)
	assert.Equal(t, 0, sc.Score)
	assert.Equal(t, VerdictFails, sc.Verdict)

	sc = Scorecard(nil)
	assert.Equal(t, 0, sc.Score)
}

func TestScorecardThresholdsAreStrict(t *testing.T) {
	// Exactly at threshold does not pass.
	m := &model.MetricsReport{
		GrossMarginAverage: model.Float(MoatMarginThreshold),
		ROEAverage:         model.Float(ROEThreshold),
		DebtYears:          model.Float(DebtYearsThreshold),
	}
	sc := Scorecard(m)
	assert.False(t, sc.MoatPass)
	assert.False(t, sc.ManagementPass)
	assert.False(t, sc.DebtPass)
}

func TestVerdictBands(t *testing.T) {
	cases := map[int]string{
		100: VerdictHighQuality,
		80:  VerdictHighQuality,
		70:  VerdictMixed,
		50:  VerdictMixed,
		40:  VerdictFails,
		0:   VerdictFails,
	}
	for score, want := range cases {
		assert.Equal(t, want, verdict(score), "score %d", score)
	}
}

func TestScorecardDebtSentinelFails(t *testing.T) {
	m := &model.MetricsReport{DebtYears: model.Float(99)}
	assert.False(t, Scorecard(m).DebtPass)
}

package valuation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/oracle-cli/internal/model"
)

func snapshot() *model.StatementSet {
	period := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	return &model.StatementSet{
		Ticker:  "ACME",
		Income:  model.StatementTable{"Total Revenue": {{Period: period, Value: 1000}}},
		Balance: model.StatementTable{"Stockholders Equity": {{Period: period, Value: 600}}},
		Quote: model.QuoteInfo{
			TrailingEPS:       model.Float(5),
			BookValuePerShare: model.Float(20),
			SharesOutstanding: model.Float(10),
			TargetMeanPrice:   model.Float(130),
		},
	}
}

func TestValue(t *testing.T) {
	v, err := Value(snapshot(), metricsWithFCF(100))
	require.NoError(t, err)

	require.NotNil(t, v.Graham)
	assert.InDelta(t, 47.4342, *v.Graham, 0.001)
	require.NotNil(t, v.DCF)
	require.NotNil(t, v.DCFGrowthRate)
	require.NotNil(t, v.AnalystTarget)
	assert.InDelta(t, 130, *v.AnalystTarget, 0.001)
}

func TestValueShortCircuitsOnMissingStatements(t *testing.T) {
	set := snapshot()
	set.Income = model.StatementTable{}

	_, err := Value(set, metricsWithFCF(100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDataUnavailable))
}

func TestValueAbsentEstimatesAreNotErrors(t *testing.T) {
	set := snapshot()
	set.Quote = model.QuoteInfo{} // nothing reported

	v, err := Value(set, &model.MetricsReport{})
	require.NoError(t, err)
	assert.Nil(t, v.Graham)
	assert.NotEmpty(t, v.GrahamNote)
	assert.Nil(t, v.DCF)
	assert.NotEmpty(t, v.DCFNote)
	assert.Nil(t, v.AnalystTarget)
}

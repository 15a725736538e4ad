package valuation

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/oracle-cli/internal/model"
)

// Value assembles the multi-model valuation for one snapshot: the Graham
// asset/earnings estimate, the two-stage DCF, and the analyst consensus
// target passed through from the quote. Absent estimates are an expected
// state, not an error; the only error returned is model.ErrDataUnavailable
// for a snapshot that fails the data-availability invariant.
func Value(set *model.StatementSet, m *model.MetricsReport) (model.Valuation, error) {
	if err := set.Validate(); err != nil {
		return model.Valuation{}, eris.Wrap(err, "valuation")
	}

	var v model.Valuation
	v.Graham, v.GrahamNote = Graham(set.Quote)
	v.DCF, v.DCFGrowthRate, v.DCFNote = DCF(m, set.Quote)
	v.AnalystTarget = set.Quote.TargetMeanPrice
	return v, nil
}

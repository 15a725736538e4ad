package valuation

import (
	"math"

	"github.com/sells-group/oracle-cli/internal/model"
)

// Graham returns the Graham number sqrt(22.5 * EPS * BVPS), or nil with a
// reason when a precondition fails. Both operands must be present and
// strictly positive: a negative product under the square root has no meaning
// in this model, so it is never computed.
func Graham(q model.QuoteInfo) (*float64, string) {
	if q.TrailingEPS == nil || q.BookValuePerShare == nil {
		return nil, "trailing EPS or book value per share not reported"
	}
	if *q.TrailingEPS <= 0 {
		return nil, "non-positive trailing EPS"
	}
	if *q.BookValuePerShare <= 0 {
		return nil, "non-positive book value per share"
	}
	return model.Float(math.Sqrt(GrahamMultiplier * *q.TrailingEPS * *q.BookValuePerShare)), ""
}

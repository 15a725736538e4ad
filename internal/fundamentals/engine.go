// Package fundamentals derives margin, profitability, leverage, and cash
// metrics from a statement snapshot. Each metric is computed independently:
// a line item missing for one metric never aborts the others, and a metric
// that cannot be derived is reported absent, not zero.
package fundamentals

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/oracle-cli/internal/model"
	"github.com/sells-group/oracle-cli/internal/statement"
)

// DebtYearsSentinel caps the debt payback figure when net income is
// non-positive: payback time is undefined for a loss-making company.
const DebtYearsSentinel = 99.0

// ComputeMetrics derives the full MetricsReport from one snapshot. It is a
// pure function of its input and safe for concurrent callers. The only error
// it returns is model.ErrDataUnavailable, for a snapshot with an empty
// income statement or balance sheet.
func ComputeMetrics(set *model.StatementSet) (*model.MetricsReport, error) {
	if err := set.Validate(); err != nil {
		return nil, eris.Wrap(err, "fundamentals")
	}

	r := &model.MetricsReport{}
	computeGrossMargin(set, r)
	computeROE(set, r)
	computeDebtCoverage(set, r)
	computeFreeCashFlow(set, r)
	computeBalanceSheet(set, r)
	computeHistory(set, r)
	return r, nil
}

// computeGrossMargin derives (GrossProfit / TotalRevenue) * 100 per period.
// Periods missing either line item or with non-positive revenue are excluded
// from the series and the average rather than counted as zero.
func computeGrossMargin(set *model.StatementSet, r *model.MetricsReport) {
	profit, okP := statement.Resolve(set.Income, statement.GrossProfit)
	revenue, okR := statement.Resolve(set.Income, statement.TotalRevenue)
	if !okP || !okR {
		return
	}

	margins := ratioSeries(profit, revenue, func(num, den float64) (float64, bool) {
		if den <= 0 {
			return 0, false
		}
		return num / den * 100, true
	})
	if len(margins) == 0 {
		return
	}

	r.GrossMarginCurrent = model.Float(margins[0].Value)
	r.GrossMarginAverage = model.Float(mean(margins))
	if len(margins) > 1 {
		r.GrossMarginStdDev = model.Float(stddev(margins))
	}
	r.MarginSeries = margins.Ascending()
}

// computeROE derives (NetIncome / StockholdersEquity) * 100 per period.
// Periods with non-positive equity are excluded: the ratio is meaningless or
// sign-inverted there. If every period is excluded, ROE stays absent.
func computeROE(set *model.StatementSet, r *model.MetricsReport) {
	income, okI := statement.Resolve(set.Income, statement.NetIncome)
	equity, okE := statement.Resolve(set.Balance, statement.StockholdersEquity)
	if !okI || !okE {
		return
	}

	roe := ratioSeries(income, equity, func(num, den float64) (float64, bool) {
		if den <= 0 {
			return 0, false
		}
		return num / den * 100, true
	})
	if len(roe) == 0 {
		return
	}

	r.ROECurrent = model.Float(roe[0].Value)
	r.ROEAverage = model.Float(mean(roe))
	r.ROESeries = roe.Ascending()
}

// computeDebtCoverage derives the years-to-clear figure: long-term debt over
// the latest net income. Non-positive earnings make payback undefined, so
// the figure is pinned at the sentinel. A balance sheet without a long-term
// debt row leaves the metric absent.
func computeDebtCoverage(set *model.StatementSet, r *model.MetricsReport) {
	debt, ok := statement.Latest(set.Balance, statement.LongTermDebt)
	if !ok {
		return
	}
	income, ok := statement.Latest(set.Income, statement.NetIncome)
	if !ok || income <= 0 {
		r.DebtYears = model.Float(DebtYearsSentinel)
		return
	}
	r.DebtYears = model.Float(debt / income)
}

// computeFreeCashFlow derives OperatingCashFlow + CapitalExpenditure for the
// most recent period. Capital expenditure is reported negative by the data
// providers, so addition yields the owner's leftover cash. When either
// aliased row is missing, the provider's own "Free Cash Flow" row is the
// last resort before reporting the metric absent.
func computeFreeCashFlow(set *model.StatementSet, r *model.MetricsReport) {
	ocf, okO := statement.Resolve(set.CashFlow, statement.OperatingCashFlow)
	capex, okC := statement.Resolve(set.CashFlow, statement.CapitalExpenditure)

	if okO && okC {
		fcf := ratioSeries(ocf, capex, func(a, b float64) (float64, bool) {
			return a + b, true
		})
		if len(fcf) > 0 {
			r.FreeCashFlow = model.Float(fcf[0].Value)
			r.FreeCashFlowPositive = fcf[0].Value > 0
			r.FCFSeries = fcf.Ascending()
			return
		}
	}

	if reported, ok := statement.Latest(set.CashFlow, statement.FreeCashFlow); ok {
		r.FreeCashFlow = model.Float(reported)
		r.FreeCashFlowPositive = reported > 0
	}
}

// computeBalanceSheet fills the cash-vs-debt snapshot and the book value
// trend. NetCashPositive requires both figures; BookValueGrowing requires at
// least two equity periods.
func computeBalanceSheet(set *model.StatementSet, r *model.MetricsReport) {
	if cash, ok := statement.Latest(set.Balance, statement.CashAndEquivalents); ok {
		r.CashOnHand = model.Float(cash)
	}
	if debt, ok := statement.Latest(set.Balance, statement.TotalDebt); ok {
		r.TotalDebt = model.Float(debt)
	} else if debt, ok := statement.Latest(set.Balance, statement.LongTermDebt); ok {
		r.TotalDebt = model.Float(debt)
	}
	if r.CashOnHand != nil && r.TotalDebt != nil {
		r.NetCashPositive = *r.CashOnHand > *r.TotalDebt
	}

	equity, ok := statement.Resolve(set.Balance, statement.StockholdersEquity)
	if !ok || len(equity) < 2 {
		return
	}
	latest, _ := equity.Latest()
	oldest, _ := equity.Oldest()
	r.BookValueGrowing = latest.Value > oldest.Value
}

// computeHistory exposes the raw revenue and net income series for the
// presentation layer's financials charts.
func computeHistory(set *model.StatementSet, r *model.MetricsReport) {
	if revenue, ok := statement.Resolve(set.Income, statement.TotalRevenue); ok {
		r.RevenueSeries = revenue.Ascending()
	}
	if income, ok := statement.Resolve(set.Income, statement.NetIncome); ok {
		r.NetIncomeSeries = income.Ascending()
	}
}

// ratioSeries joins two line series on equal fiscal periods and applies
// combine to each aligned pair. Pairs rejected by combine are dropped.
// Output keeps the input ordering (most recent first).
func ratioSeries(num, den model.LineSeries, combine func(a, b float64) (float64, bool)) model.LineSeries {
	byPeriod := make(map[int64]float64, len(den))
	for _, pv := range den {
		byPeriod[pv.Period.Unix()] = pv.Value
	}

	var out model.LineSeries
	for _, pv := range num {
		d, ok := byPeriod[pv.Period.Unix()]
		if !ok {
			continue
		}
		if v, keep := combine(pv.Value, d); keep {
			out = append(out, model.PeriodValue{Period: pv.Period, Value: v})
		}
	}
	return out
}

func mean(s model.LineSeries) float64 {
	var sum float64
	for _, pv := range s {
		sum += pv.Value
	}
	return sum / float64(len(s))
}

func stddev(s model.LineSeries) float64 {
	m := mean(s)
	var sq float64
	for _, pv := range s {
		sq += (pv.Value - m) * (pv.Value - m)
	}
	return math.Sqrt(sq / float64(len(s)))
}

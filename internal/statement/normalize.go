// Package statement provides fallback-aware accessors over raw provider
// statement tables. Providers rename line items across schema versions
// ("Total Cash From Operating Activities" vs "Operating Cash Flow"), so every
// logical field resolves through an ordered alias chain instead of a direct
// row lookup. No failure mode escapes an accessor; everything degrades to
// the not-found return.
package statement

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sells-group/oracle-cli/internal/model"
)

// Field identifies a logical line item independent of provider naming.
type Field string

const (
	TotalRevenue       Field = "total_revenue"
	GrossProfit        Field = "gross_profit"
	NetIncome          Field = "net_income"
	StockholdersEquity Field = "stockholders_equity"
	LongTermDebt       Field = "long_term_debt"
	TotalDebt          Field = "total_debt"
	CashAndEquivalents Field = "cash"
	OperatingCashFlow  Field = "operating_cash_flow"
	CapitalExpenditure Field = "capital_expenditure"
	FreeCashFlow       Field = "free_cash_flow"
)

//go:embed aliases.yaml
var aliasYAML []byte

var aliasTable = mustLoadAliases(aliasYAML)

func mustLoadAliases(raw []byte) map[Field][]string {
	table := make(map[Field][]string)
	if err := yaml.Unmarshal(raw, &table); err != nil {
		panic(fmt.Sprintf("statement: parse embedded alias table: %v", err))
	}
	return table
}

// Aliases returns the ordered alias chain for a logical field. Unknown
// fields resolve to nothing.
func Aliases(f Field) []string {
	return aliasTable[f]
}

// Resolve returns the series for the first alias present in the table with
// at least one observation.
func Resolve(t model.StatementTable, f Field) (model.LineSeries, bool) {
	for _, name := range aliasTable[f] {
		if series, ok := t[name]; ok && len(series) > 0 {
			return series, true
		}
	}
	return nil, false
}

// Value returns the field's value at period index idx (0 = most recent).
func Value(t model.StatementTable, f Field, idx int) (float64, bool) {
	series, ok := Resolve(t, f)
	if !ok || idx < 0 || idx >= len(series) {
		return 0, false
	}
	return series[idx].Value, true
}

// Latest returns the field's most recent value.
func Latest(t model.StatementTable, f Field) (float64, bool) {
	return Value(t, f, 0)
}

// LatestOr returns the field's most recent value, or def when the field is
// absent under every alias.
func LatestOr(t model.StatementTable, f Field, def float64) float64 {
	if v, ok := Latest(t, f); ok {
		return v
	}
	return def
}

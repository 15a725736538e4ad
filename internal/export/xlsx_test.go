package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/oracle-cli/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		ID:          "test-id",
		Ticker:      "ACME",
		GeneratedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Quote: model.QuoteInfo{
			Symbol:       "ACME",
			LongName:     "Acme Corp",
			Sector:       "Industrials",
			CurrentPrice: model.Float(120),
		},
		Metrics: model.MetricsReport{
			GrossMarginCurrent: model.Float(45),
			ROECurrent:         model.Float(25),
			FreeCashFlow:       model.Float(150),
			RevenueSeries: model.LineSeries{
				{Period: time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), Value: 900},
				{Period: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Value: 1000},
			},
			NetIncomeSeries: model.LineSeries{
				{Period: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Value: 150},
			},
		},
		Valuation: model.Valuation{
			Graham:        model.Float(94.87),
			DCFNote:       "free cash flow unavailable",
			AnalystTarget: model.Float(140),
		},
		ScoreCard: model.ScoreCard{
			MoatPass:       true,
			ManagementPass: true,
			CashPass:       true,
			Score:          80,
			Verdict:        "high quality",
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, []*model.Report{sampleReport()}))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	scorecard := f.Sheet["Scorecard"]
	require.NotNil(t, scorecard)
	assert.Equal(t, "Ticker", scorecard.Rows[0].Cells[0].String())
	assert.Equal(t, "ACME", scorecard.Rows[1].Cells[0].String())
	assert.Equal(t, "PASS", scorecard.Rows[1].Cells[2].String())
	assert.Equal(t, "FAIL", scorecard.Rows[1].Cells[4].String())
	assert.Equal(t, "high quality", scorecard.Rows[1].Cells[7].String())

	detail := f.Sheet["ACME"]
	require.NotNil(t, detail)
	var labels []string
	for _, row := range detail.Rows {
		if len(row.Cells) > 0 {
			labels = append(labels, row.Cells[0].String())
		}
	}
	assert.Contains(t, labels, "Gross Margin %")
	assert.Contains(t, labels, "Graham Number")
	assert.Contains(t, labels, "DCF Note")
	assert.Contains(t, labels, "Verdict")
	assert.Contains(t, labels, "Year")
}

func TestWriteXLSXAbsentMetricsRenderNA(t *testing.T) {
	r := sampleReport()
	r.Metrics.DebtYears = nil
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, []*model.Report{r}))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	detail := f.Sheet["ACME"]
	require.NotNil(t, detail)
	for _, row := range detail.Rows {
		if len(row.Cells) >= 2 && row.Cells[0].String() == "Debt Payback Years" {
			assert.Equal(t, "n/a", row.Cells[1].String())
			return
		}
	}
	t.Fatal("Debt Payback Years row not found")
}

func TestWriteXLSXNoReports(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), nil)
	require.Error(t, err)
}

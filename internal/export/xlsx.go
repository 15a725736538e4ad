// Package export writes analysis reports to spreadsheet workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/oracle-cli/internal/model"
)

// WriteXLSX writes one workbook with a summary sheet per report plus a
// combined scorecard sheet for side-by-side comparison.
func WriteXLSX(path string, reports []*model.Report) error {
	if len(reports) == 0 {
		return eris.New("export: no reports to write")
	}

	f := xlsx.NewFile()

	if err := addScorecardSheet(f, reports); err != nil {
		return err
	}
	for _, r := range reports {
		if err := addReportSheet(f, r); err != nil {
			return err
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	zap.L().Info("workbook written", zap.String("path", path), zap.Int("reports", len(reports)))
	return nil
}

func addScorecardSheet(f *xlsx.File, reports []*model.Report) error {
	sheet, err := f.AddSheet("Scorecard")
	if err != nil {
		return eris.Wrap(err, "export: add scorecard sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Ticker", "Company", "Moat", "Management", "Debt", "Cash", "Score", "Verdict"} {
		header.AddCell().SetString(h)
	}

	for _, r := range reports {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Ticker)
		row.AddCell().SetString(r.Quote.LongName)
		row.AddCell().SetString(passFail(r.ScoreCard.MoatPass))
		row.AddCell().SetString(passFail(r.ScoreCard.ManagementPass))
		row.AddCell().SetString(passFail(r.ScoreCard.DebtPass))
		row.AddCell().SetString(passFail(r.ScoreCard.CashPass))
		row.AddCell().SetInt(r.ScoreCard.Score)
		row.AddCell().SetString(r.ScoreCard.Verdict)
	}
	return nil
}

func addReportSheet(f *xlsx.File, r *model.Report) error {
	sheet, err := f.AddSheet(r.Ticker)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", r.Ticker)
	}

	addPair(sheet, "Ticker", r.Ticker)
	addPair(sheet, "Company", r.Quote.LongName)
	addPair(sheet, "Sector", r.Quote.Sector)
	addPair(sheet, "Generated", r.GeneratedAt.Format(time.RFC3339))
	sheet.AddRow()

	addNumPair(sheet, "Current Price", r.Quote.CurrentPrice)
	addNumPair(sheet, "Gross Margin %", r.Metrics.GrossMarginCurrent)
	addNumPair(sheet, "Avg Gross Margin %", r.Metrics.GrossMarginAverage)
	addNumPair(sheet, "ROE %", r.Metrics.ROECurrent)
	addNumPair(sheet, "Avg ROE %", r.Metrics.ROEAverage)
	addNumPair(sheet, "Debt Payback Years", r.Metrics.DebtYears)
	addNumPair(sheet, "Free Cash Flow", r.Metrics.FreeCashFlow)
	addNumPair(sheet, "Cash On Hand", r.Metrics.CashOnHand)
	addNumPair(sheet, "Total Debt", r.Metrics.TotalDebt)
	sheet.AddRow()

	addNumPair(sheet, "Graham Number", r.Valuation.Graham)
	if r.Valuation.GrahamNote != "" {
		addPair(sheet, "Graham Note", r.Valuation.GrahamNote)
	}
	addNumPair(sheet, "DCF Fair Value", r.Valuation.DCF)
	if r.Valuation.DCFNote != "" {
		addPair(sheet, "DCF Note", r.Valuation.DCFNote)
	}
	addNumPair(sheet, "Analyst Target", r.Valuation.AnalystTarget)
	sheet.AddRow()

	addPair(sheet, "Score", fmt.Sprintf("%d / 100", r.ScoreCard.Score))
	addPair(sheet, "Verdict", r.ScoreCard.Verdict)

	if len(r.Metrics.RevenueSeries) > 0 {
		sheet.AddRow()
		header := sheet.AddRow()
		header.AddCell().SetString("Year")
		header.AddCell().SetString("Revenue")
		header.AddCell().SetString("Net Income")
		net := map[int]float64{}
		for _, pv := range r.Metrics.NetIncomeSeries {
			net[pv.Period.Year()] = pv.Value
		}
		for _, pv := range r.Metrics.RevenueSeries {
			row := sheet.AddRow()
			row.AddCell().SetInt(pv.Period.Year())
			row.AddCell().SetFloat(pv.Value)
			if v, ok := net[pv.Period.Year()]; ok {
				row.AddCell().SetFloat(v)
			} else {
				row.AddCell().SetString("n/a")
			}
		}
	}
	return nil
}

func addPair(sheet *xlsx.Sheet, label, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetString(value)
}

func addNumPair(sheet *xlsx.Sheet, label string, value *float64) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	if value == nil {
		row.AddCell().SetString("n/a")
		return
	}
	row.AddCell().SetFloat(*value)
}

func passFail(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/oracle-cli/internal/fundamentals"
	"github.com/sells-group/oracle-cli/internal/model"
	"github.com/sells-group/oracle-cli/internal/quote"
)

var (
	analyzeJSON    bool
	analyzeExplain bool
	analyzeNoCache bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER",
	Short: "Run the full scorecard and valuation for one ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx, analyzeNoCache)
		if err != nil {
			return err
		}
		defer e.Close()

		report, err := e.Analyzer.Analyze(ctx, args[0])
		if err != nil {
			switch {
			case errors.Is(err, quote.ErrSymbolNotFound):
				return fmt.Errorf("symbol %q not found, try the search command", args[0])
			case errors.Is(err, model.ErrDataUnavailable):
				return fmt.Errorf("not enough financial data to analyze %q", args[0])
			}
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		renderReport(report)

		if analyzeExplain {
			if e.Summarizer == nil {
				return errors.New("--explain requires an Anthropic API key in config")
			}
			text, err := e.Summarizer.Summarize(ctx, report)
			if err != nil {
				zap.L().Warn("narrative failed", zap.Error(err))
				return err
			}
			fmt.Println()
			fmt.Println(text)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeExplain, "explain", false, "append a model-written assessment")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "bypass the statement cache")
	rootCmd.AddCommand(analyzeCmd)
}

var printer = message.NewPrinter(language.English)

func renderReport(r *model.Report) {
	name := r.Quote.LongName
	if name == "" {
		name = r.Ticker
	}
	fmt.Printf("%s (%s)\n", name, r.Ticker)
	if r.Quote.Sector != "" {
		fmt.Printf("%s / %s\n", r.Quote.Sector, r.Quote.Industry)
	}
	if r.Quote.CurrentPrice != nil {
		printer.Printf("Price: %.2f %s\n", *r.Quote.CurrentPrice, r.Quote.Currency)
	}
	fmt.Println(strings.Repeat("-", 52))

	fmt.Printf("%-14s %s\n", "Moat", pillarLine(r.ScoreCard.MoatPass, pct(r.Metrics.GrossMarginCurrent, "gross margin")))
	fmt.Printf("%-14s %s\n", "Management", pillarLine(r.ScoreCard.ManagementPass, pct(r.Metrics.ROEAverage, "avg ROE")))
	fmt.Printf("%-14s %s\n", "Debt", pillarLine(r.ScoreCard.DebtPass, debtLine(r.Metrics.DebtYears)))
	fmt.Printf("%-14s %s\n", "Cash", pillarLine(r.ScoreCard.CashPass, moneyLine(r.Metrics.FreeCashFlow, "FCF")))

	fmt.Println(strings.Repeat("-", 52))
	fmt.Printf("Score: %d/100  Verdict: %s\n", r.ScoreCard.Score, r.ScoreCard.Verdict)
	fmt.Println()

	fmt.Println("Fair value estimates")
	printEstimate("Graham number", r.Valuation.Graham, r.Valuation.GrahamNote)
	printEstimate("DCF", r.Valuation.DCF, r.Valuation.DCFNote)
	printEstimate("Analyst target", r.Valuation.AnalystTarget, "")

	if r.Metrics.CashOnHand != nil && r.Metrics.TotalDebt != nil {
		fmt.Println()
		printer.Printf("Cash on hand %.0f vs total debt %.0f", *r.Metrics.CashOnHand, *r.Metrics.TotalDebt)
		if r.Metrics.NetCashPositive {
			fmt.Println("  (net cash)")
		} else {
			fmt.Println()
		}
	}
}

func pillarLine(pass bool, detail string) string {
	mark := "FAIL"
	if pass {
		mark = "PASS"
	}
	return fmt.Sprintf("%s  %s", mark, detail)
}

func pct(v *float64, label string) string {
	if v == nil {
		return label + " unavailable"
	}
	return fmt.Sprintf("%s %.1f%%", label, *v)
}

func debtLine(years *float64) string {
	if years == nil {
		return "no long-term debt reported"
	}
	if *years >= fundamentals.DebtYearsSentinel {
		return "earnings cannot cover long-term debt"
	}
	return fmt.Sprintf("%.1f years of earnings to clear debt", *years)
}

func moneyLine(v *float64, label string) string {
	if v == nil {
		return label + " unavailable"
	}
	return printer.Sprintf("%s %.0f", label, *v)
}

func printEstimate(label string, v *float64, note string) {
	if v != nil {
		printer.Printf("  %-15s %.2f\n", label, *v)
		return
	}
	if note == "" {
		note = "unavailable"
	}
	fmt.Printf("  %-15s n/a (%s)\n", label, note)
}

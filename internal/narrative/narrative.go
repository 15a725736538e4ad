// Package narrative turns a finished report into a short plain-English
// assessment using the Anthropic API.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/oracle-cli/internal/model"
	"github.com/sells-group/oracle-cli/pkg/anthropic"
)

const systemPrompt = `You are an equity analyst assistant. Given a quality
scorecard and valuation estimates for one company, write a concise
three-paragraph assessment: business quality, balance sheet and cash
generation, and valuation versus current price. Plain prose, no headings,
no investment advice disclaimer.`

// Summarizer narrates reports through an Anthropic model.
type Summarizer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewSummarizer(client anthropic.Client, model string) *Summarizer {
	return &Summarizer{
		client:    client,
		model:     model,
		maxTokens: 1024,
	}
}

// Summarize writes the narrative for one report.
func (s *Summarizer) Summarize(ctx context.Context, r *model.Report) (string, error) {
	if s == nil || s.client == nil {
		return "", eris.New("narrative: no client configured")
	}

	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(r)},
		},
	})
	if err != nil {
		return "", eris.Wrapf(err, "narrative: summarize %s", r.Ticker)
	}
	resp.Usage.LogCost(s.model, "narrative")

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", eris.Errorf("narrative: empty response for %s", r.Ticker)
	}
	return text, nil
}

// buildPrompt flattens the report into labeled lines the model can read.
// Absent metrics are stated as unavailable rather than omitted, so the
// narrative acknowledges data gaps.
func buildPrompt(r *model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s (%s)\n", r.Quote.LongName, r.Ticker)
	if r.Quote.Sector != "" {
		fmt.Fprintf(&b, "Sector: %s / %s\n", r.Quote.Sector, r.Quote.Industry)
	}
	writeNum(&b, "Current price", r.Quote.CurrentPrice)
	writeNum(&b, "Gross margin %% (latest)", r.Metrics.GrossMarginCurrent)
	writeNum(&b, "Gross margin %% (average)", r.Metrics.GrossMarginAverage)
	writeNum(&b, "Return on equity %% (average)", r.Metrics.ROEAverage)
	writeNum(&b, "Years of earnings to clear long-term debt", r.Metrics.DebtYears)
	writeNum(&b, "Free cash flow (latest)", r.Metrics.FreeCashFlow)
	writeNum(&b, "Cash on hand", r.Metrics.CashOnHand)
	writeNum(&b, "Total debt", r.Metrics.TotalDebt)
	fmt.Fprintf(&b, "Book value growing: %t\n", r.Metrics.BookValueGrowing)

	writeNum(&b, "Graham number fair value", r.Valuation.Graham)
	if r.Valuation.GrahamNote != "" {
		fmt.Fprintf(&b, "Graham note: %s\n", r.Valuation.GrahamNote)
	}
	writeNum(&b, "DCF fair value", r.Valuation.DCF)
	if r.Valuation.DCFNote != "" {
		fmt.Fprintf(&b, "DCF note: %s\n", r.Valuation.DCFNote)
	}
	writeNum(&b, "Analyst mean target", r.Valuation.AnalystTarget)

	fmt.Fprintf(&b, "Scorecard: moat=%s management=%s debt=%s cash=%s score=%d verdict=%q\n",
		passFail(r.ScoreCard.MoatPass), passFail(r.ScoreCard.ManagementPass),
		passFail(r.ScoreCard.DebtPass), passFail(r.ScoreCard.CashPass),
		r.ScoreCard.Score, r.ScoreCard.Verdict)
	return b.String()
}

func writeNum(b *strings.Builder, label string, v *float64) {
	if v == nil {
		fmt.Fprintf(b, "%s: unavailable\n", label)
		return
	}
	fmt.Fprintf(b, label+": %.2f\n", *v)
}

func passFail(pass bool) string {
	if pass {
		return "pass"
	}
	return "fail"
}

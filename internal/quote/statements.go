package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/oracle-cli/internal/cache"
	"github.com/sells-group/oracle-cli/internal/model"
)

// summaryModules lists the quoteSummary modules one statements fetch needs.
const summaryModules = "incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory," +
	"financialData,defaultKeyStatistics,summaryDetail,price,summaryProfile"

// rawNum is the provider's {"raw": n, "fmt": "..."} number wrapper. Raw is
// nil when the provider omits the value or sends an empty object.
type rawNum struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	IncomeStatementHistory *struct {
		Statements []map[string]json.RawMessage `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory *struct {
		Statements []map[string]json.RawMessage `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory *struct {
		Statements []map[string]json.RawMessage `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
	FinancialData *struct {
		CurrentPrice      rawNum `json:"currentPrice"`
		TargetMeanPrice   rawNum `json:"targetMeanPrice"`
		RecommendationKey string `json:"recommendationKey"`
		ReturnOnEquity    rawNum `json:"returnOnEquity"`
		DebtToEquity      rawNum `json:"debtToEquity"`
		GrossMargins      rawNum `json:"grossMargins"`
		FreeCashflow      rawNum `json:"freeCashflow"`
		RevenueGrowth     rawNum `json:"revenueGrowth"`
	} `json:"financialData"`
	DefaultKeyStatistics *struct {
		TrailingEPS       rawNum `json:"trailingEps"`
		BookValue         rawNum `json:"bookValue"`
		PriceToBook       rawNum `json:"priceToBook"`
		SharesOutstanding rawNum `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail *struct {
		TrailingPE rawNum `json:"trailingPE"`
	} `json:"summaryDetail"`
	Price *struct {
		Symbol             string `json:"symbol"`
		LongName           string `json:"longName"`
		Currency           string `json:"currency"`
		RegularMarketPrice rawNum `json:"regularMarketPrice"`
		MarketCap          rawNum `json:"marketCap"`
	} `json:"price"`
	SummaryProfile *struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"summaryProfile"`
}

// FetchStatements retrieves the annual statements and market snapshot for a
// ticker, serving from the cache when a fresh entry exists.
func (c *Client) FetchStatements(ctx context.Context, ticker string) (*model.StatementSet, error) {
	key := cache.Key(ticker)
	if key == "" {
		return nil, eris.Wrap(model.ErrDataUnavailable, "quote: empty ticker")
	}

	if c.store != nil {
		payload, hit, err := c.store.Get(ctx, key)
		if err != nil {
			zap.L().Warn("quote: cache read failed", zap.String("ticker", key), zap.Error(err))
		} else if hit {
			var set model.StatementSet
			if err := json.Unmarshal(payload, &set); err == nil {
				zap.L().Debug("quote: cache hit", zap.String("ticker", key))
				return &set, nil
			}
			zap.L().Warn("quote: discarding corrupt cache entry", zap.String("ticker", key))
		}
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(key), url.QueryEscape(summaryModules))

	var resp quoteSummaryResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		if strings.Contains(strings.ToLower(resp.QuoteSummary.Error.Description), "not found") {
			return nil, eris.Wrapf(ErrSymbolNotFound, "quote: %s", key)
		}
		return nil, eris.Errorf("quote: provider error %s: %s",
			resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, eris.Wrapf(ErrSymbolNotFound, "quote: %s", key)
	}

	set := buildStatementSet(key, resp.QuoteSummary.Result[0])

	if c.store != nil {
		if payload, err := json.Marshal(set); err == nil {
			if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
				zap.L().Warn("quote: cache write failed", zap.String("ticker", key), zap.Error(err))
			}
		}
	}
	return set, nil
}

func buildStatementSet(ticker string, r summaryResult) *model.StatementSet {
	set := &model.StatementSet{
		Ticker:    ticker,
		Income:    model.StatementTable{},
		Balance:   model.StatementTable{},
		CashFlow:  model.StatementTable{},
		FetchedAt: time.Now().UTC(),
	}
	if r.IncomeStatementHistory != nil {
		set.Income = buildTable(r.IncomeStatementHistory.Statements)
	}
	if r.BalanceSheetHistory != nil {
		set.Balance = buildTable(r.BalanceSheetHistory.Statements)
	}
	if r.CashflowStatementHistory != nil {
		set.CashFlow = buildTable(r.CashflowStatementHistory.Statements)
	}
	set.Quote = buildQuote(ticker, r)
	return set
}

// buildTable flattens one statement history into named line-item series.
// Statements arrive most recent first, matching LineSeries ordering.
func buildTable(statements []map[string]json.RawMessage) model.StatementTable {
	table := model.StatementTable{}
	for _, stmt := range statements {
		var end rawNum
		if raw, ok := stmt["endDate"]; !ok || json.Unmarshal(raw, &end) != nil || end.Raw == nil {
			continue
		}
		period := time.Unix(int64(*end.Raw), 0).UTC()

		for key, raw := range stmt {
			if key == "endDate" || key == "maxAge" {
				continue
			}
			var n rawNum
			if json.Unmarshal(raw, &n) != nil || n.Raw == nil {
				continue
			}
			name := titleFromCamel(key)
			table[name] = append(table[name], model.PeriodValue{Period: period, Value: *n.Raw})
		}
	}
	return table
}

func buildQuote(ticker string, r summaryResult) model.QuoteInfo {
	q := model.QuoteInfo{Symbol: ticker}
	if p := r.Price; p != nil {
		if p.Symbol != "" {
			q.Symbol = p.Symbol
		}
		q.LongName = p.LongName
		q.Currency = p.Currency
		q.CurrentPrice = p.RegularMarketPrice.Raw
		q.MarketCap = p.MarketCap.Raw
	}
	if f := r.FinancialData; f != nil {
		if f.CurrentPrice.Raw != nil {
			q.CurrentPrice = f.CurrentPrice.Raw
		}
		q.TargetMeanPrice = f.TargetMeanPrice.Raw
		q.RecommendationKey = f.RecommendationKey
		q.ReturnOnEquity = f.ReturnOnEquity.Raw
		q.DebtToEquity = f.DebtToEquity.Raw
		q.GrossMargins = f.GrossMargins.Raw
		q.FreeCashflow = f.FreeCashflow.Raw
		q.RevenueGrowth = f.RevenueGrowth.Raw
	}
	if k := r.DefaultKeyStatistics; k != nil {
		q.TrailingEPS = k.TrailingEPS.Raw
		q.BookValuePerShare = k.BookValue.Raw
		q.PriceToBook = k.PriceToBook.Raw
		q.SharesOutstanding = k.SharesOutstanding.Raw
	}
	if d := r.SummaryDetail; d != nil {
		q.TrailingPE = d.TrailingPE.Raw
	}
	if p := r.SummaryProfile; p != nil {
		q.Sector = p.Sector
		q.Industry = p.Industry
	}
	return q
}

// titleFromCamel converts a provider field name like
// "totalCashFromOperatingActivities" into the statement row name
// "Total Cash From Operating Activities".
func titleFromCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

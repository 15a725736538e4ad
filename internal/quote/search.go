package quote

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sells-group/oracle-cli/internal/model"
)

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Search looks up ticker symbols by company name. Only equity matches are
// returned; an empty query returns no results.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0",
		c.baseURL, url.QueryEscape(query))

	var resp searchResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	var results []model.SearchResult
	for _, q := range resp.Quotes {
		if q.QuoteType != "" && !strings.EqualFold(q.QuoteType, "EQUITY") {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, model.SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
		})
	}
	return results, nil
}

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/oracle-cli/internal/analysis"
	"github.com/sells-group/oracle-cli/internal/model"
	"github.com/sells-group/oracle-cli/internal/quote"
)

type fakeFetcher struct {
	set     *model.StatementSet
	err     error
	results []model.SearchResult
}

func (f *fakeFetcher) FetchStatements(context.Context, string) (*model.StatementSet, error) {
	return f.set, f.err
}

func (f *fakeFetcher) Search(context.Context, string) ([]model.SearchResult, error) {
	return f.results, f.err
}

func year(y int) time.Time { return time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC) }

func minimalSet() *model.StatementSet {
	return &model.StatementSet{
		Ticker: "ACME",
		Income: model.StatementTable{
			"Total Revenue": {{Period: year(2023), Value: 1000}},
			"Gross Profit":  {{Period: year(2023), Value: 450}},
			"Net Income":    {{Period: year(2023), Value: 150}},
		},
		Balance: model.StatementTable{
			"Total Stockholder Equity": {{Period: year(2023), Value: 600}},
		},
		Quote: model.QuoteInfo{Symbol: "ACME", LongName: "Acme Corp"},
	}
}

func TestServeAnalyzeEndpoint(t *testing.T) {
	router := newRouter(analysis.New(&fakeFetcher{set: minimalSet()}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze/ACME", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "ACME", report.Ticker)
	assert.NotEmpty(t, report.ID)
	assert.NotEmpty(t, report.ScoreCard.Verdict)
}

func TestServeAnalyzeSymbolNotFound(t *testing.T) {
	router := newRouter(analysis.New(&fakeFetcher{err: quote.ErrSymbolNotFound}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze/NOPE", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestServeAnalyzeDataUnavailable(t *testing.T) {
	router := newRouter(analysis.New(&fakeFetcher{set: &model.StatementSet{Ticker: "EMPTY"}}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze/EMPTY", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServeSearch(t *testing.T) {
	router := newRouter(analysis.New(&fakeFetcher{
		results: []model.SearchResult{{Symbol: "ACME", Name: "Acme Corp"}},
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=acme", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var results []model.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "ACME", results[0].Symbol)
}

func TestServeSearchMissingQuery(t *testing.T) {
	router := newRouter(analysis.New(&fakeFetcher{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeSearchEmptyResultsIsArray(t *testing.T) {
	router := newRouter(analysis.New(&fakeFetcher{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=zzz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServeHealth(t *testing.T) {
	router := newRouter(analysis.New(&fakeFetcher{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/oracle-cli/internal/analysis"
	"github.com/sells-group/oracle-cli/internal/cache"
	"github.com/sells-group/oracle-cli/internal/narrative"
	"github.com/sells-group/oracle-cli/internal/quote"
	"github.com/sells-group/oracle-cli/pkg/anthropic"
)

// env bundles the wired-up application components the commands share.
type env struct {
	Store      cache.Store
	Client     *quote.Client
	Analyzer   *analysis.Analyzer
	Summarizer *narrative.Summarizer
}

func (e *env) Close() {
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("cache close failed", zap.Error(err))
		}
	}
}

// initStore opens the configured cache backend, or returns nil when
// caching is off.
func initStore(ctx context.Context) (cache.Store, error) {
	switch cfg.Cache.Driver {
	case "off", "":
		return nil, nil
	case "sqlite":
		store, err := cache.NewSQLite(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case "postgres":
		store, err := cache.NewPostgres(ctx, cfg.Cache.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, eris.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// initEnv wires the provider client, cache, analyzer, and optional
// narrator from config. noCache bypasses the cache for this invocation.
func initEnv(ctx context.Context, noCache bool) (*env, error) {
	e := &env{}

	if !noCache {
		store, err := initStore(ctx)
		if err != nil {
			return nil, eris.Wrap(err, "init cache")
		}
		e.Store = store
	}

	opts := []quote.Option{
		quote.WithBaseURL(cfg.Quote.BaseURL),
		quote.WithRateLimit(cfg.Quote.RequestsPerSec, cfg.Quote.Burst),
	}
	if e.Store != nil {
		opts = append(opts, quote.WithCache(e.Store, time.Duration(cfg.Cache.TTLHours)*time.Hour))
	}
	e.Client = quote.NewClient(opts...)
	e.Analyzer = analysis.New(e.Client)

	if cfg.Anthropic.Key != "" {
		e.Summarizer = narrative.NewSummarizer(
			anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
	}

	return e, nil
}

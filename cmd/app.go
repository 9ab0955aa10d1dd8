package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/analyze"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/edgar"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/extract"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/fetcher"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/scorer"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/store"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// initAnalyzer wires the full pipeline from config: rate-limited EDGAR
// fetcher, alias table, extractor, and scorer.
func initAnalyzer() (*analyze.Analyzer, error) {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.EDGAR.UserAgent,
		Timeout:    time.Duration(cfg.EDGAR.TimeoutSecs) * time.Second,
		MaxRetries: cfg.EDGAR.MaxRetries,
	})

	client := edgar.NewClient(f, edgar.ClientOptions{
		TickerMapURL:   cfg.EDGAR.TickerMapURL,
		FactsBaseURL:   cfg.EDGAR.FactsBaseURL,
		SubmissionsURL: cfg.EDGAR.SubmissionsURL,
	})

	table, err := taxonomy.Load()
	if err != nil {
		return nil, eris.Wrap(err, "load alias table")
	}

	weights := scorer.WeightsFromMap(cfg.Scorer.Weights)
	sc, err := scorer.New(weights)
	if err != nil {
		return nil, err
	}

	return analyze.New(client, extract.NewExtractor(table), sc), nil
}

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
}

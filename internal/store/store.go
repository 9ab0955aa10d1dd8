// Package store persists analysis run history. Persistence is an audit
// trail for the CLI and the HTTP API; the analysis pipeline itself never
// reads from it.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/analyze"
)

// Run is one saved analysis.
type Run struct {
	ID        string          `json:"id"`
	Ticker    string          `json:"ticker"`
	CIK       string          `json:"cik"`
	Score     float64         `json:"score"`
	Grade     string          `json:"grade"`
	Report    *analyze.Report `json:"report"`
	CreatedAt time.Time       `json:"created_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Ticker string `json:"ticker,omitempty"`
	Grade  string `json:"grade,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the run-history persistence interface.
type Store interface {
	SaveRun(ctx context.Context, report *analyze.Report) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a store for the configured driver and runs migrations.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "sqlite":
		s, err = NewSQLite(dsn)
	case "postgres":
		s, err = NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

package analyze

import (
	"errors"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/edgar"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/extract"
)

// Kind classifies an analysis failure for the outer surfaces (HTTP status
// codes, CLI exit messages).
type Kind int

const (
	// KindInternal is the default: an unexpected fault inside the pipeline.
	KindInternal Kind = iota
	// KindUnknownTicker means the ticker is not in the SEC company map.
	KindUnknownTicker
	// KindIncompleteData means the filing lacks the required concepts.
	KindIncompleteData
	// KindUpstream means EDGAR could not be fetched or decoded.
	KindUpstream
)

// Classify maps an error from Run to its kind. Order matters: a fetch error
// wrapping a not-found sentinel never occurs, but incomplete-data checks run
// before the upstream catch-all so data-quality failures are never reported
// as EDGAR outages.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, edgar.ErrTickerNotFound):
		return KindUnknownTicker
	case errors.Is(err, extract.ErrIncompleteFilingData):
		return KindIncompleteData
	default:
		var fe *edgar.FetchError
		if errors.As(err, &fe) {
			return KindUpstream
		}
		return KindInternal
	}
}

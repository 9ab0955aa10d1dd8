package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/fetcher"
)

// ErrTickerNotFound indicates the ticker is absent from the SEC ticker map.
var ErrTickerNotFound = eris.New("edgar: ticker not found")

// FetchError marks a failure at the EDGAR boundary: a request that failed or
// a response that could not be decoded. Callers map it to an upstream error,
// distinct from data-quality failures inside the analysis core.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("edgar: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FilingInfo describes the most recent annual filing from the submissions feed.
type FilingInfo struct {
	Form            string `json:"form"`
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date"`
	ReportDate      string `json:"report_date"`
}

// ClientOptions configures the EDGAR endpoints. Zero values use the live SEC hosts.
type ClientOptions struct {
	TickerMapURL   string
	FactsBaseURL   string
	SubmissionsURL string
}

// Client is the EDGAR data-fetch collaborator. All methods are read-only;
// the ticker map is fetched once and cached for the client's lifetime.
type Client struct {
	fetcher fetcher.Fetcher
	opts    ClientOptions

	mu      sync.Mutex
	tickers map[string]string // upper-cased ticker -> zero-padded 10-digit CIK
}

// NewClient creates an EDGAR client over the given fetcher.
func NewClient(f fetcher.Fetcher, opts ClientOptions) *Client {
	if opts.TickerMapURL == "" {
		opts.TickerMapURL = "https://www.sec.gov/files/company_tickers.json"
	}
	if opts.FactsBaseURL == "" {
		opts.FactsBaseURL = "https://data.sec.gov/api/xbrl/companyfacts"
	}
	if opts.SubmissionsURL == "" {
		opts.SubmissionsURL = "https://data.sec.gov/submissions"
	}
	return &Client{fetcher: f, opts: opts}
}

// tickerEntry is one row of company_tickers.json.
type tickerEntry struct {
	CIK    json.Number `json:"cik_str"`
	Ticker string      `json:"ticker"`
	Title  string      `json:"title"`
}

// ResolveTicker maps a stock ticker to its zero-padded 10-digit CIK.
// Returns ErrTickerNotFound when the ticker is not in the SEC map.
func (c *Client) ResolveTicker(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", eris.Wrap(ErrTickerNotFound, "empty ticker")
	}

	if err := c.loadTickerMap(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	cik, ok := c.tickers[ticker]
	c.mu.Unlock()
	if !ok {
		return "", eris.Wrapf(ErrTickerNotFound, "ticker %s", ticker)
	}
	return cik, nil
}

func (c *Client) loadTickerMap(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.tickers != nil
	c.mu.Unlock()
	if loaded {
		return nil
	}

	body, err := c.fetcher.Download(ctx, c.opts.TickerMapURL)
	if err != nil {
		return &FetchError{URL: c.opts.TickerMapURL, Err: err}
	}
	defer body.Close() //nolint:errcheck

	entries, err := fetcher.DecodeJSONObject[map[string]tickerEntry](body)
	if err != nil {
		return &FetchError{URL: c.opts.TickerMapURL, Err: eris.Wrap(err, "decode ticker map")}
	}

	tickers := make(map[string]string, len(*entries))
	for _, e := range *entries {
		if e.Ticker == "" || e.CIK.String() == "" {
			continue
		}
		tickers[strings.ToUpper(e.Ticker)] = PadCIK(e.CIK.String())
	}

	zap.L().Debug("edgar: loaded ticker map", zap.Int("tickers", len(tickers)))

	c.mu.Lock()
	c.tickers = tickers
	c.mu.Unlock()
	return nil
}

// CompanyFacts fetches and parses the Company Facts document for a CIK.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*CompanyFacts, error) {
	url := fmt.Sprintf("%s/CIK%s.json", c.opts.FactsBaseURL, PadCIK(cik))

	body, err := c.fetcher.Download(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer body.Close() //nolint:errcheck

	facts, err := ParseCompanyFacts(body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return facts, nil
}

// submissionsJSON is the subset of the submissions endpoint we read.
type submissionsJSON struct {
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			ReportDate      []string `json:"reportDate"`
			Form            []string `json:"form"`
		} `json:"recent"`
	} `json:"filings"`
}

// LatestAnnualFiling returns metadata for the most recent 10-K or 10-K/A,
// or nil when the company has no recent annual filing.
func (c *Client) LatestAnnualFiling(ctx context.Context, cik string) (*FilingInfo, error) {
	url := fmt.Sprintf("%s/CIK%s.json", c.opts.SubmissionsURL, PadCIK(cik))

	body, err := c.fetcher.Download(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer body.Close() //nolint:errcheck

	subs, err := fetcher.DecodeJSONObject[submissionsJSON](body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: eris.Wrap(err, "decode submissions")}
	}

	recent := subs.Filings.Recent
	for i, form := range recent.Form {
		if form != "10-K" && form != "10-K/A" {
			continue
		}
		return &FilingInfo{
			Form:            form,
			AccessionNumber: safeIndex(recent.AccessionNumber, i),
			FilingDate:      safeIndex(recent.FilingDate, i),
			ReportDate:      safeIndex(recent.ReportDate, i),
		}, nil
	}
	return nil, nil
}

// PadCIK left-pads a CIK to the 10 digits EDGAR URLs expect.
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}

// safeIndex returns the string at index i, or empty string if out of bounds.
func safeIndex(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"newsdesk/internal/model"
)

// Fallback causes. Callers use these to phrase the degraded-data warning.
var (
	ErrNoCredential = errors.New("feed: no sheets api key configured")
	ErrNoRows       = errors.New("feed: source returned no rows beyond the header")
)

// SheetRef identifies one spreadsheet range.
type SheetRef struct {
	SpreadsheetID string
	Range         string
}

// Source fetches raw rows from the remote tabular source for a feed mode
// and normalizes them. On any remote failure it degrades to the built-in
// fixture dataset and reports the cause, so callers can warn the user.
type Source struct {
	baseURL  string
	apiKey   string
	standard SheetRef
	deep     SheetRef
	client   *http.Client
}

// NewSource creates a feed source. baseURL should be like
// "https://sheets.googleapis.com" (no trailing slash).
func NewSource(baseURL, apiKey string, standard, deep SheetRef) *Source {
	return &Source{
		baseURL:  baseURL,
		apiKey:   apiKey,
		standard: standard,
		deep:     deep,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Result is the outcome of one fetch. Fallback marks degraded data; Cause
// says why the remote source was unusable.
type Result struct {
	Items        []model.NewsItem
	LatestUpdate string // maximum date string across the items
	Fallback     bool
	Cause        error
}

// valuesResponse mirrors the spreadsheet-values envelope we care about.
type valuesResponse struct {
	Values [][]string `json:"values"`
}

// Fetch loads and normalizes the item set for a mode. It never fails
// outright: remote trouble yields the fixture dataset with Fallback set.
func (s *Source) Fetch(ctx context.Context, mode Mode) Result {
	fm := Fields(mode)
	if s.apiKey == "" {
		return s.fallback(mode, fm, ErrNoCredential)
	}
	rows, err := s.fetchRows(ctx, s.ref(mode))
	if err != nil {
		return s.fallback(mode, fm, err)
	}
	if len(rows) <= 1 {
		return s.fallback(mode, fm, ErrNoRows)
	}
	// First row is the header.
	items := NormalizeRows(rows[1:], fm)
	if len(items) == 0 {
		return s.fallback(mode, fm, ErrNoRows)
	}
	return Result{Items: items, LatestUpdate: latestDate(items)}
}

func (s *Source) ref(mode Mode) SheetRef {
	if mode == ModeDeep {
		return s.deep
	}
	return s.standard
}

// fetchRows performs the values GET:
// {base}/v4/spreadsheets/{id}/values/{range}?key={key}
func (s *Source) fetchRows(ctx context.Context, ref SheetRef) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		s.baseURL, url.PathEscape(ref.SpreadsheetID), url.PathEscape(ref.Range), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed: sheets status %d", resp.StatusCode)
	}
	var vr valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, err
	}
	return vr.Values, nil
}

func (s *Source) fallback(mode Mode, fm FieldMap, cause error) Result {
	slog.Warn("feed: remote source unavailable, using built-in dataset", "mode", mode, "cause", cause)
	items := NormalizeRows(fixtureRows(mode), fm)
	return Result{Items: items, LatestUpdate: latestDate(items), Fallback: true, Cause: cause}
}

// latestDate is the "latest update" metadata: the maximum date string.
// Dates are ISO-style strings, so string comparison orders them.
func latestDate(items []model.NewsItem) string {
	latest := ""
	for _, it := range items {
		if newerDate(it.Date, latest) {
			latest = it.Date
		}
	}
	return latest
}

// newerDate reports whether a names a later date than b. Sheets mix
// dash, dot and slash spellings, so lexical order is only a fallback
// for dates no accepted layout parses.
func newerDate(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	ta, oka := parseDate(a)
	tb, okb := parseDate(b)
	if oka && okb {
		return ta.After(tb)
	}
	return a > b
}

// Package sheetfetch retrieves a spreadsheet export over HTTP, parses it into
// a queryable document and gates refetches behind a short-lived cache.
//
// All network and parse failures are absorbed here: callers only ever see
// "document" or "no document yet", never an error they must branch on.
package sheetfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hogarboard/internal/sheetgrid"

	"github.com/sirupsen/logrus"
)

// sheetsHostMarker identifies spreadsheet-editor URLs that need rewriting to
// their CSV export form.
const sheetsHostMarker = "docs.google.com/spreadsheets"

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		sheetgrid.SetLogger(logger)
	}
}

// Document is the queryable result of one ingest pass: the parsed grid plus
// address resolution bound to it. Read-only to consumers.
type Document struct {
	Grid      *sheetgrid.Grid
	FetchedAt time.Time
}

// Cell resolves a spreadsheet address ("B7") against the document's grid.
func (d *Document) Cell(address string) string {
	if d == nil {
		return ""
	}
	return d.Grid.Cell(address)
}

// Fetcher retrieves and parses the active source document.
type Fetcher struct {
	client *http.Client
	cache  *DocumentCache
	now    Clock
}

// NewFetcher creates a Fetcher around the given cache. A nil client falls
// back to a default with a sane timeout; a nil clock to time.Now.
func NewFetcher(client *http.Client, cache *DocumentCache, now Clock) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if now == nil {
		now = time.Now
	}
	if cache == nil {
		cache = NewDocumentCache(DefaultTTL, now)
	}
	return &Fetcher{client: client, cache: cache, now: now}
}

// Fetch returns the current document for sourceURL, consulting the freshness
// cache before touching the network. It returns (nil, false) for a blank URL
// and on any network or HTTP failure; it never returns an error because the
// view layer treats absence as "no data yet".
func (f *Fetcher) Fetch(ctx context.Context, sourceURL string) (*Document, bool) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, false
	}

	if doc, ok := f.cache.Get(); ok {
		return doc, true
	}

	requestURL := ExportURL(sourceURL, f.now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		log.WithError(err).WithField("url", sourceURL).Warn("Invalid sheet URL")
		return nil, false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("Sheet fetch failed")
		return nil, false
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Warn("Sheet fetch returned non-2xx status")
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("Failed to read sheet response body")
		return nil, false
	}

	doc := &Document{
		Grid:      sheetgrid.Parse(string(body)),
		FetchedAt: f.now(),
	}
	f.cache.Put(doc)

	log.WithFields(logrus.Fields{
		"rows": doc.Grid.NumRows(),
		"url":  sourceURL,
	}).Debug("Sheet document refreshed")
	return doc, true
}

// ExportURL rewrites a spreadsheet-editor URL into its CSV export form and
// appends a coarse cache-buster bucketed to 10 seconds. The bucket cooperates
// with intermediary HTTP caches without defeating the freshness cache.
func ExportURL(sourceURL string, now time.Time) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return sourceURL
	}

	q := u.Query()
	if strings.Contains(sourceURL, sheetsHostMarker) && q.Get("format") == "" && !strings.Contains(u.Path, "/export") {
		q.Set("format", "csv")
	}
	q.Set("cb", fmt.Sprintf("%d", now.UnixMilli()/10_000))
	u.RawQuery = q.Encode()
	return u.String()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref queries the Crossref works API for open-access journal
// articles matching a journal/date/license filter.
package crossref

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/JamieEStokes/angew-open-access-tracker/internal/httputil"
	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

// worksAPIBase is the Crossref works endpoint. Declared as a var so tests
// can substitute an httptest server.
var worksAPIBase = "https://api.crossref.org/works"

// selectFields limits the response to the fields the pipeline consumes.
const selectFields = "DOI,title,author,issued,URL,license,abstract"

// doiPattern matches DOIs: "10.1002/anie.202500001". Registrant codes are
// usually four digits or more, but shorter ones exist in the wild.
var doiPattern = regexp.MustCompile(`^10\.\d{1,9}/[^\s]+$`)

// ValidDOI reports whether s looks like a DOI.
func ValidDOI(s string) bool {
	return doiPattern.MatchString(s)
}

// Filter describes one Crossref works query. Only items carrying a license
// URL are requested, which is how the tracker selects open-access papers.
type Filter struct {
	// Journal is matched exactly against container-title.
	Journal string `yaml:"journal"`

	// FromDate is the inclusive publication date lower bound (YYYY-MM-DD).
	FromDate string `yaml:"from_date"`

	// Query is an optional free-text query. Whether it narrows the filtered
	// set is upstream-controlled; it is passed through verbatim when set.
	Query string `yaml:"query,omitempty"`

	// Rows caps the number of results for the single requested page.
	Rows int `yaml:"rows"`

	// JournalArticlesOnly restricts results to type:journal-article.
	JournalArticlesOnly bool `yaml:"journal_articles_only"`
}

// Client queries the Crossref works API.
type Client struct {
	Client *http.Client
	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto    string
	UserAgent string
}

// New returns a Client configured from cfg.
func New(cfg types.FetchConfig) *Client {
	return &Client{
		Client:    &http.Client{Timeout: cfg.Timeout},
		Mailto:    cfg.Mailto,
		UserAgent: cfg.UserAgent,
	}
}

// Fetch issues one works query and returns the raw items. Results are
// requested sorted by publication date descending; ordering is best-effort
// and upstream-controlled. Any network failure or non-success status fails
// the fetch; there are no partial results.
func (c *Client) Fetch(ctx context.Context, filter Filter) ([]Work, error) {
	params := url.Values{
		"filter": {buildFilterTerms(filter)},
		"rows":   {fmt.Sprintf("%d", rowCap(filter.Rows))},
		"sort":   {"published"},
		"order":  {"desc"},
		"select": {selectFields},
	}
	if filter.Query != "" {
		params.Set("query", filter.Query)
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	reqURL := worksAPIBase + "?" + params.Encode()

	var wr worksResponse
	if err := httputil.GetJSON(ctx, c.Client, reqURL, c.UserAgent, &wr); err != nil {
		return nil, fmt.Errorf("Crossref works query: %w", err)
	}
	return wr.Message.Items, nil
}

// buildFilterTerms renders the structured filter as Crossref filter syntax.
// license.url:* keeps only items that declare a license URL.
func buildFilterTerms(f Filter) string {
	terms := []string{
		"container-title:" + f.Journal,
		"license.url:*",
	}
	if f.FromDate != "" {
		terms = append(terms, "from-pub-date:"+f.FromDate)
	}
	if f.JournalArticlesOnly {
		terms = append(terms, "type:journal-article")
	}
	return strings.Join(terms, ",")
}

func rowCap(rows int) int {
	if rows <= 0 {
		return 50
	}
	return rows
}

// Crossref API JSON structures.
type worksResponse struct {
	Message worksMessage `json:"message"`
}

type worksMessage struct {
	Items []Work `json:"items"`
}

// Work is one raw article item as returned by Crossref.
type Work struct {
	DOI      string        `json:"DOI"`
	Title    []string      `json:"title"`
	Author   []WorkAuthor  `json:"author"`
	Issued   WorkDate      `json:"issued"`
	URL      string        `json:"URL"`
	License  []WorkLicense `json:"license"`
	Abstract string        `json:"abstract"`
}

// WorkAuthor holds one contributor. Family may be absent for group authors.
type WorkAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// WorkDate holds a Crossref partial date: year, year-month, or full date.
type WorkDate struct {
	DateParts [][]int `json:"date-parts"`
}

// Parts returns the first date-parts entry, or nil when absent.
func (d WorkDate) Parts() []int {
	if len(d.DateParts) == 0 {
		return nil
	}
	return d.DateParts[0]
}

// WorkLicense holds one license entry.
type WorkLicense struct {
	URL string `json:"URL"`
}

// LicenseURL returns the first license URL on the item, or "".
func (w Work) LicenseURL() string {
	if len(w.License) == 0 {
		return ""
	}
	return w.License[0].URL
}

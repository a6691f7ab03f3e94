// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package europepmc looks up paper abstracts in the Europe PMC REST search
// service. Lookups are best-effort: the pipeline treats every failure as
// "no abstract found" and never aborts a run over one.
package europepmc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JamieEStokes/angew-open-access-tracker/internal/httputil"
	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

// searchAPIBase is the Europe PMC search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchAPIBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// Result holds the outcome of an abstract lookup. Found is false when the
// service answered but had no abstract for the DOI; transport and decode
// failures are reported through the error return instead, so the two stay
// distinguishable even though callers may collapse them.
type Result struct {
	Abstract string
	Found    bool
}

// Client queries the Europe PMC search API.
type Client struct {
	Client    *http.Client
	UserAgent string
}

// New returns a Client configured from cfg.
func New(cfg types.EnrichConfig) *Client {
	return &Client{
		Client:    &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
	}
}

// Lookup searches Europe PMC for the DOI and returns the first matching
// abstract, whitespace-trimmed. One synchronous request per call; the caller
// is responsible for pacing consecutive lookups.
func (c *Client) Lookup(ctx context.Context, doi string) (Result, error) {
	params := url.Values{
		"query":    {"DOI:" + doi},
		"format":   {"json"},
		"pageSize": {"1"},
	}
	reqURL := searchAPIBase + "?" + params.Encode()

	var sr searchResponse
	if err := httputil.GetJSON(ctx, c.Client, reqURL, c.UserAgent, &sr); err != nil {
		return Result{}, fmt.Errorf("Europe PMC lookup for %s: %w", doi, err)
	}

	for _, r := range sr.ResultList.Result {
		if text := strings.TrimSpace(r.AbstractText); text != "" {
			return Result{Abstract: text, Found: true}, nil
		}
	}
	return Result{}, nil
}

// Europe PMC API JSON structures.
type searchResponse struct {
	ResultList resultList `json:"resultList"`
}

type resultList struct {
	Result []searchResult `json:"result"`
}

type searchResult struct {
	AbstractText string `json:"abstractText"`
}

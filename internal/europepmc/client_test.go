// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package europepmc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func pmcTestServer(statusCode int, body string, gotQuery *string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func TestLookupFound(t *testing.T) {
	var gotQuery string
	ts := pmcTestServer(http.StatusOK, `{
		"resultList": {"result": [
			{"abstractText": "  A new catalyst is reported.\n"}
		]}
	}`, &gotQuery)
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	c := &Client{Client: ts.Client(), UserAgent: "tracker-test/0.1"}
	res, err := c.Lookup(context.Background(), "10.1002/anie.202500001")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.Found {
		t.Fatal("Found = false, want true")
	}
	if res.Abstract != "A new catalyst is reported." {
		t.Errorf("Abstract = %q, want trimmed text", res.Abstract)
	}
	if !strings.Contains(gotQuery, "query=DOI%3A10.1002%2Fanie.202500001") {
		t.Errorf("request query missing DOI term: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "format=json") {
		t.Errorf("request query missing format=json: %s", gotQuery)
	}
}

func TestLookupEmptyResultSet(t *testing.T) {
	ts := pmcTestServer(http.StatusOK, `{"resultList": {"result": []}}`, nil)
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	c := &Client{Client: ts.Client(), UserAgent: "tracker-test/0.1"}
	res, err := c.Lookup(context.Background(), "10.1002/anie.202500009")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.Found {
		t.Error("Found = true for empty result set, want false")
	}
}

func TestLookupResultWithoutAbstract(t *testing.T) {
	ts := pmcTestServer(http.StatusOK, `{
		"resultList": {"result": [{"abstractText": "   "}]}
	}`, nil)
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	c := &Client{Client: ts.Client(), UserAgent: "tracker-test/0.1"}
	res, err := c.Lookup(context.Background(), "10.1002/anie.202500009")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.Found {
		t.Error("Found = true for blank abstract, want false")
	}
}

func TestLookupHTTPError(t *testing.T) {
	ts := pmcTestServer(http.StatusInternalServerError, `boom`, nil)
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	c := &Client{Client: ts.Client(), UserAgent: "tracker-test/0.1"}
	_, err := c.Lookup(context.Background(), "10.1002/anie.202500009")
	if err == nil {
		t.Fatal("Lookup succeeded on HTTP 500, want error")
	}
}

func TestLookupMalformedJSON(t *testing.T) {
	ts := pmcTestServer(http.StatusOK, `{"resultList":`, nil)
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	c := &Client{Client: ts.Client(), UserAgent: "tracker-test/0.1"}
	_, err := c.Lookup(context.Background(), "10.1002/anie.202500009")
	if err == nil {
		t.Fatal("Lookup succeeded on malformed JSON, want error")
	}
}

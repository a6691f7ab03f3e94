// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONDecodesBody(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name": "value", "count": 3}`)
	}))
	defer ts.Close()

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "tracker-test/0.1", &out)
	require.NoError(t, err)
	assert.Equal(t, "value", out.Name)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "tracker-test/0.1", gotUA)
}

func TestGetJSONNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer ts.Close()

	var out map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "tracker-test/0.1", &out)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestGetJSONMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"broken":`)
	}))
	defer ts.Close()

	var out map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "tracker-test/0.1", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")
}

func TestGetJSONContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	err := GetJSON(ctx, ts.Client(), ts.URL, "tracker-test/0.1", &out)
	require.Error(t, err)
}

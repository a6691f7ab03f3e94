// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one tracking pass: fetch, normalize, dedupe, enrich,
// persist. A run either completes or fails outright on the first
// unrecoverable error; enrichment failures never abort it.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JamieEStokes/angew-open-access-tracker/internal/crossref"
	"github.com/JamieEStokes/angew-open-access-tracker/internal/europepmc"
	"github.com/JamieEStokes/angew-open-access-tracker/internal/store"
	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

// Fetcher queries the primary metadata API for one page of raw items.
type Fetcher interface {
	Fetch(ctx context.Context, filter crossref.Filter) ([]crossref.Work, error)
}

// Enricher looks up a missing abstract by DOI.
type Enricher interface {
	Lookup(ctx context.Context, doi string) (europepmc.Result, error)
}

// Deps wires the pipeline's collaborators. Now defaults to time.Now.
type Deps struct {
	Fetcher  Fetcher
	Enricher Enricher
	Store    store.Store
	Now      func() time.Time
}

// Summary holds the counts from one run.
type Summary struct {
	Fetched      int
	New          int
	Duplicate    int
	Invalid      int
	Enriched     int
	LookupErrors int
}

// Run executes one pass and reports per-item progress and a closing summary
// line on w. Fetch and store failures terminate the run; records already
// persisted by earlier runs are never touched.
func Run(ctx context.Context, deps Deps, cfg types.TrackerConfig, filter crossref.Filter, w io.Writer) (Summary, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	var summary Summary

	works, err := deps.Fetcher.Fetch(ctx, filter)
	if err != nil {
		return summary, fmt.Errorf("fetching works: %w", err)
	}
	summary.Fetched = len(works)

	existing, err := deps.Store.ExistingDOIs()
	if err != nil {
		return summary, fmt.Errorf("reading store: %w", err)
	}

	fresh := dedupe(works, existing, &summary)

	enrich(ctx, deps.Enricher, fresh, cfg.Enrich.LookupDelay, &summary, w)

	if len(fresh) == 0 {
		fmt.Fprintln(w, "No new papers found.")
		return summary, nil
	}

	retrieved := now()
	for i := range fresh {
		fresh[i].Retrieved = retrieved
	}
	if err := deps.Store.Append(fresh); err != nil {
		return summary, fmt.Errorf("appending records: %w", err)
	}
	summary.New = len(fresh)

	fmt.Fprintf(w, "Added %d new papers.\n", summary.New)
	return summary, nil
}

// dedupe normalizes the raw works and keeps those with a valid DOI not yet
// in the store. Repeats within the fetched page itself are dropped too.
func dedupe(works []crossref.Work, existing map[string]bool, summary *Summary) []types.Record {
	var fresh []types.Record
	seen := make(map[string]bool, len(existing))
	for k := range existing {
		seen[k] = true
	}

	for _, work := range works {
		rec := Normalize(work)
		if !crossref.ValidDOI(rec.DOI) {
			summary.Invalid++
			continue
		}
		key := store.DedupeKey(rec.DOI)
		if seen[key] {
			summary.Duplicate++
			continue
		}
		seen[key] = true
		fresh = append(fresh, rec)
	}
	return fresh
}

// enrich fills missing abstracts from the secondary source, strictly one
// lookup at a time with the configured pause between calls. Every failure
// is recovered locally; records still without text get the sentinel.
func enrich(ctx context.Context, enricher Enricher, records []types.Record, delay time.Duration, summary *Summary, w io.Writer) {
	lookups := 0
	for i := range records {
		if records[i].HasAbstract() {
			continue
		}
		if lookups > 0 && delay > 0 {
			time.Sleep(delay)
		}
		lookups++

		doi := records[i].DOI
		fmt.Fprintf(w, "looking up abstract: %s\n", doi)

		res, err := enricher.Lookup(ctx, doi)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  warning: abstract lookup failed: %v\n", err)
			summary.LookupErrors++
		case res.Found:
			records[i].Abstract = res.Abstract
			summary.Enriched++
			continue
		}
		records[i].Abstract = types.AbstractUnavailable
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JamieEStokes/angew-open-access-tracker/internal/crossref"
	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

// placeholderTitle is recorded when the upstream item carries no title.
const placeholderTitle = "No title"

// markupPattern matches embedded markup tags in Crossref abstracts
// (e.g. "<jats:p>", "</jats:italic>").
var markupPattern = regexp.MustCompile(`<[^>]+>`)

// Normalize maps one raw Crossref work into the Record shape. The retrieval
// timestamp is stamped later, at persistence time.
func Normalize(w crossref.Work) types.Record {
	return types.Record{
		DOI:        strings.TrimSpace(w.DOI),
		Title:      normalizeTitle(w.Title),
		Authors:    surnames(w.Author),
		Published:  joinDateParts(w.Issued.Parts()),
		SourceURL:  w.URL,
		LicenseURL: w.LicenseURL(),
		Abstract:   stripMarkup(w.Abstract),
	}
}

// normalizeTitle joins the title parts, falling back to the placeholder.
func normalizeTitle(parts []string) string {
	title := strings.TrimSpace(strings.Join(parts, " "))
	if title == "" {
		return placeholderTitle
	}
	return title
}

// surnames extracts author family names in source order, skipping
// contributors without one (group authors carry only a literal name).
func surnames(authors []crossref.WorkAuthor) []string {
	var names []string
	for _, a := range authors {
		if a.Family != "" {
			names = append(names, a.Family)
		}
	}
	return names
}

// joinDateParts renders a partial date as text: year, year-month, or full
// date, joined with "-". Missing or zero components are omitted.
func joinDateParts(parts []int) string {
	var rendered []string
	for _, p := range parts {
		if p == 0 {
			continue
		}
		rendered = append(rendered, strconv.Itoa(p))
	}
	return strings.Join(rendered, "-")
}

// stripMarkup removes embedded markup tags and collapses whitespace.
func stripMarkup(s string) string {
	s = markupPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

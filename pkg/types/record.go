// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AbstractUnavailable is persisted when neither Crossref nor Europe PMC
// provides an abstract for a paper.
const AbstractUnavailable = "Abstract not available"

// Record holds one open-access paper as persisted in the store. Records are
// written once and never updated.
type Record struct {
	// DOI is the dedupe key. Lowercased for comparison, stored as received.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the paper title, or "No title" when the item carried none.
	Title string `json:"title" yaml:"title"`

	// Authors lists author surnames in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Published is the partial publication date as text: date-parts joined
	// with "-", missing components omitted (e.g. "2024", "2024-7").
	Published string `json:"published" yaml:"published"`

	// SourceURL is the publisher landing page.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// LicenseURL is the first license URL carried by the item.
	LicenseURL string `json:"license_url" yaml:"license_url"`

	// Abstract is the abstract text, or AbstractUnavailable.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Retrieved is when the run that captured this record persisted it.
	Retrieved time.Time `json:"retrieved" yaml:"retrieved"`
}

// HasAbstract reports whether the record already carries usable abstract text.
func (r Record) HasAbstract() bool {
	return r.Abstract != "" && r.Abstract != AbstractUnavailable
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists tracked paper records. Two backends implement the
// same append-only contract: a delimited CSV file and a SQLite database.
package store

import (
	"fmt"
	"strings"

	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

// Store reads previously recorded DOIs and appends new records. Uniqueness
// is enforced by the pipeline's pre-append dedupe, not by the store; rows
// are never updated or deleted.
type Store interface {
	// ExistingDOIs returns the set of DOIs already recorded, keyed by
	// lowercased DOI. A store that does not exist yet yields an empty set.
	ExistingDOIs() (map[string]bool, error)

	// Append writes one row per record, creating the store on first use.
	// Callers only invoke Append with a non-empty batch.
	Append(records []types.Record) error

	Close() error
}

// Open returns the store backend selected by cfg. An empty backend defaults
// to CSV.
func Open(cfg types.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case types.BackendCSV, "":
		return NewCSVStore(cfg.Path), nil
	case types.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// DedupeKey returns the comparison form of a DOI. DOIs are case-insensitive,
// so keys are lowercased.
func DedupeKey(doi string) string {
	return strings.ToLower(strings.TrimSpace(doi))
}

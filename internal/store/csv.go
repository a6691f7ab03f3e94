// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

// csvHeader is the fixed column order. It must remain stable across runs for
// a given store file; appended rows always follow it.
var csvHeader = []string{"Title", "Authors", "DOI", "URL", "License", "Published", "Abstract", "Retrieved"}

// retrievedTimeFmt renders the retrieval timestamp in the CSV store.
const retrievedTimeFmt = "2006-01-02 15:04"

// CSVStore persists records in a UTF-8 delimited file with a header row.
type CSVStore struct {
	path string
}

// NewCSVStore returns a store backed by the CSV file at path. The file is
// created on first append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// ExistingDOIs reads the store file and returns the recorded DOIs. A missing
// file is a normal empty store. A file whose header lacks a DOI column, or
// with unparseable rows, is an error: dedupe correctness cannot be
// guaranteed against a corrupt store.
func (s *CSVStore) ExistingDOIs() (map[string]bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("opening store %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading store header: %w", err)
	}

	// Header matching is case-insensitive so files written by earlier
	// tracker versions with lowercase columns still load.
	doiCol := -1
	for i, name := range header {
		if strings.EqualFold(name, "DOI") {
			doiCol = i
			break
		}
	}
	if doiCol < 0 {
		return nil, fmt.Errorf("store %s has no DOI column", s.path)
	}

	dois := make(map[string]bool)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading store row: %w", err)
		}
		if doiCol < len(row) {
			dois[DedupeKey(row[doiCol])] = true
		}
	}
	return dois, nil
}

// Append opens the file for append, writing the header first when the file
// is new or empty. Each record becomes one complete row; any write failure
// is returned and is fatal for the run.
func (s *CSVStore) Append(records []types.Record) error {
	needHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening store %s for append: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return fmt.Errorf("writing store header: %w", err)
		}
	}
	for _, rec := range records {
		row := []string{
			rec.Title,
			strings.Join(rec.Authors, ", "),
			rec.DOI,
			rec.SourceURL,
			rec.LicenseURL,
			rec.Published,
			rec.Abstract,
			rec.Retrieved.Format(retrievedTimeFmt),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing record %s: %w", rec.DOI, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// Close is a no-op: the file is opened and closed per operation.
func (s *CSVStore) Close() error { return nil }

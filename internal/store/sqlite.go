// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

// SQLiteStore persists records in a SQLite database, one row per paper.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and bootstraps the
// schema if it does not exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		doi TEXT PRIMARY KEY,
		title TEXT,
		authors TEXT,
		published TEXT,
		url TEXT,
		license TEXT,
		abstract TEXT,
		retrieved TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// ExistingDOIs returns all recorded DOIs keyed by lowercased DOI.
func (s *SQLiteStore) ExistingDOIs() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT doi FROM papers`)
	if err != nil {
		return nil, fmt.Errorf("querying recorded DOIs: %w", err)
	}
	defer rows.Close()

	dois := make(map[string]bool)
	for rows.Next() {
		var doi string
		if err := rows.Scan(&doi); err != nil {
			return nil, fmt.Errorf("scanning DOI: %w", err)
		}
		dois[DedupeKey(doi)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recorded DOIs: %w", err)
	}
	return dois, nil
}

// Append inserts all records inside one transaction, so a failed run leaves
// no partial rows behind.
func (s *SQLiteStore) Append(records []types.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO papers (doi, title, authors, published, url, license, abstract, retrieved)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		authorsJSON, _ := json.Marshal(rec.Authors)
		_, err := stmt.Exec(
			rec.DOI, rec.Title, string(authorsJSON), rec.Published,
			rec.SourceURL, rec.LicenseURL, rec.Abstract,
			rec.Retrieved.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.DOI, err)
		}
	}
	return tx.Commit()
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilterFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "angew.yaml")

	want := Filter{
		Journal:             "Angewandte Chemie International Edition",
		FromDate:            "2025-07-01",
		Query:               "organic chemistry",
		Rows:                50,
		JournalArticlesOnly: true,
	}
	if err := WriteFilterFile(path, want); err != nil {
		t.Fatalf("WriteFilterFile: %v", err)
	}

	got, err := ReadFilterFile(path)
	if err != nil {
		t.Fatalf("ReadFilterFile: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestReadFilterFileMissing(t *testing.T) {
	_, err := ReadFilterFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("ReadFilterFile succeeded on missing file, want error")
	}
}

func TestReadFilterFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("journal: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFilterFile(path)
	if err == nil {
		t.Fatal("ReadFilterFile succeeded on malformed YAML, want error")
	}
}

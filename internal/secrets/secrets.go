// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads operator contact details from a directory of
// plain-text files: the filename is the key, the trimmed contents the value.
//
// Supported key file: crossref-mailto (polite-pool contact email).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MailtoKey is the file holding the Crossref polite-pool email.
const MailtoKey = "crossref-mailto"

// Lookup returns the trimmed contents of dir/key, or "" when the directory
// or file is missing. Only genuine read failures are reported.
func Lookup(dir, key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Mailto returns the polite-pool email configured in dir, or "" when none
// is configured. Read failures are reported as a warning on stderr rather
// than aborting, since the email only affects upstream request routing.
func Mailto(dir string) string {
	value, err := Lookup(dir, MailtoKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return ""
	}
	return value
}

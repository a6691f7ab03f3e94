// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Filter files let a configured journal watch be saved to disk and reused
// across runs without repeating the flags.

// WriteFilterFile saves a filter to a YAML file.
func WriteFilterFile(path string, filter Filter) error {
	data, err := yaml.Marshal(&filter)
	if err != nil {
		return fmt.Errorf("marshaling filter file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFilterFile loads a previously saved filter from disk.
func ReadFilterFile(path string) (Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Filter{}, fmt.Errorf("reading filter file: %w", err)
	}
	var filter Filter
	if err := yaml.Unmarshal(data, &filter); err != nil {
		return Filter{}, fmt.Errorf("parsing filter file: %w", err)
	}
	return filter, nil
}

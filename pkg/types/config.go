package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "angew-tracker/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the Crossref fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Journal is matched exactly against the Crossref container-title field.
	Journal string `json:"journal" yaml:"journal"`

	// FromDate is the inclusive publication date lower bound (YYYY-MM-DD).
	FromDate string `json:"from_date" yaml:"from_date"`

	// Query is an optional free-text query passed through to Crossref.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`

	// Rows caps the number of results requested (default 50).
	Rows int `json:"rows" yaml:"rows"`

	// Mailto is the polite-pool contact email sent with requests.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`
}

// EnrichConfig holds settings for the Europe PMC enrichment stage.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// LookupDelay is the pause between consecutive lookups (default 1s).
	LookupDelay time.Duration `json:"lookup_delay" yaml:"lookup_delay"`
}

// StoreBackend identifies the record store implementation.
type StoreBackend string

const (
	BackendCSV    StoreBackend = "csv"
	BackendSQLite StoreBackend = "sqlite"
)

// StoreConfig holds settings for the record store.
type StoreConfig struct {
	// Backend selects the store implementation: csv or sqlite.
	Backend StoreBackend `json:"backend" yaml:"backend"`

	// Path is the store file location (CSV file or SQLite database).
	Path string `json:"path" yaml:"path"`
}

// TrackerConfig groups all stage configurations for one pipeline run.
type TrackerConfig struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Enrich EnrichConfig `json:"enrich" yaml:"enrich"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}

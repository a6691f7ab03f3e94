package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JamieEStokes/angew-open-access-tracker/internal/crossref"
	"github.com/JamieEStokes/angew-open-access-tracker/internal/europepmc"
	"github.com/JamieEStokes/angew-open-access-tracker/internal/pipeline"
	"github.com/JamieEStokes/angew-open-access-tracker/internal/store"
	"github.com/JamieEStokes/angew-open-access-tracker/pkg/types"
)

const (
	defaultJournal       = "Angewandte Chemie International Edition"
	defaultFromDate      = "2025-07-01"
	defaultRows          = 50
	defaultOutput        = "angew_open_access_papers.csv"
	defaultFetchTimeout  = 30 * time.Second
	defaultLookupTimeout = 10 * time.Second
	defaultLookupDelay   = 1 * time.Second
)

func init() {
	rootCmd.Flags().String("journal", defaultJournal, "journal name matched against container-title")
	rootCmd.Flags().String("from", defaultFromDate, "publication date lower bound (YYYY-MM-DD)")
	rootCmd.Flags().String("query", "", "optional free-text query")
	rootCmd.Flags().Int("rows", defaultRows, "maximum number of results to fetch")
	rootCmd.Flags().Bool("articles-only", false, "restrict results to type:journal-article")
	rootCmd.Flags().String("output", defaultOutput, "store file path (CSV file or SQLite database)")
	rootCmd.Flags().String("store", string(types.BackendCSV), "store backend: csv or sqlite")
	rootCmd.Flags().Duration("timeout", defaultFetchTimeout, "Crossref request timeout")
	rootCmd.Flags().Duration("delay", defaultLookupDelay, "pause between abstract lookups")
	rootCmd.Flags().String("filter-file", "", "load the journal filter from a YAML file")
	rootCmd.Flags().String("save-filter", "", "save the effective filter to a YAML file before running")
}

// setConfigDefaults seeds viper so config-file and environment values fall
// back to the compiled-in configuration.
func setConfigDefaults() {
	viper.SetDefault("fetch.journal", defaultJournal)
	viper.SetDefault("fetch.from_date", defaultFromDate)
	viper.SetDefault("fetch.query", "")
	viper.SetDefault("fetch.rows", defaultRows)
	viper.SetDefault("fetch.articles_only", false)
	viper.SetDefault("fetch.timeout", defaultFetchTimeout)
	viper.SetDefault("enrich.timeout", defaultLookupTimeout)
	viper.SetDefault("enrich.lookup_delay", defaultLookupDelay)
	viper.SetDefault("store.backend", string(types.BackendCSV))
	viper.SetDefault("store.path", defaultOutput)
}

func runTracker(cmd *cobra.Command, args []string) error {
	cfg := trackerConfig(cmd)

	filter, err := effectiveFilter(cmd, cfg.Fetch)
	if err != nil {
		return err
	}

	if path := flagString(cmd, "save-filter"); path != "" {
		if err := crossref.WriteFilterFile(path, filter); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved filter to", path)
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	deps := pipeline.Deps{
		Fetcher:  crossref.New(cfg.Fetch),
		Enricher: europepmc.New(cfg.Enrich),
		Store:    st,
	}

	fmt.Fprintf(os.Stdout, "Fetching %s papers since %s...\n", filter.Journal, filter.FromDate)

	_, err = pipeline.Run(cmd.Context(), deps, cfg, filter, os.Stdout)
	return err
}

// trackerConfig assembles the run configuration: flags override environment
// and config-file values, which override the compiled-in defaults.
func trackerConfig(cmd *cobra.Command) types.TrackerConfig {
	userAgent := "angew-tracker/" + version

	return types.TrackerConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   flagDuration(cmd, "timeout", "fetch.timeout"),
				UserAgent: userAgent,
			},
			Journal:  settingString(cmd, "journal", "fetch.journal"),
			FromDate: settingString(cmd, "from", "fetch.from_date"),
			Query:    settingString(cmd, "query", "fetch.query"),
			Rows:     settingInt(cmd, "rows", "fetch.rows"),
			Mailto:   mailto,
		},
		Enrich: types.EnrichConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("enrich.timeout"),
				UserAgent: userAgent,
			},
			LookupDelay: flagDuration(cmd, "delay", "enrich.lookup_delay"),
		},
		Store: types.StoreConfig{
			Backend: types.StoreBackend(settingString(cmd, "store", "store.backend")),
			Path:    settingString(cmd, "output", "store.path"),
		},
	}
}

// effectiveFilter builds the Crossref filter from the configuration, or
// loads it from a filter file when one is given.
func effectiveFilter(cmd *cobra.Command, cfg types.FetchConfig) (crossref.Filter, error) {
	if path := flagString(cmd, "filter-file"); path != "" {
		return crossref.ReadFilterFile(path)
	}

	articlesOnly, _ := cmd.Flags().GetBool("articles-only")
	if !cmd.Flags().Changed("articles-only") {
		articlesOnly = viper.GetBool("fetch.articles_only")
	}

	return crossref.Filter{
		Journal:             cfg.Journal,
		FromDate:            cfg.FromDate,
		Query:               cfg.Query,
		Rows:                cfg.Rows,
		JournalArticlesOnly: articlesOnly,
	}, nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func settingString(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		return flagString(cmd, flag)
	}
	return viper.GetString(key)
}

func settingInt(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

func flagDuration(cmd *cobra.Command, flag, key string) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	return viper.GetDuration(key)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the angew-tracker CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JamieEStokes/angew-open-access-tracker/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// mailto holds the Crossref polite-pool email loaded from .secrets/ at startup.
var mailto string

// rootCmd is the base command. Running it with no arguments executes one
// tracking pass.
var rootCmd = &cobra.Command{
	Use:   "angew-tracker",
	Short: "Track open-access Angewandte Chemie papers",
	Long: `angew-tracker queries Crossref for open-access journal articles matching a
journal/date/license filter, backfills missing abstracts from Europe PMC, and
appends new papers to a persisted store. Papers already recorded are skipped,
so repeated runs only add what is new.

Running the command with no arguments performs one pass with the configured
filter. Configuration comes from flags, ANGEW_TRACKER_* environment variables,
or an angew-tracker.yaml config file.`,
	Args: cobra.NoArgs,
	RunE: runTracker,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		mailto = secrets.Mailto(secretsDir)
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./angew-tracker.yaml or ~/.config/angew-tracker/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory holding the crossref-mailto secret")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("angew-tracker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "angew-tracker"))
		}
	}

	viper.SetEnvPrefix("ANGEW_TRACKER")
	viper.AutomaticEnv()

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

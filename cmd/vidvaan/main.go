// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vidvaan CLI: search academic
// repositories for a topic, browse and filter the merged results, export
// them, summarize them, or serve the same session over HTTP.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vidvaan/internal/config"
	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by PersistentPreRunE before any subcommand runs.
var (
	v      *viper.Viper
	cfg    types.Config
	logger zerolog.Logger
)

// rootCmd is the base command for the vidvaan CLI.
var rootCmd = &cobra.Command{
	Use:   "vidvaan",
	Short: "Search DBLP, ArXiv, OpenAlex, and OpenLibrary in one go",
	Long: `vidvaan queries four academic repositories (DBLP, ArXiv, OpenAlex,
OpenLibrary) for a topic at once, merges the results into one table, and
lets you filter, page through, export, and summarize them.

Each repository is queried independently: one that fails or times out is
reported and the others still contribute their results.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vidvaan.yaml or ~/.config/vidvaan/vidvaan.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", config.SecretsDir, "directory of secret files")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	v = config.New(cfgFile)

	used, err := config.Read(v)
	if err != nil {
		return err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		v.Set("logging.level", level)
	}

	c, err := config.Decode(v)
	if err != nil {
		return err
	}
	logger = observability.NewLogger(c.Logging)
	if used != "" {
		logger.Debug().Str("file", used).Msg("using config file")
	}

	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	secrets, err := config.LoadSecrets(secretsDir, logger)
	if err != nil {
		return err
	}
	if len(secrets) > 0 {
		keys := make([]string, 0, len(secrets))
		for k := range secrets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logger.Debug().Strs("keys", keys).Msg("loaded secrets")
	}
	config.ApplySecrets(&c, secrets)

	cfg = c
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

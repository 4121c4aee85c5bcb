// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lelouchsola/arxiv-digest/internal/mail"
	"github.com/lelouchsola/arxiv-digest/internal/secrets"
	"github.com/lelouchsola/arxiv-digest/internal/summarize"
	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "arxiv-digest/0.1"
)

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Daily arXiv paper digest with AI summaries",
	Long: `arxiv-digest fetches recently submitted arXiv papers for a set of
categories, scores and deduplicates them, generates AI summaries, and emails
an HTML digest.

The run subcommand executes the full pipeline; preview runs only the
selection core and prints the result without credentials or network calls
beyond the arXiv query.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml or ~/.config/arxiv-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-digest"))
		}
	}

	viper.SetEnvPrefix("ARXIV_DIGEST")
	viper.AutomaticEnv()

	viper.SetDefault("categories", []string{"math.OC", "eess.SY"})
	viper.SetDefault("max_results", 50)
	viper.SetDefault("min_per_category", 1)
	viper.SetDefault("fetch_multiplier", 2)
	viper.SetDefault("min_abstract_length", 100)
	viper.SetDefault("similarity_threshold", 0.85)
	viper.SetDefault("language", "zh")
	viper.SetDefault("smtp_server", "smtp.gmail.com")
	viper.SetDefault("smtp_port", 587)
	viper.SetDefault("deepseek_base_url", summarize.DefaultBaseURL)
	viper.SetDefault("deepseek_model", summarize.DefaultModel)
	viper.SetDefault("archive_dir", "archive")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the pipeline configuration from viper settings,
// the environment, and loaded secrets.
func buildConfig() types.DigestConfig {
	maxAge := time.Duration(0)
	if hours := viper.GetInt("max_age_hours"); hours > 0 {
		maxAge = time.Duration(hours) * time.Hour
	}

	language := types.Language(strings.TrimSpace(envDefault("EMAIL_LANGUAGE", viper.GetString("language"))))

	return types.DigestConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			Categories:      viper.GetStringSlice("categories"),
			MaxResults:      viper.GetInt("max_results"),
			FetchMultiplier: viper.GetInt("fetch_multiplier"),
			MaxAge:          maxAge,
		},
		Score: types.ScoreConfig{
			MinAbstractLength: viper.GetInt("min_abstract_length"),
			Keywords:          viper.GetStringSlice("keywords"),
			Recency:           true,
		},
		Select: types.SelectConfig{
			MaxResults:     viper.GetInt("max_results"),
			MinPerCategory: viper.GetInt("min_per_category"),
		},
		Dedup: types.DedupConfig{
			SimilarityThreshold: viper.GetFloat64("similarity_threshold"),
		},
		Summary: types.SummaryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			BaseURL:  viper.GetString("deepseek_base_url"),
			APIKey:   secrets.Resolve(loadedSecrets, "DEEPSEEK_API_KEY"),
			Model:    viper.GetString("deepseek_model"),
			Language: language,
		},
		Mail: types.MailConfig{
			SMTPHost:   envDefault("SMTP_SERVER", viper.GetString("smtp_server")),
			SMTPPort:   intEnvDefault("SMTP_PORT", viper.GetInt("smtp_port")),
			Sender:     secrets.Resolve(loadedSecrets, "SENDER_EMAIL"),
			Password:   secrets.Resolve(loadedSecrets, "SENDER_PASSWORD"),
			Recipients: mail.ParseRecipients(secrets.Resolve(loadedSecrets, "RECEIVER_EMAIL")),
		},
		Archive: types.ArchiveConfig{
			Dir:      viper.GetString("archive_dir"),
			Disabled: viper.GetBool("archive_disabled"),
		},
	}
}

// envDefault returns the environment value for key, or fallback when unset.
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intEnvDefault returns the integer environment value for key, or fallback
// when unset or unparsable.
func intEnvDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/lelouchsola/arxiv-digest/internal/archive"
	"github.com/lelouchsola/arxiv-digest/internal/digest"
	"github.com/lelouchsola/arxiv-digest/internal/fetch"
	"github.com/lelouchsola/arxiv-digest/internal/mail"
	"github.com/lelouchsola/arxiv-digest/internal/summarize"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full daily digest pipeline",
	Long: `Run fetches recent papers for every configured category, scores and
selects them, generates AI summaries, renders the HTML digest, and emails
it. Missing credentials halt the run before any network activity.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}

	sender, err := mail.NewSender(cfg.Mail)
	if err != nil {
		return err
	}

	deps := digest.Deps{
		Source: &fetch.ArxivClient{Client: client},
		Backend: &summarize.DeepSeekBackend{
			BaseURL: cfg.Summary.BaseURL,
			APIKey:  cfg.Summary.APIKey,
			Model:   cfg.Summary.Model,
			Client:  &http.Client{Timeout: cfg.Summary.Timeout},
		},
		Mailer: sender,
	}

	if !cfg.Archive.Disabled {
		store, err := archive.Open(cfg.Archive.Dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: archive unavailable: %v\n", err)
		} else {
			defer store.Close()
			deps.Archive = store
		}
	}

	result, err := digest.Run(cmd.Context(), cfg, deps, os.Stdout)
	if err != nil {
		return err
	}

	if !result.Delivered {
		fmt.Fprintln(os.Stderr, "digest was generated but not delivered")
	}
	return nil
}

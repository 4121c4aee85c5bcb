// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/lelouchsola/arxiv-digest/internal/fetch"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe arXiv connectivity",
	Long: `Check verifies that arxiv.org and its API endpoint are reachable and
that a small category query returns papers. Useful before scheduling the
daily run on a new host.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("category", "cs.AI", "category used for the query probe")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	failures := 0

	probe := func(name string, fn func() error) {
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stdout, "FAIL  %s: %v\n", name, err)
			failures++
			return
		}
		fmt.Fprintf(os.Stdout, "ok    %s\n", name)
	}

	probe("arxiv.org reachable", func() error {
		return getOK(client, "https://arxiv.org")
	})
	probe("API endpoint reachable", func() error {
		return getOK(client, "https://export.arxiv.org/api/query?search_query=all:electron&max_results=1")
	})

	category, _ := cmd.Flags().GetString("category")
	probe(fmt.Sprintf("category query (%s)", category), func() error {
		src := &fetch.ArxivClient{Client: client}
		papers, err := src.Recent(cmd.Context(), category, 3, cfg.Fetch.HTTPConfig)
		if err != nil {
			return err
		}
		if len(papers) == 0 {
			return fmt.Errorf("query returned no papers")
		}
		for _, p := range papers {
			fmt.Fprintf(os.Stdout, "      %s  %s\n", p.Published.Format("2006-01-02"), truncate(p.Title, 70))
		}
		return nil
	})

	if failures > 0 {
		return fmt.Errorf("%d probe(s) failed", failures)
	}
	return nil
}

// getOK issues a GET and checks for HTTP 200.
func getOK(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

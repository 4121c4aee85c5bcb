// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lelouchsola/arxiv-digest/internal/digest"
	"github.com/lelouchsola/arxiv-digest/internal/fetch"
	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the selection core and print the result",
	Long: `Preview fetches, scores, selects, and deduplicates papers exactly as a
full run would, then prints the selection instead of summarizing and
emailing it. No AI or SMTP credentials are needed.

A selection saved with --out can be reprinted later with --from, without
re-querying the API.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("json", false, "output the selection as JSON")
	previewCmd.Flags().String("out", "", "save the selection to a YAML digest file")
	previewCmd.Flags().String("from", "", "print a previously saved digest file instead of fetching")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		f, err := digest.ReadFile(from)
		if err != nil {
			return err
		}
		return printSelection(f.Papers, asJSON, os.Stdout)
	}

	cfg := buildConfig()

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	src := &fetch.ArxivClient{Client: client}

	selected, err := digest.SelectPapers(cmd.Context(), src, cfg, time.Now(), os.Stderr)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return digest.WriteFile(out, cfg, selected)
	}

	return printSelection(selected, asJSON, os.Stdout)
}

func printSelection(papers []types.ScoredPaper, asJSON bool, w io.Writer) error {
	if asJSON {
		return digest.FormatJSON(papers, w)
	}
	digest.FormatTable(papers, w)
	return nil
}

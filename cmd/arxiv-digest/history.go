// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lelouchsola/arxiv-digest/internal/archive"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously sent digests",
	Long: `History lists digests recorded in the local archive after delivery.
The archive never influences selection; it exists for inspection only.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of digests to list")
	historyCmd.Flags().Int64("show", 0, "print the HTML body of one archived digest by id")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	store, err := archive.Open(cfg.Archive.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if id, _ := cmd.Flags().GetInt64("show"); id > 0 {
		entry, err := store.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, entry.HTML)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No digests archived yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-6s  %-6s  %s\n", "ID", "Sent", "Lang", "Papers", "Subject")
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-6s  %-6d  %s\n",
			e.ID, e.SentAt.Local().Format("2006-01-02 15:04"), e.Language, e.PaperCount, e.Subject)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// FormatTable writes the selection as a human-readable table to w.
func FormatTable(papers []types.ScoredPaper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers selected.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Published", "Score", "Category")
	fmt.Fprintln(w, strings.Repeat("-", 116))

	for i, p := range papers {
		title := p.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %-6.1f  %s\n",
			i+1, title, formatAuthors(p.Authors), published, p.Score, p.SourceCategory)
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// FormatJSON writes the selection as indented JSON to w.
func FormatJSON(papers []types.ScoredPaper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncateTo(authors[0], 20)
	default:
		return truncateTo(authors[0], 14) + " et al."
	}
}

func truncateTo(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

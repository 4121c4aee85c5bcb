// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes near-duplicate papers from the selected set by
// normalized title similarity.
package dedup

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// Normalize returns a lowercased, punctuation-stripped version of the title
// with whitespace collapsed to single spaces.
func Normalize(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity returns a ratio in [0,1] between two titles after
// normalization: twice the longest-common-subsequence length over the summed
// lengths. It is symmetric and 1.0 for identical normalized titles.
func Similarity(a, b string) float64 {
	na := []rune(Normalize(a))
	nb := []rune(Normalize(b))

	if len(na)+len(nb) == 0 {
		return 1.0
	}
	return 2.0 * float64(lcsLen(na, nb)) / float64(len(na)+len(nb))
}

// lcsLen computes the longest-common-subsequence length with a rolling
// single-row table.
func lcsLen(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	row := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0 // row[j-1] from the previous iteration of i
		for j := 1; j <= len(b); j++ {
			cur := row[j]
			if a[i-1] == b[j-1] {
				row[j] = prev + 1
			} else if row[j-1] > row[j] {
				row[j] = row[j-1]
			}
			prev = cur
		}
	}
	return row[len(b)]
}

// Dedup filters the selected papers, comparing each candidate in input order
// against every already-kept paper. The first kept paper whose title
// similarity reaches threshold resolves the collision: the higher-scoring of
// the two survives, replacing the kept entry in place when the newcomer
// wins. Candidates with no collision are appended. Running Dedup on its own
// output removes nothing further.
func Dedup(papers []types.ScoredPaper, threshold float64, w io.Writer) []types.ScoredPaper {
	if threshold <= 0 {
		threshold = 0.85
	}

	var kept []types.ScoredPaper
	for _, p := range papers {
		duplicate := false
		for i, existing := range kept {
			sim := Similarity(p.Title, existing.Title)
			if sim < threshold {
				continue
			}

			fmt.Fprintf(w, "duplicate (%.2f): %q vs %q\n", sim, truncate(existing.Title, 60), truncate(p.Title, 60))
			if p.Score > existing.Score {
				kept[i] = p
				fmt.Fprintln(w, "  kept the higher-scoring version")
			} else {
				fmt.Fprintln(w, "  skipped duplicate")
			}
			duplicate = true
			break
		}
		if !duplicate {
			kept = append(kept, p)
		}
	}
	return kept
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection allocates the per-category quota and fills the remaining
// digest slots by global score ranking.
package selection

import (
	"fmt"
	"io"
	"sort"

	"github.com/lelouchsola/arxiv-digest/internal/score"
	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// Select picks at most cfg.MaxResults papers from the scored pools.
//
// Step 1 walks the categories in configured order and moves up to
// cfg.MinPerCategory top-scoring papers from each into the output. Step 2
// gathers every not-yet-selected paper across all categories, sorts by
// descending score, and appends the best until the cap is reached. Pools
// smaller than the quota or the cap simply yield a smaller output.
//
// Membership is tracked by paper ID, and both sorts are stable, so equal
// scores resolve to the pools' pre-sorted order deterministically.
func Select(pools score.Pools, cfg types.SelectConfig, w io.Writer) []types.ScoredPaper {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}
	minPerCategory := cfg.MinPerCategory
	if minPerCategory <= 0 {
		minPerCategory = 1
	}

	var selected []types.ScoredPaper
	picked := make(map[string]bool)

	// Per-category quota, in configured category order.
	for _, category := range pools.Categories {
		if len(selected) >= maxResults {
			break
		}
		quota := minPerCategory
		if room := maxResults - len(selected); quota > room {
			quota = room
		}
		taken := 0
		for _, p := range pools.ByCategory[category] {
			if taken >= quota {
				break
			}
			selected = append(selected, p)
			picked[p.ID] = true
			taken++
		}
		if taken > 0 {
			fmt.Fprintf(w, "quota: %d from %s\n", taken, category)
		}
	}

	// Fill remaining slots from the global pool by descending score.
	remaining := maxResults - len(selected)
	if remaining > 0 {
		var rest []types.ScoredPaper
		for _, category := range pools.Categories {
			for _, p := range pools.ByCategory[category] {
				if !picked[p.ID] {
					rest = append(rest, p)
				}
			}
		}
		sort.SliceStable(rest, func(i, j int) bool {
			return rest[i].Score > rest[j].Score
		})
		if len(rest) > remaining {
			rest = rest[:remaining]
		}
		selected = append(selected, rest...)
		if len(rest) > 0 {
			fmt.Fprintf(w, "filled %d remaining slots by score\n", len(rest))
		}
	}

	return selected
}

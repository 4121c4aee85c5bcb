// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries the arXiv API per configured category and builds the
// candidate pool for scoring and selection.
package fetch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// Source fetches recent papers for one category. The arXiv client implements
// this; tests supply a mock.
type Source interface {
	Name() string
	Recent(ctx context.Context, category string, maxResults int, cfg types.HTTPConfig) ([]types.Paper, error)
}

// Pools holds the fetched candidates grouped by source category, in the
// configured category order.
type Pools struct {
	Categories []string
	ByCategory map[string][]types.Paper
}

// Total returns the number of candidates across all categories.
func (p Pools) Total() int {
	n := 0
	for _, papers := range p.ByCategory {
		n += len(papers)
	}
	return n
}

// All fetches candidates for every configured category from src. Each
// category gets a single attempt: a failure is logged to w and yields zero
// results for that category while the remaining categories proceed. Papers
// already seen under an earlier category are skipped, so category
// attribution is first-seen-wins. When MaxAge is set, papers older than the
// window at time now are dropped before they enter the pool.
func All(ctx context.Context, src Source, cfg types.FetchConfig, now time.Time, w io.Writer) Pools {
	multiplier := cfg.FetchMultiplier
	if multiplier <= 0 {
		multiplier = 2
	}
	perCategory := cfg.MaxResults * multiplier

	pools := Pools{
		Categories: cfg.Categories,
		ByCategory: make(map[string][]types.Paper, len(cfg.Categories)),
	}
	seen := make(map[string]bool)

	fmt.Fprintf(w, "fetching up to %d papers per category from %s\n", perCategory, src.Name())

	for _, category := range cfg.Categories {
		papers, err := src.Recent(ctx, category, perCategory, cfg.HTTPConfig)
		if err != nil {
			fmt.Fprintf(w, "warning: fetching %s failed: %v\n", category, err)
			continue
		}

		kept := 0
		for _, p := range papers {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true

			if cfg.MaxAge > 0 && tooOld(p, now, cfg.MaxAge) {
				continue
			}

			pools.ByCategory[category] = append(pools.ByCategory[category], p)
			kept++
		}

		fmt.Fprintf(w, "%s: %d fetched, %d kept\n", category, len(papers), kept)
	}

	return pools
}

// tooOld reports whether p was published more than maxAge before now,
// measured in the paper timestamp's location.
func tooOld(p types.Paper, now time.Time, maxAge time.Duration) bool {
	if p.Published.IsZero() {
		return false
	}
	return now.In(p.Published.Location()).Sub(p.Published) > maxAge
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes the heuristic quality score used for selection
// ranking and duplicate tie-breaking.
package score

import (
	"sort"
	"strings"
	"time"

	"github.com/lelouchsola/arxiv-digest/internal/fetch"
	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// Score computes the quality score for one paper. It is deterministic given
// the paper content, now, and the configuration; all terms are additive.
// Empty abstract and author fields contribute their zero-valued terms rather
// than erroring.
func Score(p types.Paper, now time.Time, cfg types.ScoreConfig) float64 {
	s := 0.0

	// Abstract length: longer abstracts usually indicate more detailed work;
	// very short ones are penalized.
	minAbstract := cfg.MinAbstractLength
	if minAbstract <= 0 {
		minAbstract = 100
	}
	switch n := len(p.Abstract); {
	case n > 500:
		s += 2.0
	case n > 300:
		s += 1.0
	case n < minAbstract:
		s -= 2.0
	}

	// Author count.
	switch n := len(p.Authors); {
	case n >= 3 && n <= 8:
		s += 1.0
	case n > 8:
		s += 0.5
	}

	// Keyword bonus: every hit counts, uncapped. A title match is worth more
	// than a match that appears only in the abstract.
	s += keywordBonus(p, cfg)

	// Title length in words.
	switch n := len(strings.Fields(p.Title)); {
	case n < 5:
		s -= 0.5
	case n > 25:
		s -= 0.3
	}

	if cfg.Recency {
		s += recencyTerm(p, now)
	}

	return s
}

// keywordBonus sums the per-keyword bonus over the configured keyword list,
// matching case-insensitive substrings.
func keywordBonus(p types.Paper, cfg types.ScoreConfig) float64 {
	keywords := cfg.Keywords
	if len(keywords) == 0 {
		keywords = types.DefaultKeywords
	}
	titleBonus := cfg.TitleKeywordBonus
	if titleBonus == 0 {
		titleBonus = 0.5
	}
	abstractBonus := cfg.AbstractKeywordBonus
	if abstractBonus == 0 {
		abstractBonus = 0.2
	}

	title := strings.ToLower(p.Title)
	abstract := strings.ToLower(p.Abstract)

	s := 0.0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		switch {
		case strings.Contains(title, kw):
			s += titleBonus
		case strings.Contains(abstract, kw):
			s += abstractBonus
		}
	}
	return s
}

// recencyTerm rewards papers submitted within the last two days and applies
// a growing penalty beyond that. Days-old is computed in the paper
// timestamp's location.
func recencyTerm(p types.Paper, now time.Time) float64 {
	if p.Published.IsZero() {
		return 0
	}
	daysOld := int(now.In(p.Published.Location()).Sub(p.Published).Hours() / 24)
	switch daysOld {
	case 0:
		return 3.0
	case 1:
		return 1.5
	case 2:
		return 0.5
	default:
		return -0.3 * float64(daysOld-2)
	}
}

// Pools scores every candidate pool and sorts each pool by descending score.
// The sort is stable so equal scores keep the fetcher's newest-first order.
type Pools struct {
	Categories []string
	ByCategory map[string][]types.ScoredPaper
}

// All scores the fetched pools at time now.
func All(pools fetch.Pools, now time.Time, cfg types.ScoreConfig) Pools {
	out := Pools{
		Categories: pools.Categories,
		ByCategory: make(map[string][]types.ScoredPaper, len(pools.ByCategory)),
	}

	for category, papers := range pools.ByCategory {
		scored := make([]types.ScoredPaper, 0, len(papers))
		for _, p := range papers {
			scored = append(scored, types.ScoredPaper{Paper: p, Score: Score(p, now, cfg)})
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
		out.ByCategory[category] = scored
	}

	return out
}

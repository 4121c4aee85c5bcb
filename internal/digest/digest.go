// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest wires the pipeline stages into the daily run: fetch, score,
// select, dedup, sort, summarize, render, deliver.
package digest

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/lelouchsola/arxiv-digest/internal/archive"
	"github.com/lelouchsola/arxiv-digest/internal/dedup"
	"github.com/lelouchsola/arxiv-digest/internal/fetch"
	"github.com/lelouchsola/arxiv-digest/internal/render"
	"github.com/lelouchsola/arxiv-digest/internal/score"
	"github.com/lelouchsola/arxiv-digest/internal/selection"
	"github.com/lelouchsola/arxiv-digest/internal/summarize"
	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// Mailer delivers a rendered digest. *mail.Sender implements this; tests
// supply a mock.
type Mailer interface {
	Send(subject, htmlBody string, w io.Writer) error
}

// Archiver records a sent digest. *archive.Store implements this.
type Archiver interface {
	Record(e archive.Entry) error
}

// Deps are the external collaborators of a pipeline run.
type Deps struct {
	Source  fetch.Source
	Backend summarize.Backend
	Mailer  Mailer

	// Archive is optional; nil skips archiving.
	Archive Archiver

	// Now supplies the run time; defaults to time.Now.
	Now func() time.Time
}

// Result reports what a run produced.
type Result struct {
	Papers    []types.SummarizedPaper
	Stats     render.DateStats
	Subject   string
	HTML      string
	Delivered bool
}

// ErrNoPapers is returned when every category fetch came back empty; the
// pipeline halts before scoring and nothing is delivered.
var ErrNoPapers = fmt.Errorf("no papers fetched from any category")

// SelectPapers runs the selection core: fetch all categories, score, apply
// the per-category quota and global fill, drop near-duplicate titles, and
// sort by publication time descending. This is the part of the pipeline the
// preview command exposes without credentials.
func SelectPapers(ctx context.Context, src fetch.Source, cfg types.DigestConfig, now time.Time, w io.Writer) ([]types.ScoredPaper, error) {
	scoreCfg := cfg.Score
	if cfg.Fetch.MaxAge > 0 && scoreCfg.Recency {
		// An absolute age cutoff already bounds candidate age; scoring
		// recency on top of it would double-count.
		fmt.Fprintln(w, "age filter active; recency scoring term disabled")
		scoreCfg.Recency = false
	}

	pools := fetch.All(ctx, src, cfg.Fetch, now, w)
	if pools.Total() == 0 {
		return nil, ErrNoPapers
	}

	scored := score.All(pools, now, scoreCfg)
	selected := selection.Select(scored, cfg.Select, w)
	selected = dedup.Dedup(selected, cfg.Dedup.SimilarityThreshold, w)

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Published.After(selected[j].Published)
	})

	fmt.Fprintf(w, "selected %d papers\n", len(selected))
	logDistribution(selected, w)
	return selected, nil
}

// logDistribution prints the per-category counts of the final selection.
func logDistribution(papers []types.ScoredPaper, w io.Writer) {
	counts := make(map[string]int)
	var order []string
	for _, p := range papers {
		if counts[p.SourceCategory] == 0 {
			order = append(order, p.SourceCategory)
		}
		counts[p.SourceCategory]++
	}
	for _, category := range order {
		fmt.Fprintf(w, "  %s: %d papers\n", category, counts[category])
	}
}

// Run executes the full pipeline. Summarization failures degrade to fallback
// text per paper; a delivery failure is logged and reported through
// Result.Delivered rather than an error, so a scheduler invoking the run
// sees the partial outcome.
func Run(ctx context.Context, cfg types.DigestConfig, deps Deps, w io.Writer) (Result, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	runTime := now()

	selected, err := SelectPapers(ctx, deps.Source, cfg, runTime, w)
	if err != nil {
		return Result{}, err
	}

	stats := render.AnalyzeDates(selected, runTime)
	fmt.Fprintf(w, "dates: %d today, %d yesterday, %d older\n", stats.Today, stats.Yesterday, stats.Older)

	papers := summarize.All(ctx, deps.Backend, selected, cfg.Summary.Language, w)

	html, err := render.HTML(papers, stats, runTime, cfg.Summary.Language)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Papers:  papers,
		Stats:   stats,
		Subject: fmt.Sprintf("📚 arXiv Daily Paper Digest - %s", runTime.Format("2006-01-02")),
		HTML:    html,
	}

	if err := deps.Mailer.Send(result.Subject, result.HTML, w); err != nil {
		fmt.Fprintf(w, "warning: delivery failed: %v\n", err)
		return result, nil
	}
	result.Delivered = true
	fmt.Fprintln(w, "digest delivered")

	if deps.Archive != nil {
		entry := archive.Entry{
			SentAt:     runTime,
			Subject:    result.Subject,
			Language:   string(cfg.Summary.Language),
			PaperCount: len(papers),
			HTML:       result.HTML,
		}
		if err := deps.Archive.Record(entry); err != nil {
			fmt.Fprintf(w, "warning: archiving digest failed: %v\n", err)
		}
	}

	return result, nil
}

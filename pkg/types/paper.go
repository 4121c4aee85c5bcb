// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline.
package types

import "time"

// Paper is one candidate record fetched from arXiv. It is immutable after
// the fetch stage; the scorer produces a ScoredPaper rather than writing
// back into it.
type Paper struct {
	// ID is the arXiv identifier with any version suffix stripped
	// (e.g. "2301.07041"). Unique within a fetch cycle.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract. May be empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the submission timestamp, timezone-aware.
	Published time.Time `json:"published" yaml:"published"`

	// Categories lists all arXiv category tags on the entry.
	Categories []string `json:"categories" yaml:"categories"`

	// SourceCategory is the configured category under which this paper was
	// fetched. When a paper appears under several categories the first
	// fetch wins.
	SourceCategory string `json:"source_category" yaml:"source_category"`

	// PDFURL links to the PDF rendition.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// ScoredPaper pairs a Paper with its quality score. The score is assigned
// exactly once, before selection, and is used both for selection ranking
// and for duplicate tie-breaking.
type ScoredPaper struct {
	Paper `yaml:",inline"`

	Score float64 `json:"score" yaml:"score"`
}

// Summary holds the generated summaries for one paper, keyed by language
// code ("zh", "en"). In single-language mode the map has one entry.
type Summary map[string]string

// SummarizedPaper pairs a scored paper with its generated summaries for
// rendering.
type SummarizedPaper struct {
	ScoredPaper `yaml:",inline"`

	Summary Summary `json:"summary" yaml:"summary"`
}

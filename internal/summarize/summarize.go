// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize generates natural-language paper summaries through a
// Generative AI API.
package summarize

import (
	"context"
	"fmt"
	"io"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// Backend abstracts the Generative AI API so tests can supply a mock. Each
// call summarizes one paper in one language.
type Backend interface {
	Summarize(ctx context.Context, p types.Paper, lang types.Language) (string, error)
}

// fallbackText is substituted when summary generation fails, per language.
var fallbackText = map[types.Language]string{
	types.LangChinese: "摘要生成失败，请直接查看原文。",
	types.LangEnglish: "Summary generation failed. Please read the original paper.",
}

// Fallback returns the fixed failure message for lang.
func Fallback(lang types.Language) string {
	if msg, ok := fallbackText[lang]; ok {
		return msg
	}
	return fallbackText[types.LangEnglish]
}

// One generates the summaries for a single paper in the configured
// language(s). Each language gets a single attempt; a failure is logged to w
// and replaced with the fixed fallback message so the batch continues.
func One(ctx context.Context, backend Backend, p types.ScoredPaper, language types.Language, w io.Writer) types.SummarizedPaper {
	summary := make(types.Summary, 2)
	for _, lang := range language.Codes() {
		text, err := backend.Summarize(ctx, p.Paper, lang)
		if err != nil {
			fmt.Fprintf(w, "warning: summarizing %s (%s) failed: %v\n", p.ID, lang, err)
			text = Fallback(lang)
		}
		summary[string(lang)] = text
	}
	return types.SummarizedPaper{ScoredPaper: p, Summary: summary}
}

// All summarizes every paper sequentially, one API call per paper per
// language, preserving input order.
func All(ctx context.Context, backend Backend, papers []types.ScoredPaper, language types.Language, w io.Writer) []types.SummarizedPaper {
	out := make([]types.SummarizedPaper, 0, len(papers))
	for i, p := range papers {
		fmt.Fprintf(w, "[%d/%d] summarizing %s\n", i+1, len(papers), truncate(p.Title, 70))
		out = append(out, One(ctx, backend, p, language, w))
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

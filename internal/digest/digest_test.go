// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lelouchsola/arxiv-digest/internal/archive"
	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeSource returns canned papers per category.
type fakeSource struct {
	byCategory map[string][]types.Paper
	errs       map[string]error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Recent(ctx context.Context, category string, maxResults int, cfg types.HTTPConfig) ([]types.Paper, error) {
	if err := f.errs[category]; err != nil {
		return nil, err
	}
	return f.byCategory[category], nil
}

// fakeBackend summarizes deterministically or fails outright.
type fakeBackend struct {
	err error
}

func (f *fakeBackend) Summarize(ctx context.Context, p types.Paper, lang types.Language) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "summary of " + p.ID, nil
}

// fakeMailer records the delivered message.
type fakeMailer struct {
	err     error
	subject string
	body    string
	calls   int
}

func (f *fakeMailer) Send(subject, htmlBody string, w io.Writer) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.subject = subject
	f.body = htmlBody
	return nil
}

// fakeArchiver records entries in memory.
type fakeArchiver struct {
	err     error
	entries []archive.Entry
}

func (f *fakeArchiver) Record(e archive.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func paperAt(id, category string, published time.Time, abstract string) types.Paper {
	return types.Paper{
		ID:             id,
		Title:          fmt.Sprintf("Paper %s %s %s", id, id, id),
		Authors:        []string{"A. Author", "B. Author", "C. Author"},
		Abstract:       abstract,
		Published:      published,
		Categories:     []string{category},
		SourceCategory: category,
		PDFURL:         "http://arxiv.org/pdf/" + id,
	}
}

func testConfig() types.DigestConfig {
	return types.DigestConfig{
		Fetch: types.FetchConfig{
			Categories: []string{"math.OC", "eess.SY"},
			MaxResults: 10,
		},
		Score: types.ScoreConfig{
			MinAbstractLength: 100,
			Recency:           true,
		},
		Select: types.SelectConfig{MaxResults: 10, MinPerCategory: 1},
		Dedup:  types.DedupConfig{SimilarityThreshold: 0.85},
		Summary: types.SummaryConfig{
			Language: types.LangEnglish,
		},
	}
}

func TestSelectPapersSortsByPublication(t *testing.T) {
	long := strings.Repeat("x", 400)
	src := &fakeSource{byCategory: map[string][]types.Paper{
		"math.OC": {
			paperAt("older", "math.OC", testNow.Add(-40*time.Hour), long),
			paperAt("newest", "math.OC", testNow.Add(-time.Hour), long),
		},
		"eess.SY": {
			paperAt("middle", "eess.SY", testNow.Add(-20*time.Hour), long),
		},
	}}

	var buf bytes.Buffer
	got, err := SelectPapers(context.Background(), src, testConfig(), testNow, &buf)
	if err != nil {
		t.Fatalf("SelectPapers: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, id := range []string{"newest", "middle", "older"} {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSelectPapersNoPapers(t *testing.T) {
	src := &fakeSource{errs: map[string]error{
		"math.OC": fmt.Errorf("down"),
		"eess.SY": fmt.Errorf("down"),
	}}

	var buf bytes.Buffer
	_, err := SelectPapers(context.Background(), src, testConfig(), testNow, &buf)
	if !errors.Is(err, ErrNoPapers) {
		t.Fatalf("err = %v, want ErrNoPapers", err)
	}
}

func TestSelectPapersDisablesRecencyWithAgeFilter(t *testing.T) {
	long := strings.Repeat("x", 400)
	src := &fakeSource{byCategory: map[string][]types.Paper{
		"math.OC": {paperAt("a", "math.OC", testNow.Add(-time.Hour), long)},
	}}

	cfg := testConfig()
	cfg.Fetch.Categories = []string{"math.OC"}
	cfg.Fetch.MaxAge = 48 * time.Hour

	var buf bytes.Buffer
	if _, err := SelectPapers(context.Background(), src, cfg, testNow, &buf); err != nil {
		t.Fatalf("SelectPapers: %v", err)
	}
	if !strings.Contains(buf.String(), "recency scoring term disabled") {
		t.Errorf("missing recency-disable log: %q", buf.String())
	}
}

func TestSelectPapersDedupAcrossCategories(t *testing.T) {
	long := strings.Repeat("x", 400)
	a := paperAt("a", "math.OC", testNow.Add(-time.Hour), long)
	a.Title = "Deep Learning for Power Grids"
	b := paperAt("b", "eess.SY", testNow.Add(-2*time.Hour), long)
	b.Title = "Deep learning for power grids!"

	src := &fakeSource{byCategory: map[string][]types.Paper{
		"math.OC": {a},
		"eess.SY": {b},
	}}

	var buf bytes.Buffer
	got, err := SelectPapers(context.Background(), src, testConfig(), testNow, &buf)
	if err != nil {
		t.Fatalf("SelectPapers: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1 after dedup", len(got))
	}
}

func TestRunDeliversAndArchives(t *testing.T) {
	long := strings.Repeat("x", 400)
	src := &fakeSource{byCategory: map[string][]types.Paper{
		"math.OC": {paperAt("a", "math.OC", testNow.Add(-time.Hour), long)},
		"eess.SY": {paperAt("b", "eess.SY", testNow.Add(-2*time.Hour), long)},
	}}
	mailer := &fakeMailer{}
	arch := &fakeArchiver{}

	deps := Deps{
		Source:  src,
		Backend: &fakeBackend{},
		Mailer:  mailer,
		Archive: arch,
		Now:     func() time.Time { return testNow },
	}

	var buf bytes.Buffer
	result, err := Run(context.Background(), testConfig(), deps, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !result.Delivered {
		t.Error("Delivered = false, want true")
	}
	if result.Subject != "📚 arXiv Daily Paper Digest - 2026-03-10" {
		t.Errorf("Subject = %q", result.Subject)
	}
	if mailer.calls != 1 || mailer.subject != result.Subject {
		t.Errorf("mailer calls = %d, subject = %q", mailer.calls, mailer.subject)
	}
	if !strings.Contains(mailer.body, "summary of a") {
		t.Errorf("delivered body missing summary")
	}
	if result.Stats.Today != 2 {
		t.Errorf("Stats.Today = %d, want 2", result.Stats.Today)
	}

	if len(arch.entries) != 1 {
		t.Fatalf("archived entries = %d, want 1", len(arch.entries))
	}
	e := arch.entries[0]
	if e.PaperCount != 2 || e.Language != "en" || e.Subject != result.Subject {
		t.Errorf("archived entry = %+v", e)
	}
}

func TestRunDeliveryFailureIsNotAnError(t *testing.T) {
	long := strings.Repeat("x", 400)
	src := &fakeSource{byCategory: map[string][]types.Paper{
		"math.OC": {paperAt("a", "math.OC", testNow.Add(-time.Hour), long)},
	}}
	mailer := &fakeMailer{err: fmt.Errorf("smtp down")}
	arch := &fakeArchiver{}

	cfg := testConfig()
	cfg.Fetch.Categories = []string{"math.OC"}

	deps := Deps{
		Source:  src,
		Backend: &fakeBackend{},
		Mailer:  mailer,
		Archive: arch,
		Now:     func() time.Time { return testNow },
	}

	var buf bytes.Buffer
	result, err := Run(context.Background(), cfg, deps, &buf)
	if err != nil {
		t.Fatalf("Run must not fail on delivery errors: %v", err)
	}
	if result.Delivered {
		t.Error("Delivered = true, want false")
	}
	if result.HTML == "" {
		t.Error("rendered HTML must still be reported")
	}
	if len(arch.entries) != 0 {
		t.Error("undelivered digest must not be archived")
	}
	if !strings.Contains(buf.String(), "warning: delivery failed") {
		t.Errorf("missing delivery warning: %q", buf.String())
	}
}

func TestRunSummarizationFailureDegrades(t *testing.T) {
	long := strings.Repeat("x", 400)
	src := &fakeSource{byCategory: map[string][]types.Paper{
		"math.OC": {paperAt("a", "math.OC", testNow.Add(-time.Hour), long)},
	}}
	mailer := &fakeMailer{}

	cfg := testConfig()
	cfg.Fetch.Categories = []string{"math.OC"}

	deps := Deps{
		Source:  src,
		Backend: &fakeBackend{err: fmt.Errorf("api down")},
		Mailer:  mailer,
		Now:     func() time.Time { return testNow },
	}

	var buf bytes.Buffer
	result, err := Run(context.Background(), cfg, deps, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Delivered {
		t.Error("fallback summaries must still be delivered")
	}
	if !strings.Contains(mailer.body, "Summary generation failed") {
		t.Error("body missing fallback text")
	}
}

func TestRunArchiveFailureIsLogged(t *testing.T) {
	long := strings.Repeat("x", 400)
	src := &fakeSource{byCategory: map[string][]types.Paper{
		"math.OC": {paperAt("a", "math.OC", testNow.Add(-time.Hour), long)},
	}}

	cfg := testConfig()
	cfg.Fetch.Categories = []string{"math.OC"}

	deps := Deps{
		Source:  src,
		Backend: &fakeBackend{},
		Mailer:  &fakeMailer{},
		Archive: &fakeArchiver{err: fmt.Errorf("disk full")},
		Now:     func() time.Time { return testNow },
	}

	var buf bytes.Buffer
	result, err := Run(context.Background(), cfg, deps, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Delivered {
		t.Error("archive failure must not undo delivery")
	}
	if !strings.Contains(buf.String(), "warning: archiving digest failed") {
		t.Errorf("missing archive warning: %q", buf.String())
	}
}

func TestFormatTable(t *testing.T) {
	papers := []types.ScoredPaper{
		{
			Paper: types.Paper{
				ID:             "a",
				Title:          strings.Repeat("Long Title ", 10),
				Authors:        []string{"First Author", "Second Author"},
				Published:      testNow,
				SourceCategory: "math.OC",
			},
			Score: 4.5,
		},
	}

	var buf bytes.Buffer
	FormatTable(papers, &buf)
	out := buf.String()

	for _, want := range []string{"Rank", "et al.", "2026-03-10", "4.5", "math.OC", "1 papers"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No papers selected.") {
		t.Errorf("empty table = %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	papers := []types.ScoredPaper{
		{Paper: types.Paper{ID: "a", Title: "T"}, Score: 1.5},
	}

	var buf bytes.Buffer
	if err := FormatJSON(papers, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"id": "a"`) {
		t.Errorf("json = %q", buf.String())
	}
}

func TestWriteReadFile(t *testing.T) {
	cfg := testConfig()
	cfg.Fetch.MaxAge = 48 * time.Hour
	papers := []types.ScoredPaper{
		{
			Paper: types.Paper{
				ID:             "2603.01234",
				Title:          "A Saved Paper",
				Authors:        []string{"A. Author"},
				Published:      testNow,
				SourceCategory: "math.OC",
			},
			Score: 3.2,
		},
	}

	path := t.TempDir() + "/digest.yaml"
	if err := WriteFile(path, cfg, papers); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got.Summary.Total != 1 {
		t.Errorf("Total = %d, want 1", got.Summary.Total)
	}
	if got.Config.MaxAge != "48h0m0s" {
		t.Errorf("MaxAge = %q", got.Config.MaxAge)
	}
	if len(got.Papers) != 1 || got.Papers[0].ID != "2603.01234" {
		t.Fatalf("Papers = %+v", got.Papers)
	}
	if got.Papers[0].Score != 3.2 {
		t.Errorf("Score = %f", got.Papers[0].Score)
	}
	if !got.Papers[0].Published.Equal(testNow) {
		t.Errorf("Published = %v", got.Papers[0].Published)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(t.TempDir() + "/nope.yaml"); err == nil {
		t.Error("want error for missing file")
	}
}

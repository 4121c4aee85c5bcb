// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// fakeBackend returns a canned summary per language, or an error for
// languages listed in fail.
type fakeBackend struct {
	fail  map[types.Language]bool
	calls int
}

func (f *fakeBackend) Summarize(ctx context.Context, p types.Paper, lang types.Language) (string, error) {
	f.calls++
	if f.fail[lang] {
		return "", fmt.Errorf("api down")
	}
	return fmt.Sprintf("summary of %s in %s", p.ID, lang), nil
}

func scored(id string) types.ScoredPaper {
	return types.ScoredPaper{Paper: types.Paper{ID: id, Title: "Paper " + id, Abstract: "An abstract."}}
}

func TestOneSingleLanguage(t *testing.T) {
	var buf bytes.Buffer
	got := One(context.Background(), &fakeBackend{}, scored("a"), types.LangEnglish, &buf)

	if len(got.Summary) != 1 {
		t.Fatalf("summary entries = %d, want 1", len(got.Summary))
	}
	if got.Summary["en"] != "summary of a in en" {
		t.Errorf("Summary[en] = %q", got.Summary["en"])
	}
}

func TestOneBilingual(t *testing.T) {
	var buf bytes.Buffer
	got := One(context.Background(), &fakeBackend{}, scored("a"), types.LangBilingual, &buf)

	if len(got.Summary) != 2 {
		t.Fatalf("summary entries = %d, want 2", len(got.Summary))
	}
	for _, lang := range []string{"zh", "en"} {
		if got.Summary[lang] == "" {
			t.Errorf("missing %s summary", lang)
		}
	}
}

func TestOneFallbackOnFailure(t *testing.T) {
	backend := &fakeBackend{fail: map[types.Language]bool{types.LangChinese: true}}

	var buf bytes.Buffer
	got := One(context.Background(), backend, scored("a"), types.LangBilingual, &buf)

	if got.Summary["zh"] != "摘要生成失败，请直接查看原文。" {
		t.Errorf("Summary[zh] = %q, want the fixed fallback", got.Summary["zh"])
	}
	if got.Summary["en"] != "summary of a in en" {
		t.Errorf("one language failing must not affect the other: %q", got.Summary["en"])
	}
	if !strings.Contains(buf.String(), "warning: summarizing a (zh) failed") {
		t.Errorf("missing warning in log: %q", buf.String())
	}
}

func TestFallback(t *testing.T) {
	if got := Fallback(types.LangEnglish); got != "Summary generation failed. Please read the original paper." {
		t.Errorf("Fallback(en) = %q", got)
	}
	if got := Fallback(types.LangChinese); got != "摘要生成失败，请直接查看原文。" {
		t.Errorf("Fallback(zh) = %q", got)
	}
	// Unknown languages resolve to the English message.
	if got := Fallback(types.Language("fr")); !strings.HasPrefix(got, "Summary generation failed") {
		t.Errorf("Fallback(fr) = %q", got)
	}
}

func TestAllPreservesOrderAndContinues(t *testing.T) {
	backend := &fakeBackend{}
	papers := []types.ScoredPaper{scored("a"), scored("b"), scored("c")}

	var buf bytes.Buffer
	got := All(context.Background(), backend, papers, types.LangEnglish, &buf)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Errorf("order changed at %d: got %s, want %s", i, got[i].ID, id)
		}
	}
	if backend.calls != 3 {
		t.Errorf("calls = %d, want one per paper per language", backend.calls)
	}
	if !strings.Contains(buf.String(), "[2/3] summarizing") {
		t.Errorf("missing progress line: %q", buf.String())
	}
}

func TestDeepSeekBackendSummarize(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(chatResponse{Choices: []chatChoice{
			{Message: chatMessage{Role: "assistant", Content: "  A concise summary.  "}},
		}})
	}))
	defer srv.Close()

	backend := &DeepSeekBackend{BaseURL: srv.URL, APIKey: "sk_test", Model: "deepseek-ai/DeepSeek-V3.2", Client: srv.Client()}
	p := types.Paper{ID: "a", Title: "Robust Control", Abstract: "We control things."}

	got, err := backend.Summarize(context.Background(), p, types.LangEnglish)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "A concise summary." {
		t.Errorf("summary not trimmed: %q", got)
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReq.Model != "deepseek-ai/DeepSeek-V3.2" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v", gotReq.Messages)
	}
	prompt := gotReq.Messages[0].Content
	if !strings.Contains(prompt, "Robust Control") || !strings.Contains(prompt, "We control things.") {
		t.Errorf("prompt missing paper fields: %q", prompt)
	}
	if !strings.Contains(prompt, "summarize the following academic paper in English") {
		t.Errorf("prompt not in English register: %q", prompt)
	}
}

func TestDeepSeekBackendChinesePrompt(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(chatResponse{Choices: []chatChoice{
			{Message: chatMessage{Content: "摘要"}},
		}})
	}))
	defer srv.Close()

	backend := &DeepSeekBackend{BaseURL: srv.URL, APIKey: "k", Client: srv.Client()}
	if _, err := backend.Summarize(context.Background(), scored("a").Paper, types.LangChinese); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "请用中文总结以下学术论文") {
		t.Errorf("prompt not in Chinese register: %q", gotReq.Messages[0].Content)
	}
}

func TestDeepSeekBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chatResponse{})
		}},
		{"empty content", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chatResponse{Choices: []chatChoice{{Message: chatMessage{Content: "   "}}}})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			backend := &DeepSeekBackend{BaseURL: srv.URL, APIKey: "k", Client: srv.Client()}
			if _, err := backend.Summarize(context.Background(), scored("a").Paper, types.LangEnglish); err == nil {
				t.Error("want error")
			}
		})
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// Language selects the digest output language.
type Language string

const (
	LangChinese   Language = "zh"
	LangEnglish   Language = "en"
	LangBilingual Language = "both"
)

// Valid reports whether the language selector is one of the supported values.
func (l Language) Valid() bool {
	return l == LangChinese || l == LangEnglish || l == LangBilingual
}

// Codes returns the concrete language codes to generate: one code for a
// single-language selector, both for the bilingual mode.
func (l Language) Codes() []Language {
	if l == LangBilingual {
		return []Language{LangChinese, LangEnglish}
	}
	return []Language{l}
}

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Categories is the ordered list of arXiv categories to query
	// (e.g. "math.OC", "eess.SY").
	Categories []string `json:"categories" yaml:"categories"`

	// MaxResults is the target digest size; each category query requests
	// FetchMultiplier times this many entries to leave headroom for
	// filtering (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// FetchMultiplier scales the per-category request size (default 2).
	FetchMultiplier int `json:"fetch_multiplier" yaml:"fetch_multiplier"`

	// MaxAge, when positive, discards papers published more than this long
	// ago before scoring. Zero disables the age filter.
	MaxAge time.Duration `json:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// DefaultKeywords is the keyword list used for the title/abstract bonus when
// none is configured.
var DefaultKeywords = []string{
	"novel", "efficient", "state-of-the-art", "breakthrough", "improved",
	"transformer", "attention", "neural", "deep learning", "framework",
	"benchmark", "dataset", "evaluation", "survey", "review",
}

// ScoreConfig holds settings for the scoring stage.
type ScoreConfig struct {
	// MinAbstractLength is the abstract length below which a paper is
	// penalized (default 100 characters).
	MinAbstractLength int `json:"min_abstract_length" yaml:"min_abstract_length"`

	// Keywords are matched case-insensitively against title and abstract.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// TitleKeywordBonus is added per keyword found in the title (default 0.5).
	TitleKeywordBonus float64 `json:"title_keyword_bonus" yaml:"title_keyword_bonus"`

	// AbstractKeywordBonus is added per keyword found only in the abstract
	// (default 0.2).
	AbstractKeywordBonus float64 `json:"abstract_keyword_bonus" yaml:"abstract_keyword_bonus"`

	// Recency enables the days-old scoring term. The pipeline turns it off
	// when an absolute age filter is configured, since a cutoff already
	// bounds candidate age.
	Recency bool `json:"recency" yaml:"recency"`
}

// SelectConfig holds settings for the selection stage.
type SelectConfig struct {
	// MaxResults caps the digest size (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MinPerCategory is the per-category quota filled before global
	// score-ranked filling (default 1).
	MinPerCategory int `json:"min_per_category" yaml:"min_per_category"`
}

// DedupConfig holds settings for the deduplication stage.
type DedupConfig struct {
	// SimilarityThreshold is the normalized title-similarity ratio at or
	// above which two papers are treated as duplicates (default 0.85).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
}

// SummaryConfig holds settings for the AI summarization stage.
type SummaryConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the OpenAI-compatible API base
	// (default "https://api-inference.modelscope.cn/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the model identifier (default "deepseek-ai/DeepSeek-V3.2").
	Model string `json:"model" yaml:"model"`

	// Language selects which summaries to generate: zh, en, or both.
	Language Language `json:"language" yaml:"language"`
}

// MailConfig holds settings for SMTP delivery.
type MailConfig struct {
	// SMTPHost is the SMTP server host (default "smtp.gmail.com").
	SMTPHost string `json:"smtp_host" yaml:"smtp_host"`

	// SMTPPort is the SMTP server port (default 587, STARTTLS).
	SMTPPort int `json:"smtp_port" yaml:"smtp_port"`

	// Sender is the sending address, also used as the SMTP username.
	Sender string `json:"sender" yaml:"sender"`

	// Password is the SMTP password (for Gmail, an app password).
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Recipients are the destination addresses.
	Recipients []string `json:"recipients" yaml:"recipients"`
}

// ArchiveConfig holds settings for the local digest archive.
type ArchiveConfig struct {
	// Dir is the directory holding the archive database (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled skips archiving after delivery.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// DigestConfig groups all stage configurations for a pipeline run.
type DigestConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Score   ScoreConfig   `json:"score" yaml:"score"`
	Select  SelectConfig  `json:"select" yaml:"select"`
	Dedup   DedupConfig   `json:"dedup" yaml:"dedup"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	Mail    MailConfig    `json:"mail" yaml:"mail"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}

// Validate checks that every credential-like value a full run needs is
// present. It returns an error naming all missing values at once so the run
// halts before any network activity.
func (c DigestConfig) Validate() error {
	var missing []string
	if c.Summary.APIKey == "" {
		missing = append(missing, "DEEPSEEK_API_KEY")
	}
	if c.Mail.Sender == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	if c.Mail.Password == "" {
		missing = append(missing, "SENDER_PASSWORD")
	}
	if len(c.Mail.Recipients) == 0 {
		missing = append(missing, "RECEIVER_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if !c.Summary.Language.Valid() {
		return fmt.Errorf("invalid language %q: must be zh, en, or both", c.Summary.Language)
	}
	return nil
}

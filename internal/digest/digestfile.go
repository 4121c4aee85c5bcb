// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// File is the on-disk representation of a selection run. A preview can be
// saved and inspected later without re-querying the API.
type File struct {
	Config  FileConfig          `yaml:"config"`
	Papers  []types.ScoredPaper `yaml:"papers"`
	Summary FileSummary         `yaml:"summary"`
}

// FileConfig records the configuration that produced the selection.
type FileConfig struct {
	Categories     []string `yaml:"categories"`
	MaxResults     int      `yaml:"max_results"`
	MinPerCategory int      `yaml:"min_per_category"`
	MaxAge         string   `yaml:"max_age,omitempty"`
}

// FileSummary records result statistics and a timestamp.
type FileSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteFile saves a selection and its provenance to a YAML file.
func WriteFile(path string, cfg types.DigestConfig, papers []types.ScoredPaper) error {
	f := File{
		Config: FileConfig{
			Categories:     cfg.Fetch.Categories,
			MaxResults:     cfg.Select.MaxResults,
			MinPerCategory: cfg.Select.MinPerCategory,
		},
		Papers: papers,
		Summary: FileSummary{
			Total:     len(papers),
			Timestamp: time.Now(),
		},
	}
	if cfg.Fetch.MaxAge > 0 {
		f.Config.MaxAge = cfg.Fetch.MaxAge.String()
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshaling digest file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a previously saved selection from disk.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading digest file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing digest file: %w", err)
	}
	return &f, nil
}

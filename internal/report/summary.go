// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dataset-census/internal/census"
)

// Summary is the on-disk record of one census run: what was queried,
// what succeeded, and what permanently failed. The CSV tables hold only
// the successes; the summary preserves the failure reasons.
type Summary struct {
	Ecosystems []EcosystemSummary `yaml:"ecosystems"`
	Timestamp  time.Time          `yaml:"timestamp"`
}

// EcosystemSummary stores one ecosystem's run statistics.
type EcosystemSummary struct {
	Name      string          `yaml:"name"`
	Queried   int             `yaml:"queried"`
	Succeeded int             `yaml:"succeeded"`
	Skipped   int             `yaml:"skipped"`
	Table     string          `yaml:"table,omitempty"`
	Failures  []FailureRecord `yaml:"failures,omitempty"`
}

// FailureRecord stores one permanently failed dataset and why.
type FailureRecord struct {
	Dataset string `yaml:"dataset"`
	Reason  string `yaml:"reason"`
}

// NewEcosystemSummary folds a run result into its serializable form.
func NewEcosystemSummary(res census.RunResult, tablePath string) EcosystemSummary {
	s := EcosystemSummary{
		Name:      res.Ecosystem,
		Queried:   res.Queried,
		Succeeded: res.Succeeded(),
		Skipped:   res.Skipped(),
		Table:     tablePath,
	}
	for _, f := range res.Failures {
		s.Failures = append(s.Failures, FailureRecord{Dataset: f.Dataset, Reason: f.Reason})
	}
	return s
}

// WriteSummary saves the run summary to a YAML file.
func WriteSummary(path string, s Summary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSummary loads a previously saved run summary.
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing summary %s: %w", path, err)
	}
	return &s, nil
}

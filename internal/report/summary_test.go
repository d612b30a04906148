// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dataset-census/internal/census"
)

func TestSummaryRoundTrip(t *testing.T) {
	res := census.RunResult{
		Ecosystem: "rdata",
		Queried:   3,
		Table:     census.Table{{Dataset: "iris", TotalCount: 7}},
		Failures: []census.Failure{
			{Dataset: "mtcars", Reason: "rate limited after 10 attempt(s) (HTTP 403)"},
			{Dataset: "euro", Reason: "code search returned HTTP 500"},
		},
	}

	s := Summary{
		Ecosystems: []EcosystemSummary{NewEcosystemSummary(res, "r_datasets_counts.csv")},
		Timestamp:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "summary.yaml")
	require.NoError(t, WriteSummary(path, s))

	got, err := ReadSummary(path)
	require.NoError(t, err)
	require.Len(t, got.Ecosystems, 1)

	eco := got.Ecosystems[0]
	assert.Equal(t, "rdata", eco.Name)
	assert.Equal(t, 3, eco.Queried)
	assert.Equal(t, 1, eco.Succeeded)
	assert.Equal(t, 2, eco.Skipped)
	assert.Equal(t, "r_datasets_counts.csv", eco.Table)
	require.Len(t, eco.Failures, 2)
	assert.Equal(t, "mtcars", eco.Failures[0].Dataset)
	assert.True(t, got.Timestamp.Equal(s.Timestamp))
}

func TestNewEcosystemSummary_NoFailures(t *testing.T) {
	res := census.RunResult{
		Ecosystem: "sklearn",
		Queried:   2,
		Table:     census.Table{{Dataset: "load_iris", TotalCount: 120}, {Dataset: "load_wine", TotalCount: 45}},
	}

	s := NewEcosystemSummary(res, "sklearn_datasets_counts.csv")
	assert.Equal(t, 2, s.Succeeded)
	assert.Zero(t, s.Skipped)
	assert.Empty(t, s.Failures)
}

func TestReadSummary_Missing(t *testing.T) {
	_, err := ReadSummary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

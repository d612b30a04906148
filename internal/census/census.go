// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package census counts public code references to dataset-loading calls
// via the GitHub code-search API.
package census

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/dataset-census/internal/httputil"
)

// Row pairs a dataset identifier with its code-search match count.
type Row struct {
	Dataset    string
	TotalCount int
}

// Table is the ordered result set for one ecosystem. Rows keep the
// ecosystem's canonical list order; a dataset whose query permanently
// failed has no row at all.
type Table []Row

// Ecosystem enumerates the dataset-loading calls of one ecosystem and
// knows how to phrase its code-search query. Each ecosystem
// (scikit-learn, R) implements this interface per the Strategy pattern.
type Ecosystem interface {
	Name() string
	Datasets() ([]string, error)
	Query(dataset string) string
	Retry() httputil.RetryPolicy
}

// Failure records a dataset whose query did not produce a count.
type Failure struct {
	Dataset string
	Reason  string
}

// RunResult holds the outcome of one ecosystem's census run.
type RunResult struct {
	Ecosystem string
	Table     Table
	Failures  []Failure
	Queried   int
}

// Succeeded returns the number of datasets that produced a row.
func (r RunResult) Succeeded() int { return len(r.Table) }

// Skipped returns the number of datasets that produced no row.
func (r RunResult) Skipped() int { return len(r.Failures) }

// Run issues one code-search query per dataset, strictly sequentially,
// and collects the counts. Requests are never issued concurrently: the
// API is rate-limited and the per-query retry policy already paces it.
// A failed query is logged to w, recorded as a Failure, and skipped;
// the run continues with the next dataset. Only context cancellation
// and an unreadable dataset list abort the run.
func Run(ctx context.Context, client *Client, eco Ecosystem, w io.Writer) (RunResult, error) {
	datasets, err := eco.Datasets()
	if err != nil {
		return RunResult{}, fmt.Errorf("listing %s datasets: %w", eco.Name(), err)
	}

	res := RunResult{Ecosystem: eco.Name(), Queried: len(datasets)}
	for _, dataset := range datasets {
		count, err := client.Count(ctx, eco.Query(dataset), eco.Retry())
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			fmt.Fprintf(w, "%s: query for %s failed: %v\n", eco.Name(), dataset, err)
			res.Failures = append(res.Failures, Failure{Dataset: dataset, Reason: err.Error()})
			continue
		}
		fmt.Fprintf(w, "%s: %d\n", dataset, count)
		res.Table = append(res.Table, Row{Dataset: dataset, TotalCount: count})
	}
	return res, nil
}

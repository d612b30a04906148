// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration structs shared between the CLI and
// the census stages.
package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that call the
// code-search API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "dataset-census/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CensusConfig holds settings for the count stage.
type CensusConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxAttempts is the total number of requests allowed per
	// rate-limited query, first try included (default 10).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// RetryDelay is the fixed wait between rate-limited attempts
	// (default 60s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// RDataListPath is the file holding the R dataset names to query.
	RDataListPath string `json:"rdata_list" yaml:"rdata_list"`

	// OutputDir is the directory result tables and summaries are
	// written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// HistoryDB is the path of the sqlite run-history database. Empty
	// disables history recording.
	HistoryDB string `json:"history_db" yaml:"history_db"`
}

// ChartConfig holds settings for the chart stage.
type ChartConfig struct {
	// TopN is how many datasets each panel shows (default 10).
	TopN int `json:"top_n" yaml:"top_n"`

	// OutputPath is where the rendered PNG is written.
	OutputPath string `json:"output" yaml:"output"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dataset-census/internal/census"
	"github.com/pdiddy/dataset-census/internal/history"
	"github.com/pdiddy/dataset-census/internal/httputil"
	"github.com/pdiddy/dataset-census/internal/report"
	"github.com/pdiddy/dataset-census/internal/secrets"
	"github.com/pdiddy/dataset-census/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRDataList = "r_datasets_list.json"
	defaultHistoryDB = "census_history.db"

	sklearnTableFile = "sklearn_datasets_counts.csv"
	rdataTableFile   = "r_datasets_counts.csv"
	summaryFile      = "census_summary.yaml"
)

var countCmd = &cobra.Command{
	Use:   "count [sklearn|rdata]",
	Short: "Query GitHub code search for dataset reference counts",
	Long: `Count issues one code-search query per dataset and writes the resulting
(dataset, total_count) pairs to a CSV table per ecosystem. With no argument
both ecosystems run, sklearn first, then rdata. A failed query is logged
and skipped; the run always continues with the next dataset.

A GitHub token is required: export GITHUB_TOKEN or put it in
.secrets/github-token.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCount,
}

func init() {
	countCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	countCmd.Flags().Duration("retry-delay", 0, "wait between rate-limited attempts (default 60s)")
	countCmd.Flags().Int("max-attempts", 0, "total attempts per rate-limited query (default 10)")
	countCmd.Flags().String("rdata-list", "", "R dataset list file (default r_datasets_list.json)")
	countCmd.Flags().String("secrets-dir", ".secrets", "directory holding the github-token file")
	countCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")

	rootCmd.AddCommand(countCmd)
}

// countConfig resolves the count stage settings: flag, then config
// file, then default.
func countConfig(cmd *cobra.Command) types.CensusConfig {
	cfg := types.CensusConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		MaxAttempts:   viper.GetInt("census.max_attempts"),
		RetryDelay:    viper.GetDuration("census.retry_delay"),
		RDataListPath: viper.GetString("census.rdata_list"),
		OutputDir:     outputDir(),
		HistoryDB:     viper.GetString("census.history_db"),
	}

	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetDuration("retry-delay"); v > 0 {
		cfg.RetryDelay = v
	}
	if v, _ := cmd.Flags().GetInt("max-attempts"); v > 0 {
		cfg.MaxAttempts = v
	}
	if v, _ := cmd.Flags().GetString("rdata-list"); v != "" {
		cfg.RDataListPath = v
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RDataListPath == "" {
		cfg.RDataListPath = defaultRDataList
	}
	if cfg.HistoryDB == "" {
		cfg.HistoryDB = filepath.Join(cfg.OutputDir, defaultHistoryDB)
	}
	return cfg
}

func runCount(cmd *cobra.Command, args []string) error {
	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	token := secrets.GitHubToken(secretsDir)
	if token == "" {
		return fmt.Errorf("GitHub token not set: export %s or create %s",
			secrets.TokenEnvVar, filepath.Join(secretsDir, "github-token"))
	}

	cfg := countConfig(cmd)
	policy := httputil.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Delay:       cfg.RetryDelay,
	}

	// sklearn always runs before rdata; plotting consumes both tables.
	var ecosystems []census.Ecosystem
	target := ""
	if len(args) == 1 {
		target = args[0]
	}
	switch target {
	case "":
		ecosystems = []census.Ecosystem{
			census.Sklearn{},
			census.RData{ListPath: cfg.RDataListPath, Policy: policy},
		}
	case "sklearn":
		ecosystems = []census.Ecosystem{census.Sklearn{}}
	case "rdata":
		ecosystems = []census.Ecosystem{census.RData{ListPath: cfg.RDataListPath, Policy: policy}}
	default:
		return fmt.Errorf("unknown ecosystem %q (want sklearn or rdata)", target)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var store *history.Store
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		var err error
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	client := census.NewClient(token, cfg.HTTPConfig)

	var summary report.Summary
	for _, eco := range ecosystems {
		started := time.Now()
		res, err := census.Run(cmd.Context(), client, eco, os.Stdout)
		if err != nil {
			return err
		}

		tablePath := filepath.Join(cfg.OutputDir, tableFile(eco.Name()))
		if err := report.WriteTable(tablePath, res.Table); err != nil {
			return fmt.Errorf("writing %s table: %w", eco.Name(), err)
		}
		fmt.Printf("%s: %d/%d datasets counted, table written to %s\n",
			eco.Name(), res.Succeeded(), res.Queried, tablePath)

		if store != nil {
			if _, err := store.RecordRun(eco.Name(), started, res.Table); err != nil {
				fmt.Fprintf(os.Stderr, "warning: recording %s run: %v\n", eco.Name(), err)
			}
		}
		summary.Ecosystems = append(summary.Ecosystems, report.NewEcosystemSummary(res, tablePath))
	}

	summary.Timestamp = time.Now()
	summaryPath := filepath.Join(cfg.OutputDir, summaryFile)
	if err := report.WriteSummary(summaryPath, summary); err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	return nil
}

func tableFile(ecosystem string) string {
	if ecosystem == "rdata" {
		return rdataTableFile
	}
	return sklearnTableFile
}

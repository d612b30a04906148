// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dataset-census/internal/report"
)

const defaultChartFile = "dataset_counts.png"

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the two-ecosystem comparison chart",
	Long: `Chart reads the sklearn and rdata count tables written by the count
command and renders the top-N datasets of each as side-by-side horizontal
bar panels in a single PNG. Missing or empty tables are an error; run
count first.`,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().Int("top-n", 0, "datasets per panel (default 10)")
	chartCmd.Flags().String("out", "", "output PNG path (default dataset_counts.png)")
	chartCmd.Flags().String("sklearn-table", "", "sklearn counts CSV (default <output-dir>/sklearn_datasets_counts.csv)")
	chartCmd.Flags().String("rdata-table", "", "rdata counts CSV (default <output-dir>/r_datasets_counts.csv)")

	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	dir := outputDir()

	topN, _ := cmd.Flags().GetInt("top-n")
	if topN == 0 {
		topN = viper.GetInt("chart.top_n")
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = viper.GetString("chart.output")
	}
	if out == "" {
		out = filepath.Join(dir, defaultChartFile)
	}

	sklearnPath, _ := cmd.Flags().GetString("sklearn-table")
	if sklearnPath == "" {
		sklearnPath = filepath.Join(dir, sklearnTableFile)
	}
	rdataPath, _ := cmd.Flags().GetString("rdata-table")
	if rdataPath == "" {
		rdataPath = filepath.Join(dir, rdataTableFile)
	}

	sklearnTable, err := report.ReadTable(sklearnPath)
	if err != nil {
		return err
	}
	rdataTable, err := report.ReadTable(rdataPath)
	if err != nil {
		return err
	}

	err = report.WriteChart(out, topN,
		report.Panel{Title: "scikit-learn datasets", Table: sklearnTable},
		report.Panel{Title: "R datasets", Table: rdataTable},
	)
	if err != nil {
		return err
	}

	fmt.Printf("chart written to %s\n", out)
	return nil
}

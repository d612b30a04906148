// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dataset-census CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dataset-census CLI.
var rootCmd = &cobra.Command{
	Use:   "dataset-census",
	Short: "Count public code references to dataset-loading calls",
	Long: `dataset-census queries the GitHub code-search API for the number of files
referencing well-known dataset loaders — scikit-learn's toy datasets
(load_iris, load_wine, ...) and R's built-in datasets (data(iris), ...) —
writes the counts as CSV tables, records each run in a local history
database, and renders a comparison chart of the most-referenced datasets.

Queries run strictly sequentially and back off on GitHub's rate-limit
responses rather than racing them.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dataset-census.yaml or ~/.config/dataset-census/config.yaml)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for tables, summaries, and charts (default .)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dataset-census")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dataset-census"))
		}
	}

	viper.SetEnvPrefix("DATASET_CENSUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// outputDir resolves the output directory from the flag, then config,
// then the working directory.
func outputDir() string {
	if dir, _ := rootCmd.PersistentFlags().GetString("output-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("output_dir"); dir != "" {
		return dir
	}
	return "."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dataset-census/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded census runs",
	Long: `History lists the runs recorded in the local history database, newest
first. With --run it prints the counts recorded for one run instead.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("db", "", "history database path (default <output-dir>/census_history.db)")
	historyCmd.Flags().Int64("run", 0, "print the counts recorded for this run ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("census.history_db")
	}
	if dbPath == "" {
		dbPath = filepath.Join(outputDir(), defaultHistoryDB)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		table, err := store.Counts(runID)
		if err != nil {
			return err
		}
		if len(table) == 0 {
			return fmt.Errorf("run %d has no recorded counts", runID)
		}
		for _, row := range table {
			fmt.Printf("%-24s %d\n", row.Dataset, row.TotalCount)
		}
		return nil
	}

	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-6s  %-8s  %-20s  %s\n", "ID", "Eco", "Started", "Datasets")
	for _, r := range runs {
		fmt.Printf("%-6d  %-8s  %-20s  %d\n",
			r.ID, r.Ecosystem, r.StartedAt.Local().Format(time.DateTime), r.Datasets)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists census result tables and renders the
// comparison chart.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pdiddy/dataset-census/internal/census"
)

// tableHeader is the fixed CSV header row.
var tableHeader = []string{"dataset", "total_count"}

// WriteTable writes a census table as CSV: a header row, then one row
// per dataset in insertion order. An existing file is overwritten.
func WriteTable(path string, table census.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(tableHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range table {
		if err := w.Write([]string{row.Dataset, strconv.Itoa(row.TotalCount)}); err != nil {
			f.Close()
			return fmt.Errorf("writing row for %s: %w", row.Dataset, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing table: %w", err)
	}
	return f.Close()
}

// ReadTable loads a table previously written by WriteTable, preserving
// row order.
func ReadTable(path string) (census.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s has no header row", path)
	}
	if len(records[0]) != 2 || records[0][0] != tableHeader[0] || records[0][1] != tableHeader[1] {
		return nil, fmt.Errorf("table %s has unexpected header %v", path, records[0])
	}

	var table census.Table
	for _, rec := range records[1:] {
		count, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("table %s: bad count for %s: %w", path, rec[0], err)
		}
		table = append(table, census.Row{Dataset: rec[0], TotalCount: count})
	}
	return table, nil
}

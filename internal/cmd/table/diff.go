// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/agentstation/tagdiff/pkg/diff"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ResultToTableData converts a diff result to table format: one row per
// compared Tag, with the rendered cell values and change summary.
func ResultToTableData(result *diff.Result) Data {
	headers := make([]string, 0, len(result.Columns)+3)
	headers = append(headers, "Tag", "Change Type")
	headers = append(headers, result.Columns...)
	headers = append(headers, "Change Summary")

	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, row.Tag, string(row.Change))
		for _, col := range result.Columns {
			cells = append(cells, row.Cells[col])
		}
		cells = append(cells, row.Summary())
		rows = append(rows, cells)
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// SummaryToTableData converts comparison counts to a two-column table.
func SummaryToTableData(summary diff.Summary) Data {
	return Data{
		Headers: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Tags in R0", strconv.Itoa(summary.TagsInR0)},
			{"Tags in R1", strconv.Itoa(summary.TagsInR1)},
			{"Added", strconv.Itoa(summary.Added)},
			{"Removed", strconv.Itoa(summary.Removed)},
			{"Modified", strconv.Itoa(summary.Modified)},
			{"Unchanged", strconv.Itoa(summary.Unchanged)},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

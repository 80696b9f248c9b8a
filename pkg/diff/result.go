// Package diff compares two Tag-keyed tables and classifies every Tag as
// added, removed, modified, or unchanged, with per-column before/after
// rendering.
package diff

import (
	"fmt"
	"strings"
)

// ChangeType classifies a Tag's status across the two datasets.
type ChangeType string

const (
	// Added indicates the Tag is present only in R1.
	Added ChangeType = "Added"
	// Removed indicates the Tag is present only in R0.
	Removed ChangeType = "Removed"
	// Modified indicates the Tag is present in both with at least one
	// differing column.
	Modified ChangeType = "Modified"
	// Unchanged indicates the Tag is present in both with no differing
	// columns.
	Unchanged ChangeType = "Unchanged"
)

// ChangeTypes lists all classifications in presentation order.
var ChangeTypes = []ChangeType{Added, Removed, Modified, Unchanged}

// ParseChangeType converts a string to a ChangeType with validation.
// The empty string and "all" return ok with an empty ChangeType, meaning
// no filtering.
func ParseChangeType(s string) (ChangeType, bool) {
	switch strings.ToLower(s) {
	case "", "all":
		return "", true
	case "added":
		return Added, true
	case "removed":
		return Removed, true
	case "modified":
		return Modified, true
	case "unchanged":
		return Unchanged, true
	default:
		return "", false
	}
}

// Row is one output record of a comparison.
type Row struct {
	// Tag is the row key.
	Tag string `json:"tag"`
	// Change is the classification of this Tag.
	Change ChangeType `json:"change"`
	// Cells maps each ColumnSet column to its rendered value: the surviving
	// value when the sides agree, or "old → new" when they differ.
	Cells map[string]string `json:"cells"`
	// Changes lists the per-column differences as "column: old → new", in
	// ColumnSet order. Empty for added, removed, and unchanged rows.
	Changes []string `json:"changes,omitempty"`
}

// Summary returns the human-readable change summary, joining the per-column
// differences with " | ".
func (r Row) Summary() string {
	return strings.Join(r.Changes, " | ")
}

// Summary holds the comparison counts surfaced to callers.
type Summary struct {
	TagsInR0  int `json:"tags_in_r0"`
	TagsInR1  int `json:"tags_in_r1"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
}

// Result is the ordered outcome of comparing two tables. Rows are sorted by
// Tag ascending; Columns is the union of both schemas minus the key column,
// R0's columns first in their original order, then R1-only columns in R1
// order.
type Result struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	Summary Summary  `json:"summary"`

	arrow string
}

// Arrow returns the change marker used in rendered cells.
func (r *Result) Arrow() string {
	return r.arrow
}

// HasChanges returns true if any Tag was added, removed, or modified.
func (r *Result) HasChanges() bool {
	return r.Summary.Added+r.Summary.Removed+r.Summary.Modified > 0
}

// Filter returns a new Result containing only rows of the given change type.
// An empty change type returns the receiver unchanged. Row counts are
// recalculated; the per-side totals are preserved.
func (r *Result) Filter(change ChangeType) *Result {
	if change == "" {
		return r
	}

	filtered := &Result{
		Columns: r.Columns,
		arrow:   r.arrow,
		Summary: Summary{
			TagsInR0: r.Summary.TagsInR0,
			TagsInR1: r.Summary.TagsInR1,
		},
	}

	for _, row := range r.Rows {
		if row.Change != change {
			continue
		}
		filtered.Rows = append(filtered.Rows, row)
		switch row.Change {
		case Added:
			filtered.Summary.Added++
		case Removed:
			filtered.Summary.Removed++
		case Modified:
			filtered.Summary.Modified++
		case Unchanged:
			filtered.Summary.Unchanged++
		}
	}
	filtered.Summary.Total = len(filtered.Rows)

	return filtered
}

// String returns a one-line human-readable summary of the comparison.
func (r *Result) String() string {
	if !r.HasChanges() {
		return fmt.Sprintf("No changes detected (%d tags)", r.Summary.Total)
	}
	return fmt.Sprintf("%d tags compared: %d added, %d removed, %d modified, %d unchanged",
		r.Summary.Total, r.Summary.Added, r.Summary.Removed, r.Summary.Modified, r.Summary.Unchanged)
}

package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/tagdiff/pkg/tables"
)

// DefaultArrow is the marker separating old and new values in rendered cells.
const DefaultArrow = "→"

// Differ handles change detection between two tables.
type Differ interface {
	// Compare diffs the baseline table R0 against the revised table R1.
	Compare(r0, r1 *tables.Table) *Result
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreColumns map[string]bool
	arrow         string
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreColumns: make(map[string]bool),
		arrow:         DefaultArrow,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Compare diffs R0 against R1. The result is pure and deterministic: the
// same inputs always produce the same rows, row order, and column order.
func (d *differ) Compare(r0, r1 *tables.Table) *Result {
	result := &Result{
		Columns: ColumnSet(r0.Columns(), r1.Columns()),
		arrow:   d.arrow,
		Summary: Summary{
			TagsInR0: r0.Len(),
			TagsInR1: r1.Len(),
		},
	}

	for _, tag := range tagUnion(r0, r1) {
		row0, inR0 := r0.Lookup(tag)
		row1, inR1 := r1.Lookup(tag)

		var row Row
		switch {
		case !inR0:
			row = d.oneSided(tag, Added, row1, result.Columns)
		case !inR1:
			row = d.oneSided(tag, Removed, row0, result.Columns)
		default:
			row = d.compareRows(tag, row0, row1, result.Columns)
		}

		result.Rows = append(result.Rows, row)

		switch row.Change {
		case Added:
			result.Summary.Added++
		case Removed:
			result.Summary.Removed++
		case Modified:
			result.Summary.Modified++
		case Unchanged:
			result.Summary.Unchanged++
		}
	}

	result.Summary.Total = len(result.Rows)

	return result
}

// oneSided builds the row for a Tag present on only one side. Cells take the
// surviving side's values; columns absent from that side render empty.
func (d *differ) oneSided(tag string, change ChangeType, source tables.Row, columns []string) Row {
	cells := make(map[string]string, len(columns))
	for _, col := range columns {
		cells[col] = source.Get(col)
	}
	return Row{Tag: tag, Change: change, Cells: cells}
}

// compareRows builds the row for a Tag present on both sides. A column
// absent from one side compares as the empty string, which can itself mark
// the row modified when the other side is non-empty.
func (d *differ) compareRows(tag string, row0, row1 tables.Row, columns []string) Row {
	row := Row{
		Tag:    tag,
		Change: Unchanged,
		Cells:  make(map[string]string, len(columns)),
	}

	for _, col := range columns {
		v0 := row0.Get(col)
		v1 := row1.Get(col)

		// Comparison is on trimmed values; rendering keeps the originals.
		if strings.TrimSpace(v0) == strings.TrimSpace(v1) || d.ignoreColumns[col] {
			row.Cells[col] = v1
			continue
		}

		row.Cells[col] = fmt.Sprintf("%s %s %s", v0, d.arrow, v1)
		row.Changes = append(row.Changes, fmt.Sprintf("%s: %s %s %s", col, v0, d.arrow, v1))
		row.Change = Modified
	}

	return row
}

// ColumnSet unions two column lists: r0 columns first in their original
// order, then columns present only in r1 appended in r1 order. The key
// column is excluded; it always leads each output row on its own. The
// result has no duplicates and is deterministic given the inputs.
func ColumnSet(r0, r1 []string) []string {
	seen := make(map[string]bool, len(r0)+len(r1))
	seen[tables.KeyColumn] = true
	union := make([]string, 0, len(r0)+len(r1))

	for _, col := range r0 {
		if seen[col] {
			continue
		}
		seen[col] = true
		union = append(union, col)
	}
	for _, col := range r1 {
		if seen[col] {
			continue
		}
		seen[col] = true
		union = append(union, col)
	}

	return union
}

// tagUnion returns all Tags present in either table, sorted ascending.
func tagUnion(r0, r1 *tables.Table) []string {
	seen := make(map[string]bool, r0.Len()+r1.Len())
	union := make([]string, 0, r0.Len()+r1.Len())

	for _, tag := range r0.Tags() {
		if !seen[tag] {
			seen[tag] = true
			union = append(union, tag)
		}
	}
	for _, tag := range r1.Tags() {
		if !seen[tag] {
			seen[tag] = true
			union = append(union, tag)
		}
	}

	sort.Strings(union)

	return union
}

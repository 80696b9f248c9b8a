// Package tables loads tabular inputs into Tag-keyed tables for comparison.
// A table is built once per comparison run and is immutable afterward: all
// cell values are coerced to trimmed strings, missing cells normalize to the
// empty string, and duplicate Tags keep only their first occurrence.
package tables

import (
	"strings"

	"github.com/agentstation/tagdiff/pkg/errors"
)

// KeyColumn is the column every input must contain. Its value identifies a
// row across both datasets.
const KeyColumn = "Tag"

// Row maps column name to cell value. Columns absent from the source input
// are simply not present; Get returns the empty string for them.
type Row map[string]string

// Get returns the value for a column, or the empty string if the row does
// not carry it.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is an immutable, Tag-keyed collection of rows with its column list
// preserved in first-appearance input order.
type Table struct {
	name    string
	columns []string
	tags    []string
	rows    map[string]Row
}

// New builds a Table from a header and records. The header must contain the
// Tag column or a SchemaError is returned. Every cell is trimmed; records
// shorter than the header are padded with empty strings; rows that share a
// Tag keep only the first occurrence in record order.
func New(name string, header []string, records [][]string) (*Table, error) {
	keyIdx := -1
	columns := make([]string, 0, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		columns = append(columns, col)
		if col == KeyColumn && keyIdx == -1 {
			keyIdx = i
		}
	}
	if keyIdx == -1 {
		return nil, errors.NewSchemaError(name, KeyColumn)
	}

	t := &Table{
		name:    name,
		columns: columns,
		rows:    make(map[string]Row, len(records)),
	}

	for _, record := range records {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}

		tag := row[KeyColumn]
		if _, exists := t.rows[tag]; exists {
			// First occurrence wins; later duplicates are dropped.
			continue
		}
		t.rows[tag] = row
		t.tags = append(t.tags, tag)
	}

	return t, nil
}

// Name returns the input name the table was loaded from.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the column names in first-appearance input order.
func (t *Table) Columns() []string {
	columns := make([]string, len(t.columns))
	copy(columns, t.columns)
	return columns
}

// Tags returns the Tags in input order, after deduplication.
func (t *Table) Tags() []string {
	tags := make([]string, len(t.tags))
	copy(tags, t.tags)
	return tags
}

// Lookup returns the row for a Tag.
func (t *Table) Lookup(tag string) (Row, bool) {
	row, ok := t.rows[tag]
	return row, ok
}

// Has reports whether the table contains a row for the Tag.
func (t *Table) Has(tag string) bool {
	_, ok := t.rows[tag]
	return ok
}

// HasColumn reports whether the table's schema includes the column.
func (t *Table) HasColumn(column string) bool {
	for _, col := range t.columns {
		if col == column {
			return true
		}
	}
	return false
}

// Len returns the number of rows after deduplication.
func (t *Table) Len() int {
	return len(t.rows)
}

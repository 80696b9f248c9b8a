package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tagdiff/pkg/diff"
	"github.com/agentstation/tagdiff/pkg/tables"
)

func mustTable(t *testing.T, name string, header []string, records [][]string) *tables.Table {
	t.Helper()
	table, err := tables.New(name, header, records)
	require.NoError(t, err)
	return table
}

func TestCompare(t *testing.T) {
	t.Run("added removed modified", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag", "Qty"}, [][]string{
			{"A", "5"},
			{"B", "10"},
		})
		r1 := mustTable(t, "R1", []string{"Tag", "Qty"}, [][]string{
			{"B", "12"},
			{"C", "1"},
		})

		result := diff.New().Compare(r0, r1)

		require.Len(t, result.Rows, 3)
		assert.Equal(t, []string{"Qty"}, result.Columns)

		a, b, c := result.Rows[0], result.Rows[1], result.Rows[2]

		assert.Equal(t, "A", a.Tag)
		assert.Equal(t, diff.Removed, a.Change)
		assert.Equal(t, "5", a.Cells["Qty"])
		assert.Empty(t, a.Summary())

		assert.Equal(t, "B", b.Tag)
		assert.Equal(t, diff.Modified, b.Change)
		assert.Equal(t, "5 → 12", b.Cells["Qty"])
		assert.Equal(t, "Qty: 5 → 12", b.Summary())

		assert.Equal(t, "C", c.Tag)
		assert.Equal(t, diff.Added, c.Change)
		assert.Equal(t, "1", c.Cells["Qty"])
		assert.Empty(t, c.Summary())

		assert.Equal(t, diff.Summary{
			TagsInR0: 2, TagsInR1: 2,
			Added: 1, Removed: 1, Modified: 1, Unchanged: 0,
			Total: 3,
		}, result.Summary)
		assert.True(t, result.HasChanges())
	})

	t.Run("unchanged", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag", "Qty"}, [][]string{{"A", "5"}})
		r1 := mustTable(t, "R1", []string{"Tag", "Qty"}, [][]string{{"A", "5"}})

		result := diff.New().Compare(r0, r1)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, diff.Unchanged, result.Rows[0].Change)
		assert.Equal(t, "5", result.Rows[0].Cells["Qty"])
		assert.Empty(t, result.Rows[0].Summary())
		assert.False(t, result.HasChanges())
		assert.Contains(t, result.String(), "No changes")
	})

	t.Run("column missing from R1 schema", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag", "Qty", "Notes"}, [][]string{
			{"A", "5", "check valve"},
		})
		r1 := mustTable(t, "R1", []string{"Tag", "Qty"}, [][]string{
			{"A", "5"},
		})

		result := diff.New().Compare(r0, r1)

		require.Len(t, result.Rows, 1)
		row := result.Rows[0]
		assert.Equal(t, diff.Modified, row.Change)
		assert.Equal(t, "check valve → ", row.Cells["Notes"])
		assert.Equal(t, "Notes: check valve → ", row.Summary())
		assert.Equal(t, "5", row.Cells["Qty"])
	})

	t.Run("equal by absence stays unchanged", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag", "Notes"}, [][]string{
			{"A", ""},
		})
		r1 := mustTable(t, "R1", []string{"Tag"}, [][]string{
			{"A"},
		})

		result := diff.New().Compare(r0, r1)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, diff.Unchanged, result.Rows[0].Change)
		assert.Equal(t, "", result.Rows[0].Cells["Notes"])
	})

	t.Run("disjoint key sets", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag"}, [][]string{{"A"}, {"B"}})
		r1 := mustTable(t, "R1", []string{"Tag"}, [][]string{{"C"}, {"D"}})

		result := diff.New().Compare(r0, r1)

		require.Len(t, result.Rows, 4)
		assert.Equal(t, 2, result.Summary.Added)
		assert.Equal(t, 2, result.Summary.Removed)
	})

	t.Run("empty tables", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag"}, nil)
		r1 := mustTable(t, "R1", []string{"Tag"}, nil)

		result := diff.New().Compare(r0, r1)

		assert.Empty(t, result.Rows)
		assert.Equal(t, 0, result.Summary.Total)
		assert.False(t, result.HasChanges())
	})

	t.Run("duplicate tags keep first occurrence", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag", "Qty"}, [][]string{
			{"X", "1"},
			{"X", "99"},
		})
		r1 := mustTable(t, "R1", []string{"Tag", "Qty"}, [][]string{
			{"X", "2"},
		})

		result := diff.New().Compare(r0, r1)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, "1 → 2", result.Rows[0].Cells["Qty"])
	})
}

func TestCompareProperties(t *testing.T) {
	r0 := mustTable(t, "R0", []string{"Tag", "Qty", "Notes"}, [][]string{
		{"A", "5", "keep"},
		{"B", "10", ""},
		{"D", "7", "drop"},
	})
	r1 := mustTable(t, "R1", []string{"Tag", "Qty", "Vendor"}, [][]string{
		{"B", "12", "acme"},
		{"C", "1", ""},
		{"A", "5", ""},
	})

	t.Run("every tag appears exactly once, sorted", func(t *testing.T) {
		result := diff.New().Compare(r0, r1)

		var got []string
		for _, row := range result.Rows {
			got = append(got, row.Tag)
		}
		assert.Equal(t, []string{"A", "B", "C", "D"}, got)
	})

	t.Run("idempotence", func(t *testing.T) {
		first := diff.New().Compare(r0, r1)
		second := diff.New().Compare(r0, r1)
		assert.Equal(t, first, second)
	})

	t.Run("reversed inputs swap added and removed", func(t *testing.T) {
		forward := diff.New().Compare(r0, r1)
		reverse := diff.New().Compare(r1, r0)

		byTag := func(result *diff.Result) map[string]diff.Row {
			m := make(map[string]diff.Row)
			for _, row := range result.Rows {
				m[row.Tag] = row
			}
			return m
		}
		fwd, rev := byTag(forward), byTag(reverse)

		assert.Equal(t, diff.Added, fwd["C"].Change)
		assert.Equal(t, diff.Removed, rev["C"].Change)
		assert.Equal(t, diff.Removed, fwd["D"].Change)
		assert.Equal(t, diff.Added, rev["D"].Change)

		// Modified cells render in reverse arrow order
		assert.Equal(t, "10 → 12", fwd["B"].Cells["Qty"])
		assert.Equal(t, "12 → 10", rev["B"].Cells["Qty"])
	})

	t.Run("arrow round trip", func(t *testing.T) {
		result := diff.New().Compare(r0, r1)

		for _, row := range result.Rows {
			arrowed := false
			for _, cell := range row.Cells {
				if strings.Contains(cell, result.Arrow()) {
					arrowed = true
				}
			}
			if row.Change == diff.Modified {
				assert.True(t, arrowed, "modified row %s must carry an arrow", row.Tag)
			} else {
				assert.False(t, arrowed, "row %s (%s) must not carry an arrow", row.Tag, row.Change)
			}
		}
	})
}

func TestColumnSet(t *testing.T) {
	t.Run("r0 order first, r1-only appended", func(t *testing.T) {
		union := diff.ColumnSet(
			[]string{"Tag", "Qty", "Notes"},
			[]string{"Vendor", "Tag", "Qty"},
		)
		assert.Equal(t, []string{"Qty", "Notes", "Vendor"}, union)
	})

	t.Run("no duplicates", func(t *testing.T) {
		union := diff.ColumnSet([]string{"Qty", "Qty"}, []string{"Qty"})
		assert.Equal(t, []string{"Qty"}, union)
	})

	t.Run("key column never appears as a data column", func(t *testing.T) {
		assert.Empty(t, diff.ColumnSet([]string{"Tag"}, []string{"Tag"}))
		assert.Empty(t, diff.ColumnSet(nil, []string{"Tag"}))
	})

	t.Run("empty sides", func(t *testing.T) {
		assert.Equal(t, []string{"Qty"}, diff.ColumnSet(nil, []string{"Qty"}))
		assert.Empty(t, diff.ColumnSet(nil, nil))
	})
}

func TestOptions(t *testing.T) {
	t.Run("ignored columns never modify", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag", "Qty", "Updated"}, [][]string{
			{"A", "5", "2024-01-01"},
		})
		r1 := mustTable(t, "R1", []string{"Tag", "Qty", "Updated"}, [][]string{
			{"A", "5", "2024-06-01"},
		})

		result := diff.New(diff.WithIgnoredColumns("Updated")).Compare(r0, r1)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, diff.Unchanged, result.Rows[0].Change)
		assert.Equal(t, "2024-06-01", result.Rows[0].Cells["Updated"])
	})

	t.Run("custom arrow", func(t *testing.T) {
		r0 := mustTable(t, "R0", []string{"Tag", "Qty"}, [][]string{{"A", "5"}})
		r1 := mustTable(t, "R1", []string{"Tag", "Qty"}, [][]string{{"A", "6"}})

		result := diff.New(diff.WithArrow("=>")).Compare(r0, r1)

		assert.Equal(t, "=>", result.Arrow())
		assert.Equal(t, "5 => 6", result.Rows[0].Cells["Qty"])
	})
}

func TestFilter(t *testing.T) {
	r0 := mustTable(t, "R0", []string{"Tag", "Qty"}, [][]string{
		{"A", "5"},
		{"B", "10"},
	})
	r1 := mustTable(t, "R1", []string{"Tag", "Qty"}, [][]string{
		{"B", "12"},
		{"C", "1"},
	})
	result := diff.New().Compare(r0, r1)

	t.Run("by change type", func(t *testing.T) {
		modified := result.Filter(diff.Modified)
		require.Len(t, modified.Rows, 1)
		assert.Equal(t, "B", modified.Rows[0].Tag)
		assert.Equal(t, 1, modified.Summary.Total)

		// Per-side totals survive filtering
		assert.Equal(t, 2, modified.Summary.TagsInR0)
		assert.Equal(t, 2, modified.Summary.TagsInR1)
	})

	t.Run("empty filter returns all", func(t *testing.T) {
		assert.Equal(t, result, result.Filter(""))
	})

	t.Run("no matches", func(t *testing.T) {
		unchanged := result.Filter(diff.Unchanged)
		assert.Empty(t, unchanged.Rows)
		assert.Equal(t, 0, unchanged.Summary.Total)
	})
}

func TestParseChangeType(t *testing.T) {
	tests := []struct {
		input string
		want  diff.ChangeType
		ok    bool
	}{
		{"", "", true},
		{"all", "", true},
		{"added", diff.Added, true},
		{"Removed", diff.Removed, true},
		{"MODIFIED", diff.Modified, true},
		{"unchanged", diff.Unchanged, true},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		got, ok := diff.ParseChangeType(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tagdiff/internal/cmd/table"
	"github.com/agentstation/tagdiff/pkg/diff"
	"github.com/agentstation/tagdiff/pkg/tables"
)

func fixtureResult(t *testing.T) *diff.Result {
	t.Helper()

	r0, err := tables.New("R0", []string{"Tag", "Qty"}, [][]string{
		{"A", "5"},
		{"B", "10"},
	})
	require.NoError(t, err)

	r1, err := tables.New("R1", []string{"Tag", "Qty"}, [][]string{
		{"B", "12"},
		{"C", "1"},
	})
	require.NoError(t, err)

	return diff.New().Compare(r0, r1)
}

func TestResultToTableData(t *testing.T) {
	data := table.ResultToTableData(fixtureResult(t))

	assert.Equal(t, []string{"Tag", "Change Type", "Qty", "Change Summary"}, data.Headers)
	require.Len(t, data.Rows, 3)

	assert.Equal(t, []string{"A", "Removed", "5", ""}, data.Rows[0])
	assert.Equal(t, []string{"B", "Modified", "5 → 12", "Qty: 5 → 12"}, data.Rows[1])
	assert.Equal(t, []string{"C", "Added", "1", ""}, data.Rows[2])
}

func TestSummaryToTableData(t *testing.T) {
	data := table.SummaryToTableData(fixtureResult(t).Summary)

	assert.Equal(t, []string{"Metric", "Count"}, data.Headers)
	require.Len(t, data.Rows, 6)
	assert.Equal(t, []string{"Tags in R0", "2"}, data.Rows[0])
	assert.Equal(t, []string{"Added", "1"}, data.Rows[2])
	assert.Equal(t, []table.Align{table.AlignLeft, table.AlignRight}, data.ColumnAlignment)
}

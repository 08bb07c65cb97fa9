package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

func fixtureTable() *Table {
	columns := []table.ColumnInfo{
		{Name: "species", DataType: "text"},
		{Name: "price", DataType: "numeric"},
	}
	rows := []table.Row{
		{"species": table.Text("A"), "price": table.Number(10)},
		{"species": table.Text("A"), "price": table.Number(10)},
		{"species": table.Text("B"), "price": table.Number(5)},
		{"species": table.Text("C"), "price": table.Null()},
		{"species": table.Null(), "price": table.Number(-2)},
	}
	return New(columns, rows)
}

func TestRowCountAndColumns(t *testing.T) {
	tbl := fixtureTable()
	ctx := context.Background()

	n, err := tbl.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	columns, err := tbl.Columns(ctx)
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "species", columns[0].Name)
}

func TestCount(t *testing.T) {
	tbl := fixtureTable()
	ctx := context.Background()

	tests := []struct {
		name  string
		where table.Predicate
		want  int64
	}{
		{"match all", table.MatchAll(), 5},
		{"null price", table.AnyOf(table.IsNull("price")), 1},
		{"null species or price", table.AnyOf(table.IsNull("species"), table.IsNull("price")), 2},
		{"negative price", table.AnyOf(table.LessThan("price", 0)), 1},
		{"above five", table.AnyOf(table.GreaterThan("price", 5)), 2},
		{"outside range excludes nulls", table.AnyOf(table.OutsideRange("price", 0, 100)), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tbl.Count(ctx, tt.where)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestGroupedCount(t *testing.T) {
	tbl := fixtureTable()

	counts, err := tbl.GroupedCount(context.Background(), "species", table.AnyOf(table.IsNull("price")))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"C": 1}, counts)
}

func TestDuplicateRowCount(t *testing.T) {
	tbl := fixtureTable()
	ctx := context.Background()

	n, err := tbl.DuplicateRowCount(ctx, []string{"species", "price"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = tbl.DuplicateRowCount(ctx, nil)
	assert.Error(t, err)
}

func TestDuplicateRowCountGroupsNullsTogether(t *testing.T) {
	columns := []table.ColumnInfo{{Name: "species", DataType: "text"}}
	tbl := New(columns, []table.Row{
		{"species": table.Null()},
		{"species": table.Null()},
		{"species": table.Text("A")},
	})

	n, err := tbl.DuplicateRowCount(context.Background(), []string{"species"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestGroupedDuplicateRowCount(t *testing.T) {
	tbl := fixtureTable()

	counts, err := tbl.GroupedDuplicateRowCount(context.Background(), "species", []string{"price"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 2}, counts)
}

func TestMeanAndStdDevSkipNulls(t *testing.T) {
	columns := []table.ColumnInfo{{Name: "price", DataType: "numeric"}}
	tbl := New(columns, []table.Row{
		{"price": table.Number(2)},
		{"price": table.Number(4)},
		{"price": table.Null()},
	})
	ctx := context.Background()

	mean, err := tbl.Mean(ctx, "price")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean, 1e-9)

	// Population stddev over {2, 4}.
	dev, err := tbl.StdDev(ctx, "price")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dev, 1e-9)
}

func TestMeanAndStdDevEmptyColumn(t *testing.T) {
	columns := []table.ColumnInfo{{Name: "price", DataType: "numeric"}}
	tbl := New(columns, nil)
	ctx := context.Background()

	mean, err := tbl.Mean(ctx, "price")
	require.NoError(t, err)
	assert.Zero(t, mean)

	dev, err := tbl.StdDev(ctx, "price")
	require.NoError(t, err)
	assert.Zero(t, dev)
}

func TestRowsReturnsCopies(t *testing.T) {
	tbl := fixtureTable()
	ctx := context.Background()

	rows, err := tbl.Rows(ctx, table.AnyOf(table.LessThan("price", 0)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, table.Number(-2), rows[0]["price"])

	// Mutating the returned row must not leak into the table.
	rows[0]["price"] = table.Number(99)
	again, err := tbl.Rows(ctx, table.AnyOf(table.LessThan("price", 0)))
	require.NoError(t, err)
	require.Len(t, again, 1)
}

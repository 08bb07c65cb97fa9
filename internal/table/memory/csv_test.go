package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

func TestFromCSV(t *testing.T) {
	input := "species,price\nTulip,10.5\nDaffodil,\n,3\n"
	tbl, err := FromCSV(strings.NewReader(input), []string{"price"})
	require.NoError(t, err)
	ctx := context.Background()

	n, err := tbl.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	columns, err := tbl.Columns(ctx)
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "text", columns[0].DataType)
	assert.Equal(t, "numeric", columns[1].DataType)

	rows, err := tbl.Rows(ctx, table.MatchAll())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, table.Text("Tulip"), rows[0]["species"])
	assert.Equal(t, table.Number(10.5), rows[0]["price"])
	assert.Equal(t, table.Null(), rows[1]["price"])
	assert.Equal(t, table.Null(), rows[2]["species"])
}

func TestFromCSVErrors(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""), nil)
	assert.Error(t, err)

	_, err = FromCSV(strings.NewReader("species,price\nTulip,abc\n"), []string{"price"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/reportpipe/core"
)

func TestBuildGrid_SpansAndPruning(t *testing.T) {
	table := &core.Table{
		ID:          "000",
		RowCount:    4,
		ColumnCount: 4,
		Cells: []core.TableCell{
			// Header cell spanning two columns.
			{Content: "Year ended", Row: 0, Column: 1, ColumnSpan: 2},
			{Content: "Metric", Row: 0, Column: 0},
			{Content: "Revenue", Row: 1, Column: 0},
			{Content: "1,000", Row: 1, Column: 1},
			{Content: "900", Row: 1, Column: 2},
			// Row 2 and column 3 are entirely empty and must be pruned.
			{Content: "Costs", Row: 3, Column: 0},
			{Content: "400", Row: 3, Column: 1},
		},
	}

	grid, err := buildGrid(table)
	require.NoError(t, err)

	require.Len(t, grid, 3)
	require.Len(t, grid[0], 3)
	assert.Equal(t, []string{"Metric", "Year ended", "Year ended"}, grid[0])
	assert.Equal(t, []string{"Revenue", "1,000", "900"}, grid[1])
	assert.Equal(t, []string{"Costs", "400", ""}, grid[2])
}

func TestBuildGrid_Malformed(t *testing.T) {
	_, err := buildGrid(&core.Table{RowCount: 0, ColumnCount: 2})
	assert.ErrorIs(t, err, ErrMalformedTable)

	_, err = buildGrid(&core.Table{
		RowCount:    1,
		ColumnCount: 1,
		Cells:       []core.TableCell{{Content: "x", Row: 5, Column: 0}},
	})
	assert.ErrorIs(t, err, ErrMalformedTable)
}

func TestSplitHeader_TwoRowHeader(t *testing.T) {
	grid := [][]string{
		{"", "Year ended December 31,", "Year ended December 31,"},
		{"Metric", "2024", "2023"},
		{"Revenue", "1,000", "900"},
	}

	header, body := splitHeader(grid)
	assert.Equal(t, []string{"Metric", "Year ended December 31, 2024", "Year ended December 31, 2023"}, header)
	require.Len(t, body, 1)
	assert.Equal(t, "Revenue", body[0][0])
}

func TestSplitHeader_SingleRowHeader(t *testing.T) {
	grid := [][]string{
		{"Metric", "2024"},
		{"Revenue", "1,000"},
		{"Costs", "400"},
	}

	header, body := splitHeader(grid)
	assert.Equal(t, []string{"Metric", "2024"}, header)
	assert.Len(t, body, 2)
}

func TestSplitHeader_NoMergeForTinyTable(t *testing.T) {
	grid := [][]string{
		{"", "2024"},
		{"Revenue", "1,000"},
	}

	header, body := splitHeader(grid)
	assert.Equal(t, []string{"", "2024"}, header)
	assert.Len(t, body, 1)
}

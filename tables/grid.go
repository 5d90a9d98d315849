package tables

import (
	"fmt"
	"strings"

	"github.com/arkestra/reportpipe/core"
)

// buildGrid reconstructs a dense string grid from a table's cell
// inventory. Spanned cells repeat their content across every grid
// position they cover, so downstream row logic never sees holes.
func buildGrid(table *core.Table) ([][]string, error) {
	if table.RowCount <= 0 || table.ColumnCount <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrMalformedTable, table.RowCount, table.ColumnCount)
	}

	grid := make([][]string, table.RowCount)
	for i := range grid {
		grid[i] = make([]string, table.ColumnCount)
	}

	for _, cell := range table.Cells {
		if cell.Row < 0 || cell.Row >= table.RowCount ||
			cell.Column < 0 || cell.Column >= table.ColumnCount {
			return nil, fmt.Errorf("%w: cell (%d,%d) outside %dx%d",
				ErrMalformedTable, cell.Row, cell.Column, table.RowCount, table.ColumnCount)
		}

		rowSpan := max(cell.RowSpan, 1)
		colSpan := max(cell.ColumnSpan, 1)
		content := core.NormalizeWhitespace(cell.Content)

		for r := cell.Row; r < cell.Row+rowSpan && r < table.RowCount; r++ {
			for c := cell.Column; c < cell.Column+colSpan && c < table.ColumnCount; c++ {
				grid[r][c] = content
			}
		}
	}

	return pruneEmpty(grid), nil
}

// pruneEmpty drops rows and columns that are entirely empty.
func pruneEmpty(grid [][]string) [][]string {
	rows := make([][]string, 0, len(grid))
	for _, row := range grid {
		if !rowEmpty(row) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return rows
	}

	cols := len(rows[0])
	keep := make([]int, 0, cols)
	for c := 0; c < cols; c++ {
		empty := true
		for _, row := range rows {
			if strings.TrimSpace(row[c]) != "" {
				empty = false
				break
			}
		}
		if !empty {
			keep = append(keep, c)
		}
	}
	if len(keep) == cols {
		return rows
	}

	pruned := make([][]string, len(rows))
	for i, row := range rows {
		pruned[i] = make([]string, len(keep))
		for j, c := range keep {
			pruned[i][j] = row[c]
		}
	}
	return pruned
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// splitHeader separates the header rows from the body. Financial tables
// often spread column labels over two rows, a spanning caption like
// "Year ended December 31," above the actual years. The caption row has
// an empty label column, which is the cue to merge it down into the row
// below, joining the stacked labels with a space.
func splitHeader(grid [][]string) (header []string, body [][]string) {
	if len(grid) == 0 {
		return nil, nil
	}

	header = grid[0]
	body = grid[1:]

	if len(grid) >= 3 && strings.TrimSpace(header[0]) == "" {
		merged := make([]string, len(header))
		for i := range header {
			merged[i] = strings.TrimSpace(header[i] + " " + grid[1][i])
		}
		header = merged
		body = grid[2:]
	}

	return header, body
}

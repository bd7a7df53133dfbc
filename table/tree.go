// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package table

// TreeCell is a cell positioned in the grid. Children are the cells that
// were discovered below this cell's bottom edge while walking the table.
type TreeCell struct {
	Content  *CellContent
	Row      int
	Column   int
	Children []*TreeCell
}

// EndRow returns the row index just past the cell's footprint.
func (c *TreeCell) EndRow() int {
	return c.Row + c.Content.MoreRows + 1
}

// EndColumn returns the column index just past the cell's footprint.
func (c *TreeCell) EndColumn() int {
	return c.Column + c.Content.MoreCols + 1
}

// TreeTable is a resolved table layout. HeaderRow is the deepest row that
// holds a header cell, or nil when the table has no header band.
type TreeTable struct {
	HeaderRow    *int
	RowHeights   []int
	ColumnWidths []int
	TopRow       []*TreeCell
}

// IsHeaderRow returns true if row is the last row of the header band.
func (t *TreeTable) IsHeaderRow(row int) bool {
	return t.HeaderRow != nil && *t.HeaderRow == row
}

// Cells returns every cell of the tree in pre-order, left to right.
func (t *TreeTable) Cells() []*TreeCell {
	var result []*TreeCell

	stack := make([]*TreeCell, 0, len(t.TopRow))
	for i := len(t.TopRow) - 1; i >= 0; i-- {
		stack = append(stack, t.TopRow[i])
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, current)
		for i := len(current.Children) - 1; i >= 0; i-- {
			stack = append(stack, current.Children[i])
		}
	}

	return result
}

// Width returns the number of characters between the cell's left and right
// borders, counting the dividers it swallows.
func (t *TreeTable) Width(c *TreeCell) int {
	return c.Content.MoreCols + sum(t.ColumnWidths[c.Column:c.EndColumn()])
}

// Height returns the number of lines between the cell's top and bottom
// borders, counting the dividers it swallows.
func (t *TreeTable) Height(c *TreeCell) int {
	return c.Content.MoreRows + sum(t.RowHeights[c.Row:c.EndRow()])
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

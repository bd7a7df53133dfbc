// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package table

// Treeify resolves the span topology of the table and sizes its rows and
// columns.
//
// Every row keeps a cursor into its sparse cell list and the column just
// past the last cell placed in it. Starting from each cell of the first
// row, an explicit stack walks down: as long as some row below the current
// cell's bottom edge is not yet filled up to its right edge, the next cell
// of that row becomes a child of the current cell. Cells are sized when
// they are popped. Cells spanning several rows or columns are sized last,
// and any space they lack is credited to the row or column where the span
// begins.
func (t *Table) Treeify() (*TreeTable, error) {
	if len(t.Rows) == 0 {
		return &TreeTable{}, nil
	}

	columns := t.Columns()
	if columns != len(t.ColumnWidths) {
		return nil, NewError(WidthMismatchErr, 0, 0, "%d column widths declared but the first row spans %d columns", len(t.ColumnWidths), columns)
	}

	for i, width := range t.ColumnWidths {
		if width < 0 {
			return nil, NewError(SpanErr, 0, i, "negative column width %d", width)
		}
	}

	r := resolver{
		table:           t,
		columns:         columns,
		rowHeights:      make([]int, len(t.Rows)),
		columnWidths:    make([]int, columns),
		inColumnIndexes: make([]int, len(t.Rows)),
		inColumns:       make([]int, len(t.Rows)),
	}

	copy(r.columnWidths, t.ColumnWidths)

	var topRow []*TreeCell

	for _, cell := range t.Rows[0] {
		first, err := r.place(cell, 0)
		if err != nil {
			return nil, err
		}
		topRow = append(topRow, first)

		if err := r.walk(first); err != nil {
			return nil, err
		}
	}

	if err := r.checkFilled(); err != nil {
		return nil, err
	}

	r.expandRowspans()
	r.expandColspans()

	return &TreeTable{
		HeaderRow:    r.headerRow,
		RowHeights:   r.rowHeights,
		ColumnWidths: r.columnWidths,
		TopRow:       topRow,
	}, nil
}

type resolver struct {
	table   *Table
	columns int

	headerRow    *int
	rowHeights   []int
	columnWidths []int

	// Index of the next unused cell in a row.
	inColumnIndexes []int

	// Number of columns to the left of the next unused cell in a row.
	inColumns []int

	// Cells spanning several rows or columns, in the order they were sized.
	rowspans []*TreeCell
	colspans []*TreeCell
}

// place positions the next unused cell of row at the row's fill column.
func (r *resolver) place(cell *CellContent, row int) (*TreeCell, error) {
	current := &TreeCell{
		Content: cell,
		Row:     row,
		Column:  r.inColumns[row],
	}

	if cell.MoreCols < 0 || cell.MoreRows < 0 {
		return nil, NewError(SpanErr, current.Row, current.Column, "negative span (morecols=%d, morerows=%d)", cell.MoreCols, cell.MoreRows)
	}

	// Compare against the remaining room so huge spans cannot overflow.
	if cell.MoreCols >= r.columns-current.Column {
		return nil, NewError(SpanErr, current.Row, current.Column, "cell spans %d more columns but the table has %d columns", cell.MoreCols, r.columns)
	}

	if cell.MoreRows >= len(r.table.Rows)-current.Row {
		return nil, NewError(SpanErr, current.Row, current.Column, "cell spans %d more rows but the table has %d rows", cell.MoreRows, len(r.table.Rows))
	}

	return current, nil
}

func (r *resolver) walk(first *TreeCell) error {
	stack := []*TreeCell{first}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		endColumn := current.EndColumn()
		endRow := current.EndRow()

		if endRow < len(r.inColumns) && r.inColumns[endRow] < endColumn {
			// Still children to visit.
			off := r.inColumnIndexes[endRow]
			if off >= len(r.table.Rows[endRow]) {
				return NewError(CoverageErr, endRow, r.inColumns[endRow], "no cell left in row %d to cover column %d", endRow, r.inColumns[endRow])
			}

			child, err := r.place(r.table.Rows[endRow][off], endRow)
			if err != nil {
				return err
			}

			stack = append(stack, child)
			current.Children = append(current.Children, child)
			continue
		}

		// No more children.
		stack = stack[:len(stack)-1]

		r.inColumnIndexes[current.Row]++

		for row := current.Row; row < endRow; row++ {
			if r.inColumns[row] != current.Column {
				return NewError(CoverageErr, row, current.Column, "cell from row %d overlaps or leaves a gap at column %d", current.Row, r.inColumns[row])
			}
			r.inColumns[row] = endColumn
		}

		r.size(current)
	}

	return nil
}

// size folds a popped cell into the running row and column maxima, or
// defers it when it spans.
func (r *resolver) size(current *TreeCell) {
	cell := current.Content

	if cell.Header {
		if r.headerRow == nil || current.Row > *r.headerRow {
			row := current.Row
			r.headerRow = &row
		}
	}

	if cell.MoreCols == 0 {
		r.columnWidths[current.Column] = max(r.columnWidths[current.Column], cell.ContentWidth())
	} else {
		r.colspans = append(r.colspans, current)
	}

	if cell.MoreRows == 0 {
		r.rowHeights[current.Row] = max(r.rowHeights[current.Row], cell.ContentHeight())
	} else {
		r.rowspans = append(r.rowspans, current)
	}
}

// checkFilled reports every row that still has unreachable cells or is not
// covered up to the last column.
func (r *resolver) checkFilled() error {
	var errs Errors
	for row, cells := range r.table.Rows {
		if r.inColumnIndexes[row] != len(cells) {
			errs = append(errs, NewError(CoverageErr, row, r.inColumns[row], "%d of %d cells in row %d are not reachable", len(cells)-r.inColumnIndexes[row], len(cells), row))
		}
		if r.inColumns[row] != r.columns {
			errs = append(errs, NewError(CoverageErr, row, r.inColumns[row], "row %d is only covered up to column %d of %d", row, r.inColumns[row], r.columns))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// expandRowspans grows the origin row of every cell spanning several rows
// until the rows it covers, plus the dividers between them, hold it.
func (r *resolver) expandRowspans() {
	for _, current := range r.rowspans {
		cumulative := current.Content.MoreRows + sum(r.rowHeights[current.Row:current.EndRow()])
		if extra := current.Content.ContentHeight() - cumulative; extra > 0 {
			r.rowHeights[current.Row] += extra
		}
	}
}

// expandColspans is the column counterpart of expandRowspans.
func (r *resolver) expandColspans() {
	for _, current := range r.colspans {
		cumulative := current.Content.MoreCols + sum(r.columnWidths[current.Column:current.EndColumn()])
		if extra := current.Content.ContentWidth() - cumulative; extra > 0 {
			r.columnWidths[current.Column] += extra
		}
	}
}

// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package table

import "math"

// Table is a grid as authored. Each entry of Rows is sparse: it holds only
// the cells that start in that row. A cell spanning several rows does not
// reappear in the rows it continues through.
type Table struct {
	ColumnWidths []int
	Rows         [][]*CellContent

	// InHeader is set while header band rows are being appended.
	InHeader bool
}

// New returns an empty table with the declared column widths.
func New(columnWidths []int) *Table {
	widths := make([]int, len(columnWidths))
	copy(widths, columnWidths)
	return &Table{ColumnWidths: widths}
}

// BeginHeader marks the following rows as part of the header band.
func (t *Table) BeginHeader() error {
	if t.InHeader {
		return NewError(BuildErr, len(t.Rows), 0, "header band already open")
	}
	t.InHeader = true
	return nil
}

// EndHeader closes the header band.
func (t *Table) EndHeader() error {
	if !t.InHeader {
		return NewError(BuildErr, len(t.Rows), 0, "no header band open")
	}
	t.InHeader = false
	return nil
}

// AddRow starts a new row.
func (t *Table) AddRow() {
	t.Rows = append(t.Rows, []*CellContent{})
}

// AddCell appends a cell to the current row. Cells added between
// BeginHeader and EndHeader belong to the header band.
func (t *Table) AddCell(lines []string, morecols, morerows int) (*CellContent, error) {
	if len(t.Rows) == 0 {
		return nil, NewError(BuildErr, 0, 0, "cell added before any row")
	}
	row := len(t.Rows) - 1
	if morecols < 0 || morerows < 0 {
		return nil, NewError(SpanErr, row, len(t.Rows[row]), "negative span (morecols=%d, morerows=%d)", morecols, morerows)
	}
	cell := &CellContent{
		Lines:    lines,
		Header:   t.InHeader,
		MoreCols: morecols,
		MoreRows: morerows,
	}
	t.Rows[row] = append(t.Rows[row], cell)
	return cell, nil
}

// Columns returns the number of columns spanned by the first row, which is
// the column count of the whole grid. A negative span counts as one column
// and the count saturates at math.MaxInt.
func (t *Table) Columns() int {
	if len(t.Rows) == 0 {
		return 0
	}
	n := 0
	for _, cell := range t.Rows[0] {
		span := max(cell.MoreCols, 0)
		if span >= math.MaxInt-n {
			return math.MaxInt
		}
		n += span + 1
	}
	return n
}

// NumCells returns the number of authored cells.
func (t *Table) NumCells() int {
	n := 0
	for _, row := range t.Rows {
		n += len(row)
	}
	return n
}

// Render resolves the table layout and draws it.
func (t *Table) Render() ([]string, error) {
	tree, err := t.Treeify()
	if err != nil {
		return nil, err
	}
	return RenderTree(tree)
}

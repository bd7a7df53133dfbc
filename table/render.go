// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package table

import "strings"

// RowDivider returns the border drawn below (or above) a cell that is width
// characters wide. Cells in the first column also get the leading corner.
func RowDivider(column, width int, header bool) string {
	var sb strings.Builder

	if column == 0 {
		sb.WriteByte('+')
	}

	fill := "-"
	if header {
		fill = "="
	}
	sb.WriteString(strings.Repeat(fill, width))

	sb.WriteByte('+')
	return sb.String()
}

// RenderTree draws a resolved table. The result holds one string per
// physical line: sum(RowHeights) + len(RowHeights) + 1 lines, all of the
// same width.
//
// Cells are drawn in pre-order. Each cell appends its content lines and the
// divider below it to the line buffers it covers, then forces a + onto the
// border above its top left corner so junctions come out right whatever
// order neighbouring cells were drawn in.
func RenderTree(tree *TreeTable) ([]string, error) {

	lineCount := sum(tree.RowHeights) + len(tree.RowHeights) + 1
	lines := make([][]rune, lineCount)

	for _, current := range tree.Cells() {
		cell := current.Content

		if err := checkBounds(tree, current); err != nil {
			return nil, err
		}

		width := tree.Width(current)
		height := tree.Height(current)

		lineOffset := 1 + current.Row + sum(tree.RowHeights[:current.Row])
		left := len(lines[lineOffset])

		prefix := ""
		if current.Column == 0 {
			prefix = "|"
		}

		for idx := 0; idx < height; idx++ {
			line := ""
			if idx < len(cell.Lines) {
				line = cell.Lines[idx]
			}
			lines[lineOffset+idx] = append(lines[lineOffset+idx], []rune(prefix+ljust(line, width)+"|")...)
		}

		// Draw top divider.
		if current.Row == 0 {
			lines[0] = append(lines[0], []rune(RowDivider(current.Column, width, false))...)
		}

		// Draw dividers between rows.
		below := lineOffset + height
		lines[below] = append(lines[below], []rune(RowDivider(current.Column, width, tree.IsHeaderRow(current.Row)))...)

		if left > 0 {
			above := lines[lineOffset-1]
			if left > len(above) {
				return nil, NewError(CoverageErr, current.Row, current.Column, "border above cell ends at %d, before the cell's left edge at %d", len(above), left)
			}
			above[left-1] = '+'
		}
	}

	result := make([]string, len(lines))
	for i := range lines {
		result[i] = string(lines[i])
	}

	return result, nil
}

func checkBounds(tree *TreeTable, current *TreeCell) error {
	cell := current.Content
	switch {
	case cell.MoreCols < 0 || cell.MoreRows < 0:
		return NewError(SpanErr, current.Row, current.Column, "negative span (morecols=%d, morerows=%d)", cell.MoreCols, cell.MoreRows)
	case current.Row < 0 || current.Column < 0:
		return NewError(SpanErr, current.Row, current.Column, "negative cell position")
	case cell.MoreCols >= len(tree.ColumnWidths)-current.Column:
		return NewError(SpanErr, current.Row, current.Column, "cell spans %d more columns but the layout has %d columns", cell.MoreCols, len(tree.ColumnWidths))
	case cell.MoreRows >= len(tree.RowHeights)-current.Row:
		return NewError(SpanErr, current.Row, current.Column, "cell spans %d more rows but the layout has %d rows", cell.MoreRows, len(tree.RowHeights))
	}
	for _, w := range tree.ColumnWidths[current.Column:current.EndColumn()] {
		if w < 0 {
			return NewError(SpanErr, current.Row, current.Column, "negative column width %d", w)
		}
	}
	for _, h := range tree.RowHeights[:current.EndRow()] {
		if h < 0 {
			return NewError(SpanErr, current.Row, current.Column, "negative row height %d", h)
		}
	}
	return nil
}

// ljust pads s with spaces to width characters.
func ljust(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

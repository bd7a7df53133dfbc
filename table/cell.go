// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package table lays out logical tables, whose cells may span several rows
// and columns, as fixed-width grid tables drawn with +, -, = and |.
//
// Layout happens in two phases. Treeify reconstructs the span topology from
// the sparse per-row cell lists and resolves column widths and row heights.
// RenderTree turns the resolved tree into printable lines.
package table

import "unicode/utf8"

// CellContent is a single table cell as authored: its rendered text lines
// and its span declaration.
type CellContent struct {
	Lines    []string `json:"lines"`
	Header   bool     `json:"header,omitempty"`
	MoreCols int      `json:"morecols,omitempty"`
	MoreRows int      `json:"morerows,omitempty"`
}

// ContentWidth returns the length of the longest line in characters.
func (c *CellContent) ContentWidth() int {
	width := 0
	for _, line := range c.Lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	return width
}

// ContentHeight returns the number of lines in the cell.
func (c *CellContent) ContentHeight() int {
	return len(c.Lines)
}

// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cell(morecols, morerows int, lines ...string) *CellContent {
	return &CellContent{Lines: lines, MoreCols: morecols, MoreRows: morerows}
}

func header(morecols, morerows int, lines ...string) *CellContent {
	c := cell(morecols, morerows, lines...)
	c.Header = true
	return c
}

func TestTreeifyRowspan(t *testing.T) {
	tbl := &Table{
		ColumnWidths: []int{5, 7},
		Rows: [][]*CellContent{
			{cell(0, 1, "a", "b", "c"), cell(0, 0, "hello world")},
			{cell(0, 0, "d")},
		},
	}

	tree, err := tbl.Treeify()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if diff := cmp.Diff([]int{5, 11}, tree.ColumnWidths); diff != "" {
		t.Errorf("column widths (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1}, tree.RowHeights); diff != "" {
		t.Errorf("row heights (-want +got):\n%s", diff)
	}

	if len(tree.TopRow) != 2 {
		t.Fatalf("Expected 2 top row cells, got %d", len(tree.TopRow))
	}

	first := tree.TopRow[0]
	if first.Content != tbl.Rows[0][0] || first.Row != 0 || first.Column != 0 || len(first.Children) != 0 {
		t.Errorf("Unexpected first top cell: %+v", first)
	}

	second := tree.TopRow[1]
	if second.Content != tbl.Rows[0][1] || second.Row != 0 || second.Column != 1 {
		t.Errorf("Unexpected second top cell: %+v", second)
	}

	if len(second.Children) != 1 {
		t.Fatalf("Expected 1 child of second top cell, got %d", len(second.Children))
	}

	bottom := second.Children[0]
	if bottom.Content != tbl.Rows[1][0] || bottom.Row != 1 || bottom.Column != 1 || len(bottom.Children) != 0 {
		t.Errorf("Unexpected bottom cell: %+v", bottom)
	}

	if tree.HeaderRow != nil {
		t.Errorf("Expected no header row, got %d", *tree.HeaderRow)
	}
}

func TestTreeifyColspan(t *testing.T) {
	tbl := &Table{
		ColumnWidths: []int{5, 7},
		Rows: [][]*CellContent{
			{cell(1, 0, "a", "b", "c")},
			{cell(0, 0, "hello world"), cell(0, 0, "d")},
		},
	}

	tree, err := tbl.Treeify()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if diff := cmp.Diff([]int{3, 1}, tree.RowHeights); diff != "" {
		t.Errorf("row heights (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{11, 7}, tree.ColumnWidths); diff != "" {
		t.Errorf("column widths (-want +got):\n%s", diff)
	}

	if len(tree.TopRow) != 1 {
		t.Fatalf("Expected 1 top row cell, got %d", len(tree.TopRow))
	}

	top := tree.TopRow[0]
	if len(top.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(top.Children))
	}

	for i, child := range top.Children {
		if child.Content != tbl.Rows[1][i] || child.Row != 1 || child.Column != i || len(child.Children) != 0 {
			t.Errorf("Unexpected child %d: %+v", i, child)
		}
	}
}

func TestTreeifySizing(t *testing.T) {
	tests := []struct {
		note    string
		widths  []int
		rows    [][]*CellContent
		columns []int
		heights []int
	}{
		{
			note:    "rowspan expands origin row",
			widths:  []int{5, 7},
			rows:    [][]*CellContent{{cell(0, 1, "a", "a", "a", "a"), cell(0, 0, "d")}, {cell(0, 0, "d")}},
			columns: []int{5, 7},
			heights: []int{2, 1},
		},
		{
			note:    "colspan expands origin column",
			widths:  []int{4, 3},
			rows:    [][]*CellContent{{cell(1, 0, "aaaaaaaaa")}, {cell(0, 0, "d"), cell(0, 0, "e")}},
			columns: []int{5, 3},
			heights: []int{1, 1},
		},
		{
			note:    "span that fits adds nothing",
			widths:  []int{4, 3},
			rows:    [][]*CellContent{{cell(1, 0, "aaaaaaaa")}, {cell(0, 0, "d"), cell(0, 0, "e")}},
			columns: []int{4, 3},
			heights: []int{1, 1},
		},
		{
			note:    "empty cell does not shrink",
			widths:  []int{2, 2},
			rows:    [][]*CellContent{{cell(0, 0), cell(0, 0, "xyz", "x")}, {cell(0, 0, "abcd", "a", "b"), cell(0, 0)}},
			columns: []int{4, 3},
			heights: []int{2, 3},
		},
		{
			note:    "no spans is column maximum",
			widths:  []int{1, 6, 0},
			rows:    [][]*CellContent{{cell(0, 0, "abc"), cell(0, 0, "ab"), cell(0, 0)}, {cell(0, 0, "a"), cell(0, 0, "abcdefgh"), cell(0, 0, "z")}},
			columns: []int{3, 8, 1},
			heights: []int{1, 1},
		},
		{
			note:    "character count not bytes",
			widths:  []int{1},
			rows:    [][]*CellContent{{cell(0, 0, "héllo")}},
			columns: []int{5},
			heights: []int{1},
		},
		{
			note:    "row with only continuing cells",
			widths:  []int{1},
			rows:    [][]*CellContent{{cell(0, 1, "a", "b", "c", "d")}, {}},
			columns: []int{1},
			heights: []int{3, 0},
		},
		{
			note:   "both spans expand origin",
			widths: []int{1, 1, 1},
			rows: [][]*CellContent{
				{cell(1, 1, "abcdefg", "2", "3", "4", "5"), cell(0, 0, "x")},
				{cell(0, 0, "y")},
				{cell(0, 0, "p"), cell(0, 0, "q"), cell(0, 0, "r")},
			},
			columns: []int{5, 1, 1},
			heights: []int{3, 1, 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			tbl := &Table{ColumnWidths: tc.widths, Rows: tc.rows}
			tree, err := tbl.Treeify()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.columns, tree.ColumnWidths); diff != "" {
				t.Errorf("column widths (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.heights, tree.RowHeights); diff != "" {
				t.Errorf("row heights (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTreeifyEmpty(t *testing.T) {
	tree, err := (&Table{}).Treeify()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tree.RowHeights) != 0 || len(tree.ColumnWidths) != 0 || len(tree.TopRow) != 0 || tree.HeaderRow != nil {
		t.Fatalf("Expected empty tree, got %+v", tree)
	}
}

func TestTreeifyHeaderRow(t *testing.T) {
	tbl := &Table{
		ColumnWidths: []int{1, 1},
		Rows: [][]*CellContent{
			{header(0, 1, "h"), header(0, 0, "i")},
			{header(0, 0, "j")},
			{cell(0, 0, "k"), cell(0, 0, "l")},
		},
	}

	tree, err := tbl.Treeify()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tree.HeaderRow == nil || *tree.HeaderRow != 1 {
		t.Fatalf("Expected header row 1, got %v", tree.HeaderRow)
	}
}

// Every grid position must be covered by exactly one cell footprint.
func TestTreeifyCoverage(t *testing.T) {
	tbl := &Table{
		ColumnWidths: []int{2, 2, 2, 2},
		Rows: [][]*CellContent{
			{cell(0, 0, "a"), cell(1, 0, "b"), cell(0, 2, "c")},
			{cell(0, 1, "d"), cell(0, 0, "e"), cell(0, 0, "f")},
			{cell(1, 0, "g")},
			{cell(0, 0, "h"), cell(2, 0, "i")},
		},
	}

	tree, err := tbl.Treeify()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	covered := make([][]int, len(tbl.Rows))
	for i := range covered {
		covered[i] = make([]int, len(tbl.ColumnWidths))
	}

	cells := tree.Cells()
	if len(cells) != tbl.NumCells() {
		t.Fatalf("Expected %d cells in tree, got %d", tbl.NumCells(), len(cells))
	}

	for _, c := range cells {
		for row := c.Row; row < c.EndRow(); row++ {
			for col := c.Column; col < c.EndColumn(); col++ {
				covered[row][col]++
			}
		}
	}

	for row := range covered {
		for col := range covered[row] {
			if covered[row][col] != 1 {
				t.Errorf("Expected (%d, %d) covered once, got %d", row, col, covered[row][col])
			}
		}
	}
}

func TestTreeifyErrors(t *testing.T) {
	tests := []struct {
		note   string
		widths []int
		rows   [][]*CellContent
		code   ErrCode
	}{
		{
			note:   "too many declared widths",
			widths: []int{1, 1, 1},
			rows:   [][]*CellContent{{cell(0, 0, "a"), cell(0, 0, "b")}},
			code:   WidthMismatchErr,
		},
		{
			note:   "too few declared widths",
			widths: []int{1},
			rows:   [][]*CellContent{{cell(1, 0, "a")}},
			code:   WidthMismatchErr,
		},
		{
			note:   "negative width",
			widths: []int{-1},
			rows:   [][]*CellContent{{cell(0, 0, "a")}},
			code:   SpanErr,
		},
		{
			note:   "rowspan past last row",
			widths: []int{1},
			rows:   [][]*CellContent{{cell(0, 1, "a")}},
			code:   SpanErr,
		},
		{
			note:   "colspan past last column",
			widths: []int{1, 1},
			rows:   [][]*CellContent{{cell(0, 0, "a"), cell(0, 0, "b")}, {cell(2, 0, "c")}},
			code:   SpanErr,
		},
		{
			note:   "missing cell",
			widths: []int{1, 1},
			rows:   [][]*CellContent{{cell(0, 0, "a"), cell(0, 0, "b")}, {cell(0, 0, "c")}},
			code:   CoverageErr,
		},
		{
			note:   "extra cell",
			widths: []int{1},
			rows:   [][]*CellContent{{cell(0, 0, "a")}, {cell(0, 0, "b"), cell(0, 0, "c")}},
			code:   CoverageErr,
		},
		{
			note:   "colspan overflows int",
			widths: []int{1, 1},
			rows:   [][]*CellContent{{cell(0, 0, "a"), cell(0, 0, "b")}, {cell(math.MaxInt, 0, "c"), cell(0, 0, "d")}},
			code:   SpanErr,
		},
		{
			note:   "rowspan overflows int",
			widths: []int{1, 1},
			rows:   [][]*CellContent{{cell(0, 0, "a"), cell(0, 0, "b")}, {cell(0, math.MaxInt, "c"), cell(0, 0, "d")}},
			code:   SpanErr,
		},
		{
			note:   "first row spans wrap around",
			widths: []int{1, 1},
			rows:   [][]*CellContent{{cell(math.MaxInt, 0, "a"), cell(math.MaxInt, 0, "b"), cell(1, 0, "c")}},
			code:   WidthMismatchErr,
		},
		{
			note:   "overlap",
			widths: []int{1, 1},
			rows:   [][]*CellContent{{cell(0, 0, "a"), cell(0, 1, "b")}, {cell(1, 0, "c")}},
			code:   CoverageErr,
		},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			tbl := &Table{ColumnWidths: tc.widths, Rows: tc.rows}
			_, err := tbl.Treeify()
			if !IsError(tc.code, err) {
				t.Fatalf("Expected %v, got %v", tc.code, err)
			}
		})
	}
}

func TestTreeifyReportsEveryUncoveredRow(t *testing.T) {
	tbl := &Table{
		ColumnWidths: []int{1, 1},
		Rows: [][]*CellContent{
			{cell(0, 0, "a"), cell(0, 0, "b")},
			{cell(0, 0, "c"), cell(0, 0, "d"), cell(0, 0, "x")},
			{cell(0, 0, "e"), cell(0, 0, "f"), cell(0, 0, "y")},
		},
	}

	_, err := tbl.Treeify()

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("Expected aggregated errors, got %v", err)
	}

	var rows []int
	for _, e := range errs {
		if e.Code != CoverageErr {
			t.Errorf("Expected coverage error, got %v", e)
		}
		rows = append(rows, e.Row)
	}

	if diff := cmp.Diff([]int{1, 2}, rows); diff != "" {
		t.Fatalf("Unexpected rows (-want, +got):\n%s", diff)
	}
	if !IsError(CoverageErr, err) {
		t.Fatalf("Expected IsError to match aggregated coverage error")
	}
}

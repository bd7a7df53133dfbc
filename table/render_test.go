// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package table

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestRowDivider(t *testing.T) {
	tests := []struct {
		note   string
		column int
		width  int
		header bool
		exp    string
	}{
		{note: "first column", column: 0, width: 3, exp: "+---+"},
		{note: "other column", column: 2, width: 3, exp: "---+"},
		{note: "header", column: 0, width: 2, header: true, exp: "+==+"},
		{note: "zero width", column: 1, width: 0, exp: "+"},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			if act := RowDivider(tc.column, tc.width, tc.header); act != tc.exp {
				t.Fatalf("Expected %q, got %q", tc.exp, act)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		note   string
		widths []int
		rows   [][]*CellContent
		exp    []string
	}{
		{
			note:   "empty",
			widths: nil,
			rows:   nil,
			exp:    []string{""},
		},
		{
			note:   "single cell",
			widths: []int{3},
			rows:   [][]*CellContent{{cell(0, 0, "ab")}},
			exp: []string{
				"+---+",
				"|ab |",
				"+---+",
			},
		},
		{
			note:   "rowspan",
			widths: []int{5, 7},
			rows:   [][]*CellContent{{cell(0, 1, "a", "b", "c"), cell(0, 0, "hello world")}, {cell(0, 0, "d")}},
			exp: []string{
				"+-----+-----------+",
				"|a    |hello world|",
				"|b    +-----------+",
				"|c    |d          |",
				"+-----+-----------+",
			},
		},
		{
			note:   "colspan",
			widths: []int{5, 7},
			rows:   [][]*CellContent{{cell(1, 0, "a", "b", "c")}, {cell(0, 0, "hello world"), cell(0, 0, "d")}},
			exp: []string{
				"+-------------------+",
				"|a                  |",
				"|b                  |",
				"|c                  |",
				"+-----------+-------+",
				"|hello world|d      |",
				"+-----------+-------+",
			},
		},
		{
			note:   "header band",
			widths: []int{1, 1},
			rows:   [][]*CellContent{{header(0, 0, "a"), header(0, 0, "b")}, {cell(0, 0, "c"), cell(0, 0, "d")}},
			exp: []string{
				"+-+-+",
				"|a|b|",
				"+=+=+",
				"|c|d|",
				"+-+-+",
			},
		},
		{
			note:   "blank padding",
			widths: []int{2, 2},
			rows:   [][]*CellContent{{cell(0, 0, "x", "y"), cell(0, 0)}},
			exp: []string{
				"+--+--+",
				"|x |  |",
				"|y |  |",
				"+--+--+",
			},
		},
		{
			note:   "zero height row",
			widths: []int{1},
			rows:   [][]*CellContent{{cell(0, 1, "a", "b", "c", "d")}, {}},
			exp: []string{
				"+-+",
				"|a|",
				"|b|",
				"|c|",
				"|d|",
				"+-+",
			},
		},
		{
			note:   "wide characters counted once",
			widths: []int{1},
			rows:   [][]*CellContent{{cell(0, 0, "héllo")}},
			exp: []string{
				"+-----+",
				"|héllo|",
				"+-----+",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			tbl := &Table{ColumnWidths: tc.widths, Rows: tc.rows}
			lines, err := tbl.Render()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.exp, lines); diff != "" {
				t.Fatalf("rendered lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderShape(t *testing.T) {
	tbl := New([]int{2, 2, 2, 2})

	rows := [][]*CellContent{
		{cell(0, 0, "a"), cell(1, 0, "bbbbbbbb"), cell(0, 2, "c", "c", "c", "c", "c", "c")},
		{cell(0, 1, "d"), cell(0, 0, "e"), cell(0, 0, "f")},
		{cell(1, 0, "g")},
		{cell(0, 0, "h"), cell(2, 0, "i")},
	}
	tbl.Rows = rows

	tree, err := tbl.Treeify()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines, err := RenderTree(tree)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if exp := sum(tree.RowHeights) + len(tree.RowHeights) + 1; len(lines) != exp {
		t.Fatalf("Expected %d lines, got %d", exp, len(lines))
	}

	width := len(tree.ColumnWidths) + 1 + sum(tree.ColumnWidths)
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			t.Errorf("Expected line %d to be %d wide, got %d: %q", i, width, n, line)
		}
	}

	if lines[0][0] != '+' || lines[len(lines)-1][0] != '+' {
		t.Errorf("Expected corner junctions, got:\n%v", lines)
	}
}

func TestRenderTreeOutOfRange(t *testing.T) {
	tree := &TreeTable{
		RowHeights:   []int{1},
		ColumnWidths: []int{1},
		TopRow: []*TreeCell{
			{Content: cell(1, 0, "a"), Row: 0, Column: 0},
		},
	}

	_, err := RenderTree(tree)
	if !IsError(SpanErr, err) {
		t.Fatalf("Expected span error, got %v", err)
	}
}

func TestRenderTreeSpanOverflow(t *testing.T) {
	for _, c := range []*CellContent{cell(math.MaxInt, 0, "a"), cell(0, math.MaxInt, "a")} {
		tree := &TreeTable{
			RowHeights:   []int{1},
			ColumnWidths: []int{1, 1},
			TopRow: []*TreeCell{
				{Content: cell(0, 0, "a"), Row: 0, Column: 0},
				{Content: c, Row: 0, Column: 1},
			},
		}

		if _, err := RenderTree(tree); !IsError(SpanErr, err) {
			t.Fatalf("Expected span error for morecols=%d morerows=%d, got %v", c.MoreCols, c.MoreRows, err)
		}
	}
}

func TestRenderContractViolation(t *testing.T) {
	tbl := &Table{
		ColumnWidths: []int{1, 1},
		Rows:         [][]*CellContent{{cell(0, 0, "a"), cell(0, 0, "b")}, {cell(0, 0, "c")}},
	}

	lines, err := tbl.Render()
	if !IsError(CoverageErr, err) {
		t.Fatalf("Expected coverage error, got %v", err)
	}
	if lines != nil {
		t.Fatalf("Expected no output, got %v", lines)
	}
}

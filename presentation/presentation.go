// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package presentation prints resolved table layouts and metrics in json,
// yaml and tabular formats.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/gridfmt/gridfmt/table"
)

// DefaultPrettyLimit is the number of characters of cell content shown in
// tabular output before truncation.
const DefaultPrettyLimit = 40

// CellPosition describes where a cell ended up in the resolved grid.
type CellPosition struct {
	Row      int      `json:"row" yaml:"row"`
	Column   int      `json:"column" yaml:"column"`
	MoreRows int      `json:"morerows,omitempty" yaml:"morerows,omitempty"`
	MoreCols int      `json:"morecols,omitempty" yaml:"morecols,omitempty"`
	Header   bool     `json:"header,omitempty" yaml:"header,omitempty"`
	Width    int      `json:"width" yaml:"width"`
	Height   int      `json:"height" yaml:"height"`
	Lines    []string `json:"lines" yaml:"lines"`
}

// Layout is a flattened view of a resolved table.
type Layout struct {
	ColumnWidths []int          `json:"column_widths" yaml:"column_widths"`
	RowHeights   []int          `json:"row_heights" yaml:"row_heights"`
	HeaderRow    *int           `json:"header_row,omitempty" yaml:"header_row,omitempty"`
	Cells        []CellPosition `json:"cells" yaml:"cells"`
}

// NewLayout flattens tree. Cells are listed in the order they are drawn:
// each cell precedes the cells hanging below and to the right of it.
func NewLayout(tree *table.TreeTable) Layout {
	l := Layout{
		ColumnWidths: append([]int{}, tree.ColumnWidths...),
		RowHeights:   append([]int{}, tree.RowHeights...),
		Cells:        []CellPosition{},
	}

	if tree.HeaderRow != nil {
		row := *tree.HeaderRow
		l.HeaderRow = &row
	}

	for _, c := range tree.Cells() {
		l.Cells = append(l.Cells, CellPosition{
			Row:      c.Row,
			Column:   c.Column,
			MoreRows: c.Content.MoreRows,
			MoreCols: c.Content.MoreCols,
			Header:   c.Content.Header,
			Width:    tree.Width(c),
			Height:   tree.Height(c),
			Lines:    append([]string{}, c.Content.Lines...),
		})
	}

	return l
}

// JSON prints indented json output.
func JSON(writer io.Writer, x any) error {
	buf, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer, string(buf))
	return err
}

// YAML prints x as a yaml document.
func YAML(writer io.Writer, x any) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		return err
	}
	return enc.Close()
}

// Pretty prints the layout's sizing and cell placement as two tables.
func (l Layout) Pretty(writer io.Writer, prettyLimit int) {
	sizes := generateTableSizes(writer)
	for i, w := range l.ColumnWidths {
		sizes.Append([]string{"column", strconv.Itoa(i), strconv.Itoa(w), ""})
	}
	for i, h := range l.RowHeights {
		note := ""
		if l.HeaderRow != nil && *l.HeaderRow == i {
			note = "header"
		}
		sizes.Append([]string{"row", strconv.Itoa(i), strconv.Itoa(h), note})
	}
	if sizes.NumLines() > 0 {
		sizes.Render()
	}

	cells := generateTableCells(writer)
	for _, c := range l.Cells {
		cells.Append([]string{
			strconv.Itoa(c.Row),
			strconv.Itoa(c.Column),
			fmt.Sprintf("%dx%d", c.MoreRows+1, c.MoreCols+1),
			fmt.Sprintf("%dx%d", c.Height, c.Width),
			strconv.FormatBool(c.Header),
			checkStrLimit(strings.Join(c.Lines, `\n`), prettyLimit),
		})
	}
	if cells.NumLines() > 0 {
		fmt.Fprintln(writer)
		cells.Render()
	}
}

// PrintPrettyMetrics prints metrics in a tabular format.
func PrintPrettyMetrics(writer io.Writer, data map[string]any, prettyLimit int) {
	tableMetrics := generateTableMetrics(writer)
	populateTableMetrics(data, tableMetrics, prettyLimit)
	if tableMetrics.NumLines() > 0 {
		fmt.Fprintln(writer)
		tableMetrics.Render()
	}
}

// checkStrLimit truncates input to limit characters.
func checkStrLimit(input string, limit int) string {
	if limit > 0 && utf8.RuneCountInString(input) > limit {
		return string([]rune(input)[:limit]) + "..."
	}
	return input
}

func generateTableSizes(writer io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(writer)
	t.SetHeader([]string{"Axis", "Index", "Size", "Note"})
	t.SetAlignment(tablewriter.ALIGN_CENTER)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	return t
}

func generateTableCells(writer io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(writer)
	t.SetHeader([]string{"Row", "Column", "Span", "Size", "Header", "Content"})
	t.SetAlignment(tablewriter.ALIGN_CENTER)
	t.SetAutoWrapText(false)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT})
	return t
}

func generateTableMetrics(writer io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(writer)
	t.SetHeader([]string{"Name", "Value"})
	t.SetAlignment(tablewriter.ALIGN_CENTER)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	return t
}

func populateTableMetrics(data map[string]any, t *tablewriter.Table, prettyLimit int) {
	lines := [][]string{}
	for varName, varValue := range data {
		val, ok := varValue.(map[string]any)
		if !ok {
			lines = append(lines, []string{varName, checkStrLimit(fmt.Sprintf("%v", varValue), prettyLimit)})
			continue
		}
		for k, v := range val {
			lines = append(lines, []string{
				fmt.Sprintf("%v_%v", varName, k),
				checkStrLimit(fmt.Sprintf("%v", v), prettyLimit),
			})
		}
	}
	sortMetricRows(lines)
	t.AppendBulk(lines)
}

func sortMetricRows(data [][]string) {
	sort.Slice(data, func(i, j int) bool {
		return data[i][0] < data[j][0]
	})
}

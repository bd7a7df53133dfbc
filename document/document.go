// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package document decodes table documents. A table document is a YAML, JSON
// or TOML object describing one grid table:
//
//	title: Optional title
//	classes: [compact]
//	widths: [5, 7]
//	header:
//	  - ["Name", "Value"]
//	rows:
//	  - [{text: "a\nb", morerows: 1}, "hello world"]
//	  - ["d"]
//
// Each row lists only the cells that start in it. A cell is either a string,
// split on newlines, or an object with text or lines and optional morecols and
// morerows spans.
package document

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gridfmt/gridfmt/internal/levenshtein"
	"github.com/gridfmt/gridfmt/table"
	"github.com/gridfmt/gridfmt/util"
)

const (
	keyTitle    = "title"
	keyClasses  = "classes"
	keyWidths   = "widths"
	keyHeader   = "header"
	keyRows     = "rows"
	keyText     = "text"
	keyLines    = "lines"
	keyMoreCols = "morecols"
	keyMoreRows = "morerows"
)

var (
	documentKeys = map[string]struct{}{
		keyTitle: {}, keyClasses: {}, keyWidths: {}, keyHeader: {}, keyRows: {},
	}
	cellKeys = map[string]struct{}{
		keyText: {}, keyLines: {}, keyMoreCols: {}, keyMoreRows: {},
	}
)

// maxHintDistance bounds the edit distance of "did you mean" suggestions.
const maxHintDistance = 3

// Cell is one authored cell of a document.
type Cell struct {
	Lines    []string `json:"lines"`
	MoreCols int      `json:"morecols,omitempty"`
	MoreRows int      `json:"morerows,omitempty"`
}

// Document is a decoded table document.
type Document struct {
	Title   string   `json:"title,omitempty"`
	Classes []string `json:"classes,omitempty"`
	Widths  []int    `json:"widths"`
	Header  [][]Cell `json:"header,omitempty"`
	Rows    [][]Cell `json:"rows"`
}

// Parse decodes a YAML, JSON or TOML table document. Files ending in .toml are
// decoded as TOML, everything else as YAML (a superset of JSON). The filename
// is otherwise only used to annotate errors.
func Parse(filename string, bs []byte) (*Document, error) {
	unmarshal := util.Unmarshal
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		unmarshal = util.UnmarshalTOML
	}

	var raw any
	if err := unmarshal(bs, &raw); err != nil {
		return nil, Errors{newError(filename, "", "%v", err)}
	}

	p := &parser{file: filename}
	doc := p.document(raw)
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return doc, nil
}

// Table replays the document through the table builder. Header rows are
// placed in the header band.
func (d *Document) Table() (*table.Table, error) {
	t := table.New(d.Widths)

	if len(d.Header) > 0 {
		if err := t.BeginHeader(); err != nil {
			return nil, err
		}
		if err := addRows(t, d.Header); err != nil {
			return nil, err
		}
		if err := t.EndHeader(); err != nil {
			return nil, err
		}
	}

	if err := addRows(t, d.Rows); err != nil {
		return nil, err
	}

	return t, nil
}

// NumRows returns the number of header and body rows.
func (d *Document) NumRows() int {
	return len(d.Header) + len(d.Rows)
}

func addRows(t *table.Table, rows [][]Cell) error {
	for _, row := range rows {
		t.AddRow()
		for _, c := range row {
			if _, err := t.AddCell(c.Lines, c.MoreCols, c.MoreRows); err != nil {
				return err
			}
		}
	}
	return nil
}

type parser struct {
	file string
	errs Errors
}

func (p *parser) errorf(location, f string, a ...any) *Error {
	err := newError(p.file, location, f, a...)
	p.errs = append(p.errs, err)
	return err
}

func (p *parser) document(raw any) *Document {
	obj, ok := raw.(map[string]any)
	if !ok {
		p.errorf("", "document must be an object, got %v", typeName(raw))
		return nil
	}

	p.checkKeys("", obj, documentKeys)

	doc := &Document{}

	if v, ok := obj[keyTitle]; ok {
		if s, ok := v.(string); ok {
			doc.Title = s
		} else {
			p.errorf(keyTitle, "must be a string, got %v", typeName(v))
		}
	}

	if v, ok := obj[keyClasses]; ok {
		doc.Classes = p.strings(keyClasses, v)
	}

	v, ok := obj[keyWidths]
	if !ok {
		p.errorf("", "missing required key %q", keyWidths)
	} else {
		doc.Widths = p.widths(v)
	}

	if v, ok := obj[keyHeader]; ok {
		doc.Header = p.rows(keyHeader, v)
	}

	if v, ok := obj[keyRows]; ok {
		doc.Rows = p.rows(keyRows, v)
	}

	return doc
}

func (p *parser) checkKeys(location string, obj map[string]any, known map[string]struct{}) {
	keys := slices.Sorted(maps.Keys(obj))
	for _, k := range keys {
		if _, ok := known[k]; ok {
			continue
		}
		err := p.errorf(location, "unknown key %q", k)
		if hints := levenshtein.ClosestStrings(maxHintDistance, k, maps.Keys(known)); len(hints) > 0 {
			err.Hints = hints
		}
	}
}

func (p *parser) strings(location string, v any) []string {
	arr, ok := v.([]any)
	if !ok {
		p.errorf(location, "must be a list of strings, got %v", typeName(v))
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, x := range arr {
		s, ok := x.(string)
		if !ok {
			p.errorf(fmt.Sprintf("%s[%d]", location, i), "must be a string, got %v", typeName(x))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (p *parser) widths(v any) []int {
	arr, ok := v.([]any)
	if !ok {
		p.errorf(keyWidths, "must be a list of integers, got %v", typeName(v))
		return nil
	}
	out := make([]int, 0, len(arr))
	for i, x := range arr {
		loc := fmt.Sprintf("%s[%d]", keyWidths, i)
		n, ok := p.int(loc, x)
		if !ok {
			continue
		}
		if n < 0 {
			p.errorf(loc, "width must not be negative, got %d", n)
			continue
		}
		out = append(out, n)
	}
	return out
}

func (p *parser) rows(location string, v any) [][]Cell {
	arr, ok := v.([]any)
	if !ok {
		p.errorf(location, "must be a list of rows, got %v", typeName(v))
		return nil
	}
	out := make([][]Cell, 0, len(arr))
	for i, x := range arr {
		loc := fmt.Sprintf("%s[%d]", location, i)
		cells, ok := x.([]any)
		if !ok {
			p.errorf(loc, "row must be a list of cells, got %v", typeName(x))
			continue
		}
		row := make([]Cell, 0, len(cells))
		for j, c := range cells {
			if cell, ok := p.cell(fmt.Sprintf("%s[%d]", loc, j), c); ok {
				row = append(row, cell)
			}
		}
		out = append(out, row)
	}
	return out
}

func (p *parser) cell(location string, v any) (Cell, bool) {
	switch v := v.(type) {
	case string:
		return Cell{Lines: splitLines(v)}, true
	case map[string]any:
		return p.cellObject(location, v)
	default:
		p.errorf(location, "cell must be a string or an object, got %v", typeName(v))
		return Cell{}, false
	}
}

func (p *parser) cellObject(location string, obj map[string]any) (Cell, bool) {
	before := len(p.errs)
	p.checkKeys(location, obj, cellKeys)

	var cell Cell

	text, hasText := obj[keyText]
	lines, hasLines := obj[keyLines]

	switch {
	case hasText && hasLines:
		p.errorf(location, "cell must not declare both %q and %q", keyText, keyLines)
	case hasText:
		if s, ok := text.(string); ok {
			cell.Lines = splitLines(s)
		} else {
			p.errorf(location+"."+keyText, "must be a string, got %v", typeName(text))
		}
	case hasLines:
		cell.Lines = p.strings(location+"."+keyLines, lines)
	}

	if v, ok := obj[keyMoreCols]; ok {
		cell.MoreCols = p.span(location+"."+keyMoreCols, v)
	}
	if v, ok := obj[keyMoreRows]; ok {
		cell.MoreRows = p.span(location+"."+keyMoreRows, v)
	}

	return cell, len(p.errs) == before
}

func (p *parser) span(location string, v any) int {
	n, ok := p.int(location, v)
	if !ok {
		return 0
	}
	if n < 0 {
		p.errorf(location, "span must not be negative, got %d", n)
		return 0
	}
	return n
}

func (p *parser) int(location string, v any) (int, bool) {
	num, ok := v.(json.Number)
	if !ok {
		p.errorf(location, "must be an integer, got %v", typeName(v))
		return 0, false
	}
	n, err := num.Int64()
	if err != nil {
		p.errorf(location, "must be an integer, got %v", num)
		return 0, false
	}
	return int(n), true
}

// splitLines splits cell text into lines. A single trailing newline, as left
// by YAML block scalars, does not produce an extra empty line. Empty text
// yields a cell without lines.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

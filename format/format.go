// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package format implements rendering of table documents as
// reStructuredText grid tables.
package format

import (
	"bytes"
	"strings"

	"github.com/gridfmt/gridfmt/document"
	"github.com/gridfmt/gridfmt/metrics"
	"github.com/gridfmt/gridfmt/table"
)

// directiveIndent is the indentation of a directive's body.
const directiveIndent = 3

// Opts lets you control the output via `SourceWithOpts()` and `Document()`.
type Opts struct {
	// Indent is the number of spaces placed before every non-empty line.
	Indent int

	// NoDirective emits the bare grid without the `.. table::` directive.
	NoDirective bool

	// Metrics, if set, records parse, resolve and render timings.
	Metrics metrics.Metrics
}

func (o Opts) metrics() metrics.Metrics {
	if o.Metrics == nil {
		return metrics.NoOp()
	}
	return o.Metrics
}

// Source renders a table document. The bytes provided must describe a
// complete YAML or JSON table document. If they don't, Source will return
// an error resulting from the attempt to parse the bytes.
func Source(filename string, src []byte) ([]byte, error) {
	return SourceWithOpts(filename, src, Opts{})
}

// SourceWithOpts is like Source but honours opts.
func SourceWithOpts(filename string, src []byte, opts Opts) ([]byte, error) {
	m := opts.metrics()

	m.Timer(metrics.DocumentParse).Start()
	doc, err := document.Parse(filename, src)
	m.Timer(metrics.DocumentParse).Stop()
	if err != nil {
		return nil, err
	}

	return Document(doc, opts)
}

// MustDocument is a helper function to render a document. If any errors
// occurs this function will panic. This is mostly used for test
func MustDocument(doc *document.Document, opts Opts) []byte {
	bs, err := Document(doc, opts)
	if err != nil {
		panic(err)
	}
	return bs
}

// Document renders doc as a grid table, wrapped in a `.. table::` directive
// unless opts.NoDirective is set.
func Document(doc *document.Document, opts Opts) ([]byte, error) {
	lines, err := Lines(doc, opts.metrics())
	if err != nil {
		return nil, err
	}

	w := &writer{indent: opts.Indent}

	if !opts.NoDirective {
		w.directive(doc)
		w.indent += directiveIndent
	}

	w.lines(lines)

	return w.buf.Bytes(), nil
}

// Lines resolves and draws the document's table, returning the grid lines.
func Lines(doc *document.Document, m metrics.Metrics) ([]string, error) {
	tbl, err := doc.Table()
	if err != nil {
		return nil, err
	}

	m.Histogram(metrics.TableCells).Update(int64(tbl.NumCells()))

	m.Timer(metrics.TableResolve).Start()
	tree, err := tbl.Treeify()
	m.Timer(metrics.TableResolve).Stop()
	if err != nil {
		return nil, err
	}

	m.Timer(metrics.TableRender).Start()
	lines, err := table.RenderTree(tree)
	m.Timer(metrics.TableRender).Stop()
	if err != nil {
		return nil, err
	}

	m.Counter(metrics.TablesRendered).Incr()

	return lines, nil
}

type writer struct {
	buf    bytes.Buffer
	indent int
}

func (w *writer) directive(doc *document.Document) {
	w.writeLine(".. table::" + prefixed(" ", doc.Title))
	if len(doc.Classes) > 0 {
		w.writeLine(strings.Repeat(" ", directiveIndent) + ":class: " + strings.Join(doc.Classes, " "))
	}
	w.writeLine("")
}

func (w *writer) lines(lines []string) {
	for _, line := range lines {
		w.writeLine(line)
	}
}

func (w *writer) writeLine(line string) {
	if line != "" {
		w.buf.WriteString(strings.Repeat(" ", w.indent))
		w.buf.WriteString(line)
	}
	w.buf.WriteByte('\n')
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

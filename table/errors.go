// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"fmt"
	"strings"
)

// Errors represents a series of layout errors.
type Errors []*Error

func (e Errors) Error() string {

	if len(e) == 0 {
		return "no error(s)"
	}

	if len(e) == 1 {
		return fmt.Sprintf("1 error occurred: %v", e[0].Error())
	}

	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}

	return fmt.Sprintf("%d errors occurred:\n%s", len(e), strings.Join(s, "\n"))
}

// Unwrap returns the individual errors so errors.Is and errors.As see them.
func (e Errors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// ErrCode classifies layout errors. Every code denotes malformed input from
// the producer of the table; none of them is recoverable by retrying.
type ErrCode int

const (
	// WidthMismatchErr indicates the declared column widths do not match
	// the number of columns spanned by the first row.
	WidthMismatchErr ErrCode = iota

	// SpanErr indicates a cell reaches outside the grid, or a negative
	// span or width was declared.
	SpanErr

	// CoverageErr indicates the cells do not cover the grid exactly once:
	// there is a gap, an overlap, or a cell that is never reached.
	CoverageErr

	// BuildErr indicates the builder API was used out of order.
	BuildErr
)

func (c ErrCode) String() string {
	switch c {
	case WidthMismatchErr:
		return "width_mismatch_error"
	case SpanErr:
		return "span_error"
	case CoverageErr:
		return "coverage_error"
	case BuildErr:
		return "build_error"
	}
	return fmt.Sprintf("error(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c ErrCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsError returns true if err is, wraps or aggregates a layout error with
// code.
func IsError(code ErrCode, err error) bool {
	var errs Errors
	if errors.As(err, &errs) {
		for _, e := range errs {
			if e.Code == code {
				return true
			}
		}
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Error represents a single layout error. Row and Column locate the grid
// position where the problem was detected.
type Error struct {
	Code    ErrCode `json:"code"`
	Row     int     `json:"row"`
	Column  int     `json:"column"`
	Message string  `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: row %d, column %d: %v", e.Code, e.Row, e.Column, e.Message)
}

// NewError returns a new Error object.
func NewError(code ErrCode, row, column int, f string, a ...interface{}) *Error {
	return &Error{
		Code:    code,
		Row:     row,
		Column:  column,
		Message: fmt.Sprintf(f, a...),
	}
}

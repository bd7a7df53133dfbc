// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package document

import (
	"fmt"
	"strings"
)

// Errors represents a series of errors encountered while decoding a document.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no error(s)"
	}

	if len(e) == 1 {
		return fmt.Sprintf("1 error occurred: %v", e[0].Error())
	}

	s := make([]string, len(e))
	for i, err := range e {
		s[i] = err.Error()
	}

	return fmt.Sprintf("%d errors occurred:\n%s", len(e), strings.Join(s, "\n"))
}

// Error describes a problem at a location inside a table document.
type Error struct {
	File     string   `json:"file,omitempty"`
	Location string   `json:"location,omitempty"`
	Message  string   `json:"message"`
	Hints    []string `json:"hints,omitempty"`
}

func (e *Error) Error() string {
	var prefix []string
	if e.File != "" {
		prefix = append(prefix, e.File)
	}
	if e.Location != "" {
		prefix = append(prefix, e.Location)
	}

	msg := e.Message
	if len(e.Hints) > 0 {
		msg += " (did you mean " + strings.Join(quote(e.Hints), " or ") + "?)"
	}

	if len(prefix) == 0 {
		return msg
	}
	return strings.Join(prefix, ": ") + ": " + msg
}

func newError(file, location, f string, a ...any) *Error {
	return &Error{
		File:     file,
		Location: location,
		Message:  fmt.Sprintf(f, a...),
	}
}

func quote(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

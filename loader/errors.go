// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gridfmt/gridfmt/document"
)

// Errors is a wrapper for multiple loader errors.
type Errors []error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no error(s)"
	}
	if len(e) == 1 {
		return "1 error occurred during loading: " + e[0].Error()
	}
	buf := make([]string, len(e))
	for i := range buf {
		buf[i] = e[i].Error()
	}
	return fmt.Sprintf("%v errors occurred during loading:\n", len(e)) + strings.Join(buf, "\n")
}

// Add appends err, flattening document errors so every problem is reported
// on its own.
func (e *Errors) Add(err error) {
	var docErrs document.Errors
	if errors.As(err, &docErrs) {
		for _, de := range docErrs {
			*e = append(*e, de)
		}
		return
	}
	*e = append(*e, err)
}

type unrecognizedFile string

func (path unrecognizedFile) Error() string {
	return fmt.Sprintf("%v: can't recognize file type (expected .yaml, .yml, .json or .toml)", string(path))
}

// IsUnrecognizedFile reports whether err was caused by a file that is not a
// table document.
func IsUnrecognizedFile(err error) bool {
	var u unrecognizedFile
	return errors.As(err, &u)
}

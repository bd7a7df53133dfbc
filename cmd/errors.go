// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"

	"github.com/gridfmt/gridfmt/table"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitContract = 2
)

// renderError carries the process exit code alongside a message.
type renderError struct {
	msg  string
	code int
}

func (e renderError) Error() string {
	return fmt.Sprintf("%s (%d)", e.msg, e.code)
}

func newError(code int, msg string, a ...any) renderError {
	return renderError{
		msg:  fmt.Sprintf(msg, a...),
		code: code,
	}
}

// exitCode maps an error returned while rendering to a process exit code:
// layout contract violations and unexpected diffs exit with 2, everything
// else with 1.
func exitCode(err error) int {
	var re renderError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &re):
		return re.code
	case isContractViolation(err):
		return exitContract
	default:
		return exitFailure
	}
}

func isContractViolation(err error) bool {
	for _, code := range []table.ErrCode{table.WidthMismatchErr, table.SpanErr, table.CoverageErr} {
		if table.IsError(code, err) {
			return true
		}
	}
	return false
}

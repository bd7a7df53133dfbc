// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/pflag"

	"github.com/gridfmt/gridfmt/util"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

func addLogLevelFlag(fs *pflag.FlagSet, logLevel *util.EnumFlag) {
	fs.Var(logLevel, "log-level", "set log level")
}

func addLogFormatFlag(fs *pflag.FlagSet, logFormat *util.EnumFlag) {
	fs.Var(logFormat, "log-format", "set log format")
}

func addIgnoreFlag(fs *pflag.FlagSet, ignoreNames *[]string) {
	fs.StringSliceVarP(ignoreNames, "ignore", "", []string{}, "set file and directory names to ignore during loading (e.g., '.*' excludes hidden files)")
}

func addIndentFlag(fs *pflag.FlagSet, indent *int) {
	fs.IntVar(indent, "indent", 0, "indent every output line by this many spaces")
}

func addNoDirectiveFlag(fs *pflag.FlagSet, noDirective *bool) {
	fs.BoolVar(noDirective, "no-directive", false, "emit the bare grid without the '.. table::' directive")
}

func addMetricsFlag(fs *pflag.FlagSet, enabled *bool) {
	fs.BoolVar(enabled, "metrics", false, "report parse, resolve and render timings on stderr")
}

func newOutputFormatFlag() *util.EnumFlag {
	return util.NewEnumFlag(formatPretty, []string{formatPretty, formatJSON, formatYAML})
}

func addOutputFormatFlag(fs *pflag.FlagSet, outputFormat *util.EnumFlag) {
	fs.VarP(outputFormat, "format", "f", "set output format")
}

// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package cmd implements the gridfmt command line.
package cmd

import (
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/gridfmt/gridfmt/cmd/internal/env"
	internal_logging "github.com/gridfmt/gridfmt/internal/logging"
	"github.com/gridfmt/gridfmt/logging"
	"github.com/gridfmt/gridfmt/util"
)

type rootCommandParams struct {
	logLevel  *util.EnumFlag
	logFormat *util.EnumFlag
}

var rootParams = rootCommandParams{
	logLevel:  util.NewEnumFlag("info", internal_logging.Levels),
	logFormat: util.NewEnumFlag("text", internal_logging.Formats),
}

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]),
	Short: "Grid table layout for reStructuredText",
	Long: `Lay out tables whose cells span rows and columns as reStructuredText grid tables.

Tables are described as YAML or JSON documents listing column widths and the
cells that start in each row. See 'render --help' for the document format.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := env.CmdFlags.CheckEnvironmentVariables(cmd); err != nil {
			return err
		}
		return internal_logging.Configure(logging.Get(), rootParams.logLevel.String(), rootParams.logFormat.String())
	},
}

func init() {
	addLogLevelFlag(RootCommand.PersistentFlags(), rootParams.logLevel)
	addLogFormatFlag(RootCommand.PersistentFlags(), rootParams.logFormat)
}

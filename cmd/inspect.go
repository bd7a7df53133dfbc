// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridfmt/gridfmt/loader"
	"github.com/gridfmt/gridfmt/presentation"
	"github.com/gridfmt/gridfmt/util"
)

type inspectCommandParams struct {
	outputFormat *util.EnumFlag
	ignore       []string
	prettyLimit  int
}

func newInspectCommandParams() inspectCommandParams {
	return inspectCommandParams{
		outputFormat: newOutputFormatFlag(),
	}
}

// inspectResult describes one document and its resolved layout.
type inspectResult struct {
	File    string              `json:"file" yaml:"file"`
	Title   string              `json:"title,omitempty" yaml:"title,omitempty"`
	Classes []string            `json:"classes,omitempty" yaml:"classes,omitempty"`
	Layout  presentation.Layout `json:"layout" yaml:"layout"`
}

func init() {
	params := newInspectCommandParams()

	inspectCommand := &cobra.Command{
		Use:   "inspect <path> [<path> [...]]",
		Short: "Inspect the resolved layout of table documents",
		Long: `Inspect the resolved layout of table documents.

The 'inspect' command prints, for every table document found at the given
paths, the column widths and row heights after spans have been resolved and
the position and size of every cell in drawing order.

Example:

    $ gridfmt inspect --format json table.yaml`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := doInspect(params, args, os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitCode(err))
			}
		},
	}

	addOutputFormatFlag(inspectCommand.Flags(), params.outputFormat)
	addIgnoreFlag(inspectCommand.Flags(), &params.ignore)
	inspectCommand.Flags().IntVar(&params.prettyLimit, "pretty-limit", presentation.DefaultPrettyLimit, "truncate cell content in pretty output to this many characters (0 disables)")
	RootCommand.AddCommand(inspectCommand)
}

func doInspect(params inspectCommandParams, paths []string, out io.Writer) error {
	loaded, err := loader.Filtered(paths, loaderFilter{Ignore: params.ignore}.Apply)
	if err != nil {
		return err
	}

	results := make([]inspectResult, 0, len(loaded.Files))
	for _, path := range loaded.Paths() {
		doc := loaded.Files[path].Parsed

		tbl, err := doc.Table()
		if err != nil {
			return err
		}

		tree, err := tbl.Treeify()
		if err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}

		results = append(results, inspectResult{
			File:    path,
			Title:   doc.Title,
			Classes: doc.Classes,
			Layout:  presentation.NewLayout(tree),
		})
	}

	switch params.outputFormat.String() {
	case formatJSON:
		return presentation.JSON(out, results)
	case formatYAML:
		return presentation.YAML(out, results)
	default:
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printPrettyHeader(out, res)
			res.Layout.Pretty(out, params.prettyLimit)
		}
		return nil
	}
}

func printPrettyHeader(out io.Writer, res inspectResult) {
	fmt.Fprintf(out, "File: %v\n", res.File)
	if res.Title != "" {
		fmt.Fprintf(out, "Title: %v\n", res.Title)
	}
	if len(res.Classes) > 0 {
		fmt.Fprintf(out, "Classes: %v\n", strings.Join(res.Classes, " "))
	}
}

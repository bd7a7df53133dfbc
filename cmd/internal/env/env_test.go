// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package env

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

type mockArgs struct {
	indent      int
	title       string
	noDirective bool
}

func mockCmd(use string, writer io.Writer, args *mockArgs, defaults mockArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use: use,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return CmdFlags.CheckEnvironmentVariables(cmd)
		},
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(writer, "%v; %v; %v", args.indent, args.title, args.noDirective)
		},
	}
	cmd.Flags().IntVarP(&args.indent, "indent", "i", defaults.indent, "set indent")
	cmd.Flags().StringVarP(&args.title, "title-text", "t", defaults.title, "set title")
	cmd.Flags().BoolVarP(&args.noDirective, "no-directive", "n", defaults.noDirective, "set directive")
	return cmd
}

func TestCheckEnvironmentVariables(t *testing.T) {
	tests := []struct {
		note  string
		child bool
		env   map[string]string
		exp   string
	}{
		{
			note: "root defaults",
			exp:  "0; ; false",
		},
		{
			note: "root one variable",
			env:  map[string]string{"GRIDFMT_INDENT": "3"},
			exp:  "3; ; false",
		},
		{
			note: "root all variables",
			env: map[string]string{
				"GRIDFMT_INDENT":       "40",
				"GRIDFMT_TITLE_TEXT":   "test",
				"GRIDFMT_NO_DIRECTIVE": "true",
			},
			exp: "40; test; true",
		},
		{
			note:  "child defaults",
			child: true,
			env:   map[string]string{"GRIDFMT_INDENT": "3"},
			exp:   "100; child; true",
		},
		{
			note:  "child all variables",
			child: true,
			env: map[string]string{
				"GRIDFMT_RENDER_INDENT":       "7",
				"GRIDFMT_RENDER_TITLE_TEXT":   "testing child",
				"GRIDFMT_RENDER_NO_DIRECTIVE": "false",
			},
			exp: "7; testing child; false",
		},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			var buf bytes.Buffer
			var rootArgs, childArgs mockArgs
			root := mockCmd("gridfmt [opts]", &buf, &rootArgs, mockArgs{})
			target := root
			if tc.child {
				target = mockCmd("render [opts]", &buf, &childArgs, mockArgs{indent: 100, title: "child", noDirective: true})
				root.AddCommand(target)
			}

			if err := target.PreRunE(target, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			target.Run(target, nil)

			if buf.String() != tc.exp {
				t.Fatalf("expected flag values %q, got %q", tc.exp, buf.String())
			}
		})
	}
}

func TestCheckEnvironmentVariablesErrors(t *testing.T) {
	var rootArgs, childArgs mockArgs
	root := mockCmd("gridfmt", &bytes.Buffer{}, &rootArgs, mockArgs{})
	child := mockCmd("render", &bytes.Buffer{}, &childArgs, mockArgs{})
	root.AddCommand(child)

	t.Setenv("GRIDFMT_RENDER_INDENT", "true")
	t.Setenv("GRIDFMT_RENDER_NO_DIRECTIVE", "7")

	err := child.PreRunE(child, nil)
	if err == nil {
		t.Fatal("expected error, found none")
	}

	for _, exp := range []string{errorMessagePrefix, `invalid argument "true"`, `invalid argument "7"`} {
		if !strings.Contains(err.Error(), exp) {
			t.Fatalf("expected error to include %q, got %q", exp, err.Error())
		}
	}
}

func TestCheckEnvironmentVariablesFlagPrecedence(t *testing.T) {
	var buf bytes.Buffer
	var args mockArgs
	root := mockCmd("gridfmt", &buf, &args, mockArgs{})

	t.Setenv("GRIDFMT_INDENT", "3")
	t.Setenv("GRIDFMT_NO_DIRECTIVE", "true")

	root.SetArgs([]string{"-i", "42"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	if exp := "42; ; true"; buf.String() != exp {
		t.Fatalf("expected flag values %q, got %q", exp, buf.String())
	}
}

func TestPrefix(t *testing.T) {
	root := &cobra.Command{Use: "anything"}
	child := &cobra.Command{Use: "inspect"}
	root.AddCommand(child)

	if Prefix(root) != "GRIDFMT" || Prefix(child) != "GRIDFMT_INSPECT" {
		t.Fatalf("unexpected prefixes %q and %q", Prefix(root), Prefix(child))
	}
}

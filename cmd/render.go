// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"github.com/gridfmt/gridfmt/filewatcher"
	"github.com/gridfmt/gridfmt/format"
	"github.com/gridfmt/gridfmt/loader"
	"github.com/gridfmt/gridfmt/logging"
	"github.com/gridfmt/gridfmt/metrics"
	"github.com/gridfmt/gridfmt/presentation"
)

// rstExt is the extension of files written with --write.
const rstExt = ".rst"

type renderCommandParams struct {
	overwrite   bool
	list        bool
	diff        bool
	fail        bool
	indent      int
	noDirective bool
	ignore      []string
	metrics     bool
	jobs        int
	watch       bool
	logger      logging.Logger
}

var renderParams = renderCommandParams{}

var renderCommand = &cobra.Command{
	Use:   "render [path [...]]",
	Short: "Render table documents as reStructuredText grid tables",
	Long: `Render table documents as reStructuredText grid tables.

The 'render' command takes YAML, JSON or TOML table documents and outputs the
corresponding '.. table::' directive. If no path is provided, this tool will
read a single document from stdin. Directories are searched recursively for
.yaml, .yml, .json and .toml files.

A table document declares the column widths and, for every row, the cells
that start in that row:

	title: Fruit
	widths: [5, 7]
	header:
	  - ["Name", "Value"]
	rows:
	  - [{text: "a\nb\nc", morerows: 1}, "hello world"]
	  - ["d"]

Columns and rows grow to fit their content.

If the '-w' option is supplied, the 'render' command writes the output next
to each document, replacing its extension with '.rst', instead of printing
to stdout.

If the '-d' option is supplied, the 'render' command will output a diff
between the existing '.rst' file and the rendered output.

If the '-l' option is supplied, the 'render' command will output the names of
documents whose '.rst' file would change. The '-l' option will suppress any
other output to stdout from the 'render' command.

If the '--fail' option is supplied, the 'render' command will return a non
zero exit code if a '.rst' file would change.

If the '--watch' option is supplied, documents are rendered again whenever
they change on disk, until the process is interrupted.

Exit codes: 0 on success, 1 when a document cannot be read or parsed, 2 when
a table breaks the layout rules or an unexpected diff is found.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(gridfmtRender(cmd.Context(), &renderParams, args, os.Stdin, os.Stdout, os.Stderr))
	},
}

func gridfmtRender(ctx context.Context, params *renderCommandParams, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var logger logging.Logger = logging.Get()
	if params.logger != nil {
		logger = params.logger
	}
	ctx = ctxOrBackground(ctx)

	if len(args) == 0 {
		if err := renderStdin(params, stdin, stdout, stderr); err != nil {
			fmt.Fprintln(stderr, err)
			return exitCode(err)
		}
		return exitOK
	}

	if params.jobs <= 0 {
		undo, err := maxprocs.Set(maxprocs.Logger(logger.Debug))
		if err != nil {
			logger.Warn("Failed to set GOMAXPROCS: %v", err)
		}
		defer undo()
	}

	r := &renderer{
		params: params,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		cache:  format.NewCache(0),
	}

	filter := loaderFilter{Ignore: params.ignore}.Apply

	loaded, err := loader.Filtered(args, filter)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	code := r.run(loaded)

	if !params.watch {
		return code
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := filewatcher.New(args, filter, func(_ context.Context, loaded *loader.Result, elapsed time.Duration, err error) {
		if err != nil {
			fmt.Fprintln(stderr, err)
			return
		}
		logger.Debug("Loaded %d documents in %v.", len(loaded.Files), elapsed)
		r.run(loaded)
	}, logger)

	if err := w.Start(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	logger.Info("Watching %v for changes.", strings.Join(args, ", "))
	<-w.Done()

	return code
}

type renderer struct {
	params *renderCommandParams
	stdout io.Writer
	stderr io.Writer
	logger logging.Logger
	cache  *format.Cache
}

type renderResult struct {
	file    *loader.File
	output  []byte
	cached  bool
	metrics metrics.Metrics
	err     error
}

// run renders every loaded document and reports the results in path order.
// It returns the exit code for the batch.
func (r *renderer) run(loaded *loader.Result) int {
	paths := loaded.Paths()
	results := make([]renderResult, len(paths))

	jobs := r.params.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(jobs)

	for i, path := range paths {
		file := loaded.Files[path]
		g.Go(func() error {
			m := metrics.NoOp()
			if r.params.metrics {
				m = metrics.New()
			}
			out, cached, err := r.cache.SourceWithOpts(file.Name, file.Raw, r.opts(m))
			results[i] = renderResult{file: file, output: out, cached: cached, metrics: m, err: err}
			return nil
		})
	}

	_ = g.Wait()

	code := exitOK
	for _, res := range results {
		if err := r.report(res); err != nil {
			fmt.Fprintln(r.stderr, err)
			if c := exitCode(err); c > code {
				code = c
			}
		}
	}

	return code
}

func (r *renderer) opts(m metrics.Metrics) format.Opts {
	return format.Opts{
		Indent:      r.params.indent,
		NoDirective: r.params.noDirective,
		Metrics:     m,
	}
}

func (r *renderer) report(res renderResult) error {
	if res.err != nil {
		return res.err
	}

	logger := r.logger.WithFields(map[string]any{"file": res.file.Name})

	if res.cached && r.params.watch {
		logger.Debug("Output unchanged.")
		return nil
	}

	if r.params.metrics {
		defer func() {
			fmt.Fprintf(r.stderr, "%v:", res.file.Name)
			presentation.PrintPrettyMetrics(r.stderr, res.metrics.All(), presentation.DefaultPrettyLimit)
		}()
	}

	target := rstPath(res.file.Name)

	existing, err := os.ReadFile(target)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return newError(exitFailure, "failed to read %v: %v", target, err)
	}

	changed := !bytes.Equal(existing, res.output)

	if r.params.list {
		if changed {
			fmt.Fprintln(r.stdout, res.file.Name)
			if r.params.fail {
				return newError(exitContract, "unexpected diff")
			}
		}
		return nil
	}

	if r.params.diff {
		if changed {
			fmt.Fprint(r.stdout, doDiff(target, existing, res.output))
			if r.params.fail {
				return newError(exitContract, "unexpected diff")
			}
		}
		return nil
	}

	if r.params.fail && changed {
		return newError(exitContract, "unexpected diff")
	}

	if r.params.overwrite {
		if !changed {
			return nil
		}
		if err := os.WriteFile(target, res.output, 0o644); err != nil {
			return newError(exitFailure, "failed to write %v: %v", target, err)
		}
		res.metrics.Counter(metrics.FilesWritten).Incr()
		logger.Info("Wrote %v.", target)
		return nil
	}

	if _, err := r.stdout.Write(res.output); err != nil {
		return newError(exitFailure, "failed writing rendered contents: %v", err)
	}

	return nil
}

func renderStdin(params *renderCommandParams, r io.Reader, w io.Writer, stderr io.Writer) error {
	contents, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m := metrics.NoOp()
	if params.metrics {
		m = metrics.New()
	}

	rendered, err := format.SourceWithOpts("stdin", contents, format.Opts{
		Indent:      params.indent,
		NoDirective: params.noDirective,
		Metrics:     m,
	})
	if err != nil {
		return err
	}

	if params.metrics {
		presentation.PrintPrettyMetrics(stderr, m.All(), presentation.DefaultPrettyLimit)
	}

	_, err = w.Write(rendered)
	return err
}

// rstPath returns the path written for the document at path.
func rstPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + rstExt
}

// doDiff returns a unified diff of old and new covering the whole file.
func doDiff(name string, old, new []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(old), string(new))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %v\n+++ %v (rendered)\n", name, name)

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}

	return sb.String()
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func init() {
	renderCommand.Flags().BoolVarP(&renderParams.overwrite, "write", "w", false, "write the output to <document>.rst instead of stdout")
	renderCommand.Flags().BoolVarP(&renderParams.list, "list", "l", false, "list all documents whose .rst file would change")
	renderCommand.Flags().BoolVarP(&renderParams.diff, "diff", "d", false, "only display a diff against the existing .rst files")
	renderCommand.Flags().BoolVar(&renderParams.fail, "fail", false, "non zero exit code when a .rst file would change")
	renderCommand.Flags().IntVarP(&renderParams.jobs, "jobs", "j", 0, "number of documents rendered concurrently (default GOMAXPROCS)")
	renderCommand.Flags().BoolVar(&renderParams.watch, "watch", false, "render again whenever a document changes")
	addIndentFlag(renderCommand.Flags(), &renderParams.indent)
	addNoDirectiveFlag(renderCommand.Flags(), &renderParams.noDirective)
	addIgnoreFlag(renderCommand.Flags(), &renderParams.ignore)
	addMetricsFlag(renderCommand.Flags(), &renderParams.metrics)
	RootCommand.AddCommand(renderCommand)
}

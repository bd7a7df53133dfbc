// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package loader contains utilities for loading table documents from disk.
package loader

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/gridfmt/gridfmt/document"
)

// Extensions lists the file extensions recognised as table documents.
var Extensions = []string{".yaml", ".yml", ".json", ".toml"}

// Result represents the result of successfully loading zero or more files.
type Result struct {
	Files map[string]*File
}

// Paths returns the names of the loaded files in sorted order.
func (l *Result) Paths() []string {
	paths := make([]string, 0, len(l.Files))
	for name := range l.Files {
		paths = append(paths, name)
	}
	slices.Sort(paths)
	return paths
}

// File represents the result of loading a single table document.
type File struct {
	Name   string
	Raw    []byte
	Parsed *document.Document
}

// Filter defines the interface for filtering files during loading. If the
// filter returns true, the file should be excluded from the result.
type Filter func(abspath string, info os.FileInfo, depth int) bool

// GlobExcludeName excludes files and directories whose names match the
// glob pattern at minDepth or greater. A pattern that does not compile only
// matches names equal to it.
func GlobExcludeName(pattern string, minDepth int) Filter {
	match := func(name string) bool { return name == pattern }
	if g, err := glob.Compile(pattern); err == nil {
		match = g.Match
	}
	return func(_ string, info os.FileInfo, depth int) bool {
		return depth >= minDepth && match(info.Name())
	}
}

// All returns a Result object loaded (recursively) from the specified paths.
func All(paths []string) (*Result, error) {
	return Filtered(paths, nil)
}

// Filtered returns a Result object loaded (recursively) from the specified
// paths while applying the given filter. If the filter returns true, the
// file/directory is excluded. Files found inside directories that are not
// table documents are skipped; paths naming such a file directly are
// rejected.
func Filtered(paths []string, filter Filter) (*Result, error) {
	return all(paths, filter, func(curr *Result, path string, depth int) error {
		if !IsDocument(path) {
			if depth > 0 {
				return nil
			}
			return unrecognizedFile(path)
		}

		file, err := Document(path)
		if err != nil {
			return err
		}

		curr.Files[path] = file
		return nil
	})
}

// Document returns a File loaded from the given path.
func Document(path string) (*File, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	return Parse(path, bs)
}

// Parse decodes bs as the table document stored at path.
func Parse(path string, bs []byte) (*File, error) {
	doc, err := document.Parse(path, bs)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:   path,
		Raw:    bs,
		Parsed: doc,
	}, nil
}

// IsDocument reports whether path carries a table document extension.
func IsDocument(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Paths returns a sorted list of files contained at path. If recurse is true
// and path is a directory, then Paths will walk the directory structure
// recursively and list files at each level.
func Paths(path string, recurse bool) (paths []string, err error) {
	err = filepath.Walk(path, func(f string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !recurse {
			if path != f && path != filepath.Dir(f) {
				return filepath.SkipDir
			}
		}
		paths = append(paths, f)
		return nil
	})
	return paths, err
}

// Dirs resolves filepaths to directories. It will return a list of unique
// directories.
func Dirs(paths []string) []string {
	unique := map[string]struct{}{}

	for _, path := range paths {
		dir := filepath.Dir(path)
		unique[dir] = struct{}{}
	}

	u := make([]string, 0, len(unique))
	for k := range unique {
		u = append(u, k)
	}
	slices.Sort(u)
	return u
}

func newResult() *Result {
	return &Result{
		Files: map[string]*File{},
	}
}

func all(paths []string, filter Filter, f func(*Result, string, int) error) (*Result, error) {
	errs := Errors{}
	root := newResult()

	for _, path := range paths {
		allRec(path, filter, &errs, root, 0, f)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return root, nil
}

func allRec(path string, filter Filter, errs *Errors, loaded *Result, depth int, f func(*Result, string, int) error) {
	info, err := os.Stat(path)
	if err != nil {
		errs.Add(errors.Wrap(err, "failed to stat path"))
		return
	}

	if filter != nil && filter(path, info, depth) {
		return
	}

	if !info.IsDir() {
		if err := f(loaded, path, depth); err != nil {
			errs.Add(err)
		}
		return
	}

	files, err := os.ReadDir(path)
	if err != nil {
		errs.Add(errors.Wrapf(err, "failed to read directory %v", path))
		return
	}

	for _, file := range files {
		allRec(filepath.Join(path, file.Name()), filter, errs, loaded, depth+1, f)
	}
}

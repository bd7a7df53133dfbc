// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package levenshtein suggests known names for misspelled ones.
package levenshtein

import (
	"iter"
	"slices"

	"github.com/agnivade/levenshtein"
)

// ClosestStrings returns the candidates nearest to a, provided their edit
// distance does not exceed maxDistance. Ties are all returned, sorted.
func ClosestStrings(maxDistance int, a string, candidates iter.Seq[string]) []string {
	closest := []string{}
	best := maxDistance + 1
	for c := range candidates {
		d := levenshtein.ComputeDistance(a, c)
		switch {
		case d < best:
			closest = []string{c}
			best = d
		case d == best:
			closest = append(closest, c)
		}
	}
	slices.Sort(closest)
	return closest
}

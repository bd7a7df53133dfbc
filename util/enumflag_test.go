// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package util

import (
	"strings"
	"testing"
)

func TestEnumFlag(t *testing.T) {

	flag := NewEnumFlag("pretty", []string{"pretty", "json", "yaml"})

	if flag.String() != "pretty" {
		t.Fatalf("Expected default value to be pretty but got: %v", flag.String())
	}

	if flag.IsSet() {
		t.Fatal("Expected flag not to be set")
	}

	if err := flag.Set("json"); err != nil {
		t.Fatalf("Unexpected error on set: %v", err)
	}

	if flag.String() != "json" || !flag.IsSet() {
		t.Fatalf("Expected value to be json but got: %v", flag.String())
	}

	if !strings.Contains(flag.Type(), "pretty,json,yaml") {
		t.Fatalf("Expected flag type to contain pretty,json,yaml but got: %v", flag.Type())
	}

	if err := flag.Set("xml"); err == nil {
		t.Fatalf("Expected error from set")
	}
}

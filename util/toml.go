// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package util

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
)

// UnmarshalTOML decodes a TOML document into the specified type. The document
// is routed through JSON so callers see the same value shapes (json.Number
// for numbers) as with Unmarshal.
func UnmarshalTOML(bs []byte, v interface{}) error {
	var doc map[string]interface{}
	if err := toml.Unmarshal(bs, &doc); err != nil {
		return err
	}
	bs, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return UnmarshalJSON(bs, v)
}

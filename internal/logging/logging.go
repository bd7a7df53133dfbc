// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package logging maps command line logging options onto the standard
// logger.
package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gridfmt/gridfmt/logging"
)

const (
	fieldIndent     = 2
	multiLineIndent = 6
)

// Levels lists the accepted --log-level values.
var Levels = []string{"debug", "info", "warn", "error"}

// Formats lists the accepted --log-format values.
var Formats = []string{"text", "json", "json-pretty"}

// GetLevel parses a log level name. The empty string means info.
func GetLevel(level string) (logging.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logging.Debug, nil
	case "", "info":
		return logging.Info, nil
	case "warn":
		return logging.Warn, nil
	case "error":
		return logging.Error, nil
	default:
		return logging.Debug, fmt.Errorf("invalid log level: %v", level)
	}
}

// GetFormatter returns the logrus formatter for a --log-format value.
func GetFormatter(format, timestampFormat string) logrus.Formatter {
	switch format {
	case "text":
		return &prettyFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	default:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
}

// Configure applies a level and format to logger.
func Configure(logger *logging.StandardLogger, level, format string) error {
	lvl, err := GetLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(GetFormatter(format, ""))
	return nil
}

// prettyFormatter writes one "[LEVEL] message" line followed by one line
// per field, sorted by key. Multi-line string fields (rendered tables, for
// instance) are kept verbatim and indented under their key; everything
// else is written as indented JSON.
type prettyFormatter struct{}

func (p *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)

	fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		val, err := formatValue(e.Data[k])
		if err != nil {
			return nil, err
		}

		b.WriteString(strings.Repeat(" ", fieldIndent))
		b.WriteString(k)
		if strings.Contains(val, "\n") {
			b.WriteString(" = |\n")
			b.WriteString(strings.Repeat(" ", multiLineIndent))
		} else {
			b.WriteString(" = ")
		}
		b.WriteString(val)
		b.WriteString("\n")
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatValue(v interface{}) (string, error) {
	indent := strings.Repeat(" ", multiLineIndent)

	if s, ok := v.(string); ok && strings.Contains(s, "\n") {
		lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
		return strings.Join(lines, "\n"+indent), nil
	}

	bs, err := json.MarshalIndent(v, indent, "  ")
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

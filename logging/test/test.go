// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package test provides a logger that buffers entries for assertions.
package test

import (
	"fmt"
	"maps"
	"sync"

	"github.com/gridfmt/gridfmt/logging"
)

// LogEntry represents a log message.
type LogEntry struct {
	Level   logging.Level
	Fields  map[string]any
	Message string
}

// Logger implementation that buffers messages for test purposes. Entries
// above the configured level are dropped, like the standard logger does.
type Logger struct {
	level   logging.Level
	fields  map[string]any
	entries *[]LogEntry
	mtx     *sync.Mutex
}

// New instantiates new Logger.
func New() *Logger {
	return &Logger{
		level:   logging.Info,
		entries: &[]LogEntry{},
		mtx:     &sync.Mutex{},
	}
}

// WithFields provides additional fields to include in log output.
func (l *Logger) WithFields(fields map[string]any) logging.Logger {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	cp := Logger{
		level:   l.level,
		entries: l.entries,
		mtx:     l.mtx,
	}
	flds := make(map[string]any)
	maps.Copy(flds, l.fields)
	maps.Copy(flds, fields)
	cp.fields = flds
	return &cp
}

// Debug buffers a log message.
func (l *Logger) Debug(f string, a ...any) {
	l.append(logging.Debug, f, a...)
}

// Info buffers a log message.
func (l *Logger) Info(f string, a ...any) {
	l.append(logging.Info, f, a...)
}

// Error buffers a log message.
func (l *Logger) Error(f string, a ...any) {
	l.append(logging.Error, f, a...)
}

// Warn buffers a log message.
func (l *Logger) Warn(f string, a ...any) {
	l.append(logging.Warn, f, a...)
}

// SetLevel set log level.
func (l *Logger) SetLevel(level logging.Level) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.level = level
}

// GetLevel get log level.
func (l *Logger) GetLevel() logging.Level {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.level
}

// Entries returns buffered log entries.
func (l *Logger) Entries() []LogEntry {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return append([]LogEntry(nil), *l.entries...)
}

// Messages returns the message of every buffered entry.
func (l *Logger) Messages() []string {
	entries := l.Entries()
	msgs := make([]string, len(entries))
	for i := range entries {
		msgs[i] = entries[i].Message
	}
	return msgs
}

// append records the entry unless lvl is more verbose than the logger's
// level.
func (l *Logger) append(lvl logging.Level, f string, a ...any) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if lvl > l.level {
		return
	}
	*l.entries = append(*l.entries, LogEntry{
		Level:   lvl,
		Fields:  l.fields,
		Message: fmt.Sprintf(f, a...),
	})
}

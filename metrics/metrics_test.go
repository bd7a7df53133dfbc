// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package metrics

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMetricsTimer(t *testing.T) {
	m := New()
	m.Timer(TableResolve).Start()
	time.Sleep(time.Millisecond)
	m.Timer(TableResolve).Stop()

	if v, ok := m.All()["timer_table_resolve_ns"].(int64); !ok || v == 0 {
		t.Fatalf("Expected resolve timer to be non-zero: %v", m.All())
	}

	m.Clear()

	if len(m.All()) > 0 {
		t.Fatalf("Expected metrics to be cleared, but found %v", m.All())
	}
}

func TestMetricsTimerDoubleStop(t *testing.T) {
	m := New()
	m.Timer(TableRender).Start()

	time.Sleep(time.Millisecond)
	m.Timer(TableRender).Stop()
	t1 := m.Timer(TableRender).Int64()

	time.Sleep(time.Millisecond)
	if delta := m.Timer(TableRender).Stop(); delta != 0 {
		t.Fatalf("Expected no delta from stopped timer, got %v", delta)
	}
	t2 := m.Timer(TableRender).Int64()

	if t1 != t2 {
		t.Fatalf("Unexpected difference in stopped timer values: %v, %v", t1, t2)
	}
}

func TestMetricsCounter(t *testing.T) {
	m := New()
	m.Counter(TablesRendered).Incr()
	m.Counter(TablesRendered).Add(2)

	if v := m.All()["counter_tables_rendered"]; v != uint64(3) {
		t.Fatalf("Expected counter to be 3, got %v", v)
	}
}

func TestMetricsHistogram(t *testing.T) {
	m := New()
	for _, n := range []int64{1, 2, 3, 4} {
		m.Histogram(TableCells).Update(n)
	}

	v, ok := m.All()["histogram_table_cells"].(map[string]any)
	if !ok {
		t.Fatalf("Expected histogram value, got %v", m.All())
	}

	if v["count"] != int64(4) || v["min"] != int64(1) || v["max"] != int64(4) {
		t.Fatalf("Unexpected histogram value: %v", v)
	}
}

func TestMetricsJSON(t *testing.T) {
	m := New()
	m.Counter(FilesWritten).Incr()

	bs, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}

	if string(bs) != `{"counter_files_written":1}` {
		t.Fatalf("Unexpected JSON: %s", bs)
	}
}

func TestNoOp(t *testing.T) {
	m := NoOp()
	m.Timer(TableResolve).Start()
	m.Counter(TablesRendered).Incr()
	m.Histogram(TableCells).Update(3)

	if len(m.All()) != 0 {
		t.Fatalf("Expected no metrics, got %v", m.All())
	}
}

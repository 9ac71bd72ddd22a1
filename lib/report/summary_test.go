// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWriteSummary(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := &Run{
		ID:          "run-1",
		Experiment:  "math_coding",
		Environment: "pr",
		StartedAt:   started,
		FinishedAt:  started.Add(1500 * time.Millisecond),
		Evaluations: []Evaluation{{
			EvalID:    "math_coding_eval_20260301_120000",
			Evaluator: "answer_length",
			Dataset:   "math_small",
			Metrics:   map[string]float64{"answer_length": 12.5, "count": 2},
			Rows:      []map[string]any{{"line_number": 0}, {"line_number": 1}},
		}},
	}

	var buffer bytes.Buffer
	if err := WriteSummary(&buffer, run); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	output := buffer.String()
	for _, want := range []string{"run run-1", "environment pr", "1.5s", "math_coding_eval_20260301_120000", "answer_length=12.5 count=2"} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q:\n%s", want, output)
		}
	}
}

func TestWriteSummary_Empty(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteSummary(&buffer, &Run{ID: "run-2", Experiment: "math_coding"}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if !strings.HasSuffix(buffer.String(), "no evaluations\n") {
		t.Errorf("summary = %q", buffer.String())
	}
}

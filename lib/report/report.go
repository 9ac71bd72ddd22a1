// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"time"
)

// Run is the record of one harness invocation.
type Run struct {
	ID           string       `json:"id"`
	Experiment   string       `json:"experiment"`
	Environment  string       `json:"environment,omitempty"`
	ConfigDigest string       `json:"config_digest"`
	ToolVersion  string       `json:"tool_version,omitempty"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   time.Time    `json:"finished_at"`
	Evaluations  []Evaluation `json:"evaluations"`
}

// Evaluation is the outcome of one function applied to one dataset.
type Evaluation struct {
	EvalID     string             `json:"eval_id"`
	Evaluator  string             `json:"evaluator"`
	Function   string             `json:"function"`
	Dataset    string             `json:"dataset"`
	DataPath   string             `json:"data_path"`
	Metrics    map[string]float64 `json:"metrics"`
	Rows       []map[string]any   `json:"rows,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

// Duration is the wall time between StartedAt and FinishedAt.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

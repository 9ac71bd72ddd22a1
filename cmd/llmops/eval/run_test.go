// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/evalregistry"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/harness"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/report"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/testutil"
)

const experimentYAML = `
name: math_coding
flow: flows/math_code_generation
entry_point: pure_python_flow:get_math_response
connections:
  - name: aoai
    connection_type: AzureOpenAIConnection
    api_base: https://example.com/
    api_version: 2023-07-01-preview
    api_key: ${LLMOPS_EVAL_TEST_KEY}
    api_type: azure
    deployment_name: gpt-35-turbo
evaluators:
  - name: answer_length
    flow: evaluators/answer_length
    entry_point: answer_length:eval_answer_length
    connections_ref: [aoai]
    env_vars:
      - LLMOPS_EVAL_TEST_EXPORTED: ${LLMOPS_EVAL_TEST_KEY}
    datasets:
      - name: math_small
        source: data/math.jsonl
        mappings:
          response: ${data.answer}
  - name: unregistered
    flow: evaluators/unregistered
    entry_point: unregistered:eval_nothing
    connections_ref: [aoai]
    datasets:
      - name: math_small
        source: data/math.jsonl
`

func writeExperimentDir(t *testing.T) (dir, dotenv string) {
	t.Helper()
	dir = testutil.WriteFiles(t, map[string]string{
		"experiment.yaml": experimentYAML,
		"data/math.jsonl": `{"answer": "four"}` + "\n" + `{"answer": "twelve"}` + "\n",
		"test.env":        "LLMOPS_EVAL_TEST_KEY=secret\n",
	})
	return dir, filepath.Join(dir, "test.env")
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buffer bytes.Buffer
	original := cli.Stdout
	cli.Stdout = &buffer
	t.Cleanup(func() { cli.Stdout = original })
	return &buffer
}

func TestRun_WritesReport(t *testing.T) {
	dir, dotenv := writeExperimentDir(t)
	reportDir := filepath.Join(t.TempDir(), "reports")
	output := captureStdout(t)

	err := Command().Execute(context.Background(), []string{
		"run", "--base-path", dir, "--report-dir", reportDir, "--dotenv", dotenv,
		"--format", "cbor", "--compression", "zstd", "--json",
	}, nil)
	if err != nil {
		t.Fatalf("eval run: %v", err)
	}

	var result struct {
		ReportPath string `json:"report_path"`
	}
	if err := json.Unmarshal(output.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output.String())
	}
	if filepath.Dir(result.ReportPath) != reportDir || !strings.HasSuffix(result.ReportPath, ".report.cbor.zst") {
		t.Errorf("report path = %q", result.ReportPath)
	}

	run, err := report.Read(result.ReportPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if run.Experiment != "math_coding" || run.ConfigDigest == "" {
		t.Errorf("run header = %q, digest %q", run.Experiment, run.ConfigDigest)
	}
	// The unregistered evaluator is skipped.
	if len(run.Evaluations) != 1 {
		t.Fatalf("got %d evaluations, want 1", len(run.Evaluations))
	}
	evaluation := run.Evaluations[0]
	if evaluation.Evaluator != "answer_length" || evaluation.Dataset != "math_small" {
		t.Errorf("evaluation = %s/%s", evaluation.Evaluator, evaluation.Dataset)
	}
	// "four" and "twelve": (4 + 6) / 2.
	if got := evaluation.Metrics["answer_length"]; got != 5 {
		t.Errorf("answer_length = %v, want 5", got)
	}
}

func TestRun_TextSummary(t *testing.T) {
	dir, dotenv := writeExperimentDir(t)
	output := captureStdout(t)

	err := Command().Execute(context.Background(), []string{
		"run", "--base-path", dir, "--report-dir", t.TempDir(), "--dotenv", dotenv,
		"--evaluator", "answer_length",
	}, nil)
	if err != nil {
		t.Fatalf("eval run: %v", err)
	}
	text := output.String()
	if !strings.Contains(text, "answer_length=5") || !strings.Contains(text, "report: ") {
		t.Errorf("summary = %q", text)
	}
}

func TestRun_ExportEnv(t *testing.T) {
	dir, dotenv := writeExperimentDir(t)
	captureStdout(t)
	// t.Setenv restores the variable after the test.
	t.Setenv("LLMOPS_EVAL_TEST_EXPORTED", "")

	err := Command().Execute(context.Background(), []string{
		"run", "--base-path", dir, "--report-dir", t.TempDir(), "--dotenv", dotenv, "--export-env",
	}, nil)
	if err != nil {
		t.Fatalf("eval run: %v", err)
	}
	if got := os.Getenv("LLMOPS_EVAL_TEST_EXPORTED"); got != "secret" {
		t.Errorf("exported variable = %q, want secret", got)
	}
}

func TestRun_UnknownEvaluator(t *testing.T) {
	dir, dotenv := writeExperimentDir(t)
	captureStdout(t)

	err := Command().Execute(context.Background(), []string{
		"run", "--base-path", dir, "--report-dir", t.TempDir(), "--dotenv", dotenv, "-e", "missing",
	}, nil)
	if !errors.Is(err, harness.ErrUnknownEvaluator) {
		t.Errorf("error = %v, want ErrUnknownEvaluator", err)
	}
}

func TestRun_FunctionFailureStopsRun(t *testing.T) {
	dir, dotenv := writeExperimentDir(t)
	captureStdout(t)
	reportDir := filepath.Join(t.TempDir(), "reports")

	failure := errors.New("scorer unavailable")
	original := newRegistry
	newRegistry = func() (*evalregistry.Registry, error) {
		registry := evalregistry.New()
		err := registry.Register("answer_length", "eval_fail", func(context.Context, evalregistry.Request) (evalregistry.Result, error) {
			return evalregistry.Result{}, failure
		})
		return registry, err
	}
	t.Cleanup(func() { newRegistry = original })

	err := Command().Execute(context.Background(), []string{
		"run", "--base-path", dir, "--report-dir", reportDir, "--dotenv", dotenv,
	}, nil)
	if !errors.Is(err, failure) {
		t.Fatalf("error = %v, want the function's error", err)
	}
	entries, _ := os.ReadDir(reportDir)
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".report.") {
			t.Errorf("report %s written for a failed run", entry.Name())
		}
	}
}

func TestRun_InvalidFormat(t *testing.T) {
	err := Command().Execute(context.Background(), []string{"run", "--format", "xml"}, nil)
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("error = %v, want an unknown encoding error", err)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filippo.io/age"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	libreport "github.com/nstijepovic/genaiops-azureaisdk-template/lib/report"
)

func writeReport(t *testing.T, format libreport.Format, recipients ...age.Recipient) string {
	t.Helper()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path, err := libreport.Write(t.TempDir(), &libreport.Run{
		ID:           "run-7",
		Experiment:   "math_coding",
		ConfigDigest: "abc123",
		StartedAt:    started,
		FinishedAt:   started.Add(time.Second),
		Evaluations: []libreport.Evaluation{{
			EvalID:    "math_coding_eval_20260301_120000",
			Evaluator: "answer_length",
			Function:  "eval_answer_length",
			Dataset:   "math_small",
			Metrics:   map[string]float64{"answer_length": 5},
		}},
	}, format, recipients...)
	if err != nil {
		t.Fatalf("writing report: %v", err)
	}
	return path
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buffer bytes.Buffer
	original := cli.Stdout
	cli.Stdout = &buffer
	t.Cleanup(func() { cli.Stdout = original })
	return &buffer
}

func TestShow_Summary(t *testing.T) {
	path := writeReport(t, libreport.Format{Encoding: libreport.EncodingCBOR, Compression: libreport.CompressionLZ4})
	output := captureStdout(t)

	if err := Command().Execute(context.Background(), []string{"show", path}, nil); err != nil {
		t.Fatalf("report show: %v", err)
	}
	text := output.String()
	if !strings.Contains(text, "run run-7") || !strings.Contains(text, "answer_length=5") {
		t.Errorf("summary = %q", text)
	}
}

func TestShow_JSON(t *testing.T) {
	path := writeReport(t, libreport.DefaultFormat)
	output := captureStdout(t)

	if err := Command().Execute(context.Background(), []string{"show", path, "--json"}, nil); err != nil {
		t.Fatalf("report show: %v", err)
	}
	var run libreport.Run
	if err := json.Unmarshal(output.Bytes(), &run); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if run.ID != "run-7" || run.ConfigDigest != "abc123" || len(run.Evaluations) != 1 {
		t.Errorf("run = %+v", run)
	}
}

func TestShow_SealedReport(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("GenerateX25519Identity: %v", err)
	}
	path := writeReport(t, libreport.DefaultFormat, identity.Recipient())
	identityFile := filepath.Join(t.TempDir(), "key.txt")
	if err := os.WriteFile(identityFile, []byte(identity.String()+"\n"), 0o600); err != nil {
		t.Fatalf("writing identity file: %v", err)
	}
	output := captureStdout(t)

	err = Command().Execute(context.Background(), []string{"show", path}, nil)
	if !errors.Is(err, libreport.ErrNoIdentity) {
		t.Errorf("show without --identity: error = %v, want ErrNoIdentity", err)
	}

	if err := Command().Execute(context.Background(), []string{"show", "--identity", identityFile, path}, nil); err != nil {
		t.Fatalf("report show: %v", err)
	}
	if !strings.Contains(output.String(), "run run-7") {
		t.Errorf("summary = %q", output.String())
	}
}

func TestShow_Diagnose(t *testing.T) {
	path := writeReport(t, libreport.Format{Encoding: libreport.EncodingCBOR, Compression: libreport.CompressionZstd})
	output := captureStdout(t)

	if err := Command().Execute(context.Background(), []string{"show", "--diagnose", path}, nil); err != nil {
		t.Fatalf("report show --diagnose: %v", err)
	}
	if text := output.String(); !strings.Contains(text, `"experiment"`) || !strings.Contains(text, `"math_coding"`) {
		t.Errorf("diagnostic output = %q", output.String())
	}

	jsonPath := writeReport(t, libreport.DefaultFormat)
	if err := Command().Execute(context.Background(), []string{"show", "--diagnose", jsonPath}, nil); err == nil {
		t.Error("--diagnose on a JSON report succeeded")
	}
}

func TestShow_Usage(t *testing.T) {
	if err := Command().Execute(context.Background(), []string{"show"}, nil); err == nil {
		t.Error("report show with no file succeeded")
	}
}

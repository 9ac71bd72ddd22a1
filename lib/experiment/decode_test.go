// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	input := map[string]any{
		"nested": map[any]any{1: "one", "two": json.Number("2")},
		"list":   []any{json.Number("1.5"), map[any]any{"k": "v"}},
		"date":   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"stamp":  time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
	}
	want := map[string]any{
		"nested": map[string]any{"1": "one", "two": int64(2)},
		"list":   []any{1.5, map[string]any{"k": "v"}},
		"date":   "2024-02-01",
		"stamp":  "2024-02-01T10:30:00Z",
	}

	if diff := cmp.Diff(want, normalize(input)); diff != "" {
		t.Errorf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDocument_FormatByExtension(t *testing.T) {
	// Valid YAML, invalid JSON: the extension decides the parser.
	data := []byte("name: example\n")

	if _, err := decodeDocument("experiment.yaml", data); err != nil {
		t.Errorf("YAML decode: %v", err)
	}
	if _, err := decodeDocument("experiment.json", data); err == nil {
		t.Error("JSON decode of YAML input succeeded, want an error")
	}
}

func TestConnectionFromDocument_ScalarText(t *testing.T) {
	data := []byte(`
connections:
  - name: aoai
    connection_type: AzureOpenAIConnection
    api_base: https://aoai.example.com/
    api_version: 2024.10
    api_key: key
    api_type: azure
    deployment_name: gpt-4o
  - name: quoted
    connection_type: AzureOpenAIConnection
    api_base: https://aoai.example.com/
    api_version: "2024.10"
    api_key: key
    api_type: azure
    deployment_name: gpt-4o
  - name: dated
    connection_type: AzureOpenAIConnection
    api_base: https://aoai.example.com/
    api_version: 2024-10-01
    api_key: key
    api_type: azure
    deployment_name: 4
`)
	document, err := decodeDocument("experiment.yaml", data)
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}
	entries, err := mapList(document, "connections", "test")
	if err != nil {
		t.Fatalf("mapList: %v", err)
	}

	want := []struct{ version, deployment string }{
		// An unquoted float loses its trailing zero.
		{"2024.1", "gpt-4o"},
		{"2024.10", "gpt-4o"},
		{"2024-10-01", "4"},
	}
	for index, entry := range entries {
		connection, err := ConnectionFromMap(entry)
		if err != nil {
			t.Fatalf("ConnectionFromMap(%d): %v", index, err)
		}
		if connection.APIVersion != want[index].version || connection.DeploymentName != want[index].deployment {
			t.Errorf("connection %s: api_version %q deployment_name %q, want %q %q", connection.Name,
				connection.APIVersion, connection.DeploymentName, want[index].version, want[index].deployment)
		}
	}
}

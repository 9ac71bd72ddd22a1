// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteFile writes content to dir/name, creating intermediate
// directories, and returns the full path.
//
//	path := testutil.WriteFile(t, dir, "experiment.yaml", experimentYAML)
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// WriteFiles writes every name/content pair under a fresh temporary
// directory and returns that directory. Files are written in name
// order.
//
//	dir := testutil.WriteFiles(t, map[string]string{
//		"experiment.yaml":     base,
//		"experiment.dev.yaml": overlay,
//	})
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		WriteFile(t, dir, name, files[name])
	}
	return dir
}

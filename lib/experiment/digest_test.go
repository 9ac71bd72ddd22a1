// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import "testing"

func TestDigest(t *testing.T) {
	first, err := Digest(baseConfig())
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	second, err := Digest(baseConfig())
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if first != second {
		t.Errorf("equal documents digest differently: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(first))
	}

	changed := baseConfig()
	changed["flow"] = "flows/other"
	third, err := Digest(changed)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if third == first {
		t.Error("changing flow did not change the digest")
	}
}

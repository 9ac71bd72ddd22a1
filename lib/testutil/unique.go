// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix_N" where N is a
// monotonically increasing integer. The underscore keeps the result a
// valid environment variable name when prefix is one.
//
//	name := testutil.UniqueID("LLMOPS_TEST_KEY") // "LLMOPS_TEST_KEY_1", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, uniqueCounter.Add(1))
}

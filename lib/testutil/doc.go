// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [WriteFile] and [WriteFiles] lay out fixture files (experiment
// documents, overlays, datasets) under a test's temporary directory.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation, such as environment variable names that must not
// collide with anything already set in the process environment.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies inside this module.
package testutil

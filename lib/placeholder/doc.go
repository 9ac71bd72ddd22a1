// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package placeholder resolves ${NAME} tokens in configuration values
// against an explicit variable snapshot.
//
// A value carries at most one token. When a token is present the whole
// value is replaced by the variable's value, so "${AZURE_OPENAI_KEY}"
// becomes the key and "prefix-${X}" becomes the value of X, not
// "prefix-" followed by it. Values without a token pass through verbatim.
//
// Resolution never reads the process environment implicitly. Callers
// take a snapshot with [Environ] (or build [Vars] by hand in tests) and
// pass it down, so a resolution pass sees one consistent view even if
// another goroutine changes the environment meanwhile.
//
// Key exports:
//
//   - [Resolve] -- substitute the token in one value
//   - [Vars] -- the lookup table, with [Environ], [FromEnviron], [LoadDotenv]
//   - [NotFoundError] / [ErrVariableNotFound] -- the failure condition
//
// This package depends on no other packages in this module.
package placeholder

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report persists the results of an evaluation run.
//
// A [Run] records which experiment ran, against which merged
// configuration (by digest), and what every evaluation call returned.
// [Write] stores a run as JSON or deterministic CBOR, optionally
// compressed with zstd or LZ4 frames, under a name that encodes the
// format:
//
//	<run-id>.report.json
//	<run-id>.report.cbor.zst
//	<run-id>.report.json.lz4
//
// Reports can hold dataset rows, so [Write] can also seal the file to
// age X25519 recipients, adding ".age" to the name. [Read] reverses the
// process, choosing the decoders from the name; sealed reports need a
// matching identity.
package report

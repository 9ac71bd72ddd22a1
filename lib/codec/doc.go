// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR encoding
// configuration.
//
// Two places need byte-stable encodings of configuration data:
//
//   - Config digests: the merged experiment document is encoded and
//     hashed, so the same logical configuration must always produce the
//     same bytes regardless of map iteration order.
//   - CBOR reports: evaluation runs written with --format cbor.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Report types carry `json` struct tags only. fxamacker/cbor v2 falls
// back to `json` tags when `cbor` tags are absent, so one tag controls
// field naming for both report encodings.
package codec

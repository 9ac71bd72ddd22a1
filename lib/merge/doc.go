// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package merge deep-merges decoded configuration documents.
//
// Documents are the generic trees produced by YAML or JSON decoding:
// map[string]any for mappings, []any for sequences, and scalars. An
// environment overlay (experiment.dev.yaml) is merged on top of its base
// (experiment.yaml) so that the overlay only needs to spell out what
// differs. Sequences of named mappings (connections, evaluators) are
// reconciled by their "name" key, which lets an overlay change a single
// connection without repeating the whole list.
//
// [Merge] is pure: inputs are never modified and the result shares no
// maps or slices with them. [Copy] is the deep copy it is built on.
package merge

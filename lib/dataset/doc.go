// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset reads JSON Lines evaluation datasets and applies
// column mappings to their rows.
//
// A column mapping maps an evaluator input name to a column
// expression. The expression is either a bare column name ("answer")
// or a data reference ("${data.answer}"). References to any other
// source, such as "${target.answer}", need a target to run and are
// rejected with [ErrUnsupportedReference].
package dataset

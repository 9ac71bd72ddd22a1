// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scoring implements the local scorers used by the built-in
// evaluation functions.
//
// [AnswerLength] measures a response in characters. [AgentScore]
// checks an agent thread transcript against expected message counts
// and a maximum time spread, and reports the share of passed checks as
// an integer percentage.
package scoring

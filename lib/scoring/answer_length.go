// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scoring

import "unicode/utf8"

// AnswerLengthMetric is the metric name reported by AnswerLength.
const AnswerLengthMetric = "answer_length"

// AnswerLength returns the response length in characters (runes, not
// bytes).
func AnswerLength(response string) map[string]float64 {
	return map[string]float64{AnswerLengthMetric: float64(utf8.RuneCountInString(response))}
}

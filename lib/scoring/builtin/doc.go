// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package builtin registers the evaluation functions that ship with
// llmops:
//
//	answer_length.eval_answer_length  input: response
//	agent_score.eval_agent_score      inputs: full_output,
//	                                  total_message_count,
//	                                  total_user_message_count,
//	                                  total_assistant_message_count,
//	                                  time_difference
//
// Each function loads the dataset, applies the column mapping, scores
// every row, and returns the per-row scores plus their mean.
package builtin

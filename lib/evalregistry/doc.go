// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package evalregistry maps evaluator names to the evaluation
// functions the harness runs for them.
//
// An evaluator named "answer_length" in an experiment document is
// served by every function registered under the module name
// "answer_length". Function names must start with "eval_" (any case).
// Registration is explicit: nothing is discovered at run time.
package evalregistry

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package harness runs the evaluators of a loaded experiment.
//
// For each selected evaluator the [Runner] resolves the evaluator's
// variables against its snapshot, optionally exports the experiment's
// and then the evaluator's resolved variables into the process
// environment, and calls every function registered for the evaluator
// once per dataset. Results are collected into a [report.Run].
//
// Evaluators run sequentially. The first failing call stops the run,
// and cancellation is checked before every call.
package harness

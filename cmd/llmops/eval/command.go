// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package eval implements the llmops eval subcommands, which run the
// evaluators of an experiment through the registered evaluation
// functions and write a report of the results.
package eval

import (
	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
)

// Command returns the "eval" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "eval",
		Summary: "Run experiment evaluators",
		Description: `Run the evaluators of an experiment.

Each evaluator is matched by name to the evaluation functions registered
for it. Every function is applied to every dataset of the evaluator, and
the metrics of all evaluations are written to a single report file.`,
		Subcommands: []*cli.Command{
			runCommand(),
		},
	}
}

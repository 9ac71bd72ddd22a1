// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/eval"
	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/experiment"
	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/report"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/version"
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "llmops",
		Description: `llmops: experiment configuration and evaluation.

Experiments are YAML (or JSONC) files with per-environment overlays.
Placeholders are resolved from the environment, evaluators are run
against their datasets, and results are written as reports.

Set LLMOPS_LOG_LEVEL to debug, info, warn, or error to change logging.`,
		Subcommands: []*cli.Command{
			experiment.Command(),
			eval.Command(),
			report.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					_, err := fmt.Fprintf(cli.Stdout, "llmops %s\n", version.Full())
					return err
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Show the resolved pr experiment",
				Command:     "llmops experiment show --base-path math_coding --env pr",
			},
			{
				Description: "Run every evaluator and write a report",
				Command:     "llmops eval run --base-path math_coding --environment-name pr",
			},
		},
	}
}

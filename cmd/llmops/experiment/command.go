// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package experiment implements the llmops experiment subcommands for
// inspecting and checking experiment files. Both commands read the base
// file and the overlay for --env from --base-path, and resolve
// placeholders against the process environment plus an optional dotenv
// file.
package experiment

import (
	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	libexperiment "github.com/nstijepovic/genaiops-azureaisdk-template/lib/experiment"
)

// Command returns the "experiment" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "experiment",
		Summary: "Inspect and validate experiment files",
		Description: `Inspect and validate experiment definitions.

An experiment is a base file (experiment.yaml by default) plus an optional
environment overlay named by inserting the environment before the
extension (experiment.dev.yaml). The overlay is merged on top of the base:
mappings merge key by key, lists of named entries merge by name, and
scalars are replaced.

Placeholders of the form ${NAME} are resolved against the process
environment. Values from a dotenv file (--dotenv, or .env when present)
fill in names the environment does not set.`,
		Subcommands: []*cli.Command{
			showCommand(),
			validateCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show the dev experiment with secrets redacted",
				Command:     "llmops experiment show --base-path math_coding --env dev",
			},
			{
				Description: "Check every evaluator resolves",
				Command:     "llmops experiment validate --base-path math_coding --env pr",
			},
		},
	}
}

// SourceParams selects the experiment files and the variable snapshot.
type SourceParams struct {
	BasePath string `flag:"base-path" desc:"directory holding the experiment files" default:"."`
	File     string `flag:"file,f" desc:"base experiment file name" default:"experiment.yaml"`
	Env      string `flag:"env" desc:"environment overlay to merge (empty for none)"`
	Dotenv   string `flag:"dotenv" desc:"dotenv file supplying variables the environment does not set (default .env when present)"`
}

func (p SourceParams) options() libexperiment.Options {
	return libexperiment.Options{
		Filename:    p.File,
		BasePath:    p.BasePath,
		Environment: p.Env,
	}
}

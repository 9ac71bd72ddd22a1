// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report implements the llmops report subcommands for reading
// report files written by "llmops eval run".
package report

import (
	"context"
	"fmt"
	"log/slog"

	"filippo.io/age"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/codec"
	libreport "github.com/nstijepovic/genaiops-azureaisdk-template/lib/report"
)

// Command returns the "report" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "report",
		Summary: "Read evaluation reports",
		Subcommands: []*cli.Command{
			showCommand(),
		},
	}
}

type showParams struct {
	cli.JSONOutput
	Identity string `flag:"identity,i" desc:"age identity file for sealed (.age) reports"`
	Diagnose bool   `flag:"diagnose" desc:"print CBOR diagnostic notation of a CBOR report"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print a report file",
		Description: `Decode a report file and print a summary of its evaluations, or the
full report with --json. The encoding and compression are taken from the
file name (.report.json, .report.cbor, optionally followed by .zst or
.lz4). Sealed reports end in .age and need --identity.

--diagnose prints a CBOR report in RFC 8949 diagnostic notation, showing
the encoded bytes as written rather than the decoded report.`,
		Usage: "llmops report show <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Print a compressed CBOR report as JSON",
				Command:     "llmops report show reports/5f0c.report.cbor.zst --json",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: llmops report show <file> [flags]")
			}
			var identities []age.Identity
			if params.Identity != "" {
				parsed, err := libreport.ReadIdentities(params.Identity)
				if err != nil {
					return err
				}
				identities = parsed
			}
			if params.Diagnose {
				return diagnose(args[0], identities)
			}
			run, err := libreport.Read(args[0], identities...)
			if err != nil {
				return err
			}
			logger.Debug("report decoded", "path", args[0], "evaluations", len(run.Evaluations))

			if done, err := params.EmitJSON(run); done {
				return err
			}
			return libreport.WriteSummary(cli.Stdout, run)
		},
	}
}

// diagnose prints the diagnostic notation of a CBOR report payload.
func diagnose(path string, identities []age.Identity) error {
	payload, format, err := libreport.ReadPayload(path, identities...)
	if err != nil {
		return err
	}
	if format.Encoding != libreport.EncodingCBOR {
		return fmt.Errorf("%s: --diagnose needs a CBOR report, got %s", path, format.Encoding)
	}
	notation, err := codec.Diagnose(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = fmt.Fprintln(cli.Stdout, notation)
	return err
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/evalregistry"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/experiment"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/harness"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/report"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/scoring/builtin"
)

type runParams struct {
	cli.JSONOutput
	EnvironmentName string   `flag:"environment-name" desc:"environment overlay to merge (empty for none)"`
	BasePath        string   `flag:"base-path" desc:"directory holding the experiment files and datasets" default:"."`
	ReportDir       string   `flag:"report-dir" desc:"directory the report is written to" default:"reports"`
	ConfigFile      string   `flag:"experiment-config-file" desc:"base experiment file name" default:"experiment.yaml"`
	Evaluators      []string `flag:"evaluator,e" desc:"evaluator to run (repeatable; default all)"`
	Format          string   `flag:"format" desc:"report encoding: json or cbor" default:"json"`
	Compression     string   `flag:"compression" desc:"report compression: none, zstd, or lz4" default:"none"`
	Recipients      []string `flag:"recipient" desc:"age public key to seal the report to (repeatable)"`
	Dotenv          string   `flag:"dotenv" desc:"dotenv file supplying variables the environment does not set (default .env when present)"`
	ExportEnv       bool     `flag:"export-env" desc:"export resolved variables into the process environment before each evaluator"`
}

// runResult is the JSON output for eval run.
type runResult struct {
	ReportPath string      `json:"report_path"`
	Run        *report.Run `json:"run"`
}

// newRegistry returns the registry of evaluation functions. Replaced
// by tests.
var newRegistry = func() (*evalregistry.Registry, error) {
	registry := evalregistry.New()
	if err := builtin.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func runCommand() *cli.Command {
	var params runParams

	return &cli.Command{
		Name:    "run",
		Summary: "Run evaluators and write a report",
		Description: `Load the experiment, resolve its placeholders, and run every evaluator
(or only those named with --evaluator). The run stops at the first
failing evaluation.

Dataset sources are read relative to --base-path. The report is written
to --report-dir as <run-id>.report.<format>, with .zst or .lz4 appended
when compressed. With --recipient the report is sealed to the given age
public keys and ".age" is appended; read it back with
"llmops report show --identity".

With --export-env the resolved variables of the experiment, then of each
evaluator, are set in the process environment, so evaluation code that
reads the environment sees them.`,
		Usage: "llmops eval run [flags]",
		Examples: []cli.Example{
			{
				Description: "Run every evaluator against the pr environment",
				Command:     "llmops eval run --base-path math_coding --environment-name pr",
			},
			{
				Description: "Run one evaluator and write a zstd-compressed CBOR report",
				Command:     "llmops eval run -e answer_length --format cbor --compression zstd",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			format, err := params.format()
			if err != nil {
				return err
			}
			recipients, err := report.ParseRecipients(params.Recipients)
			if err != nil {
				return err
			}
			vars, err := cli.Vars(params.Dotenv)
			if err != nil {
				return err
			}

			loaded, err := experiment.Load(experiment.Options{
				Filename:    params.ConfigFile,
				BasePath:    params.BasePath,
				Environment: params.EnvironmentName,
				Vars:        vars,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			registry, err := newRegistry()
			if err != nil {
				return err
			}
			runner := &harness.Runner{
				Registry:    registry,
				Logger:      logger,
				BasePath:    params.BasePath,
				ReportDir:   params.ReportDir,
				Environment: params.EnvironmentName,
				Vars:        vars,
			}
			if params.ExportEnv {
				runner.Setenv = os.Setenv
			}

			run, err := runner.Run(ctx, loaded, params.Evaluators)
			if err != nil {
				return err
			}
			path, err := report.Write(params.ReportDir, run, format, recipients...)
			if err != nil {
				return err
			}
			logger.Info("report written", "path", path)

			if done, err := params.EmitJSON(runResult{ReportPath: path, Run: run}); done {
				return err
			}
			if err := report.WriteSummary(cli.Stdout, run); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cli.Stdout, "report: %s\n", path)
			return err
		},
	}
}

func (p runParams) format() (report.Format, error) {
	encoding, err := report.ParseEncoding(p.Format)
	if err != nil {
		return report.Format{}, err
	}
	compression, err := report.ParseCompression(p.Compression)
	if err != nil {
		return report.Format{}, err
	}
	return report.Format{Encoding: encoding, Compression: compression}, nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	libexperiment "github.com/nstijepovic/genaiops-azureaisdk-template/lib/experiment"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

type validateParams struct {
	cli.JSONOutput
	SourceParams
}

// validationResult is the JSON output for experiment validate.
type validationResult struct {
	Experiment   string   `json:"experiment,omitempty"`
	ConfigDigest string   `json:"config_digest,omitempty"`
	Valid        bool     `json:"valid"`
	Issues       []string `json:"issues,omitempty"`
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that an experiment loads and resolves",
		Description: `Load an experiment and resolve the placeholders of the experiment and of
every evaluator, reporting every problem found rather than stopping at
the first. Dataset sources are checked for existence relative to
--base-path.

Exits with status 1 when any issue is found.`,
		Usage: "llmops experiment validate [flags]",
		Examples: []cli.Example{
			{
				Description: "Validate the pr environment",
				Command:     "llmops experiment validate --base-path math_coding --env pr",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			vars, err := cli.Vars(params.Dotenv)
			if err != nil {
				return err
			}

			result := validate(params.SourceParams, vars)
			if done, err := params.EmitJSON(result); done {
				if err == nil && !result.Valid {
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			if !result.Valid {
				fmt.Fprintf(cli.Stderr, "%d issue(s) found:\n", len(result.Issues))
				for _, issue := range result.Issues {
					fmt.Fprintf(cli.Stderr, "  - %s\n", issue)
				}
				return &cli.ExitError{Code: 1}
			}
			logger.Info("experiment is valid", "experiment", result.Experiment, "config_digest", result.ConfigDigest)
			fmt.Fprintf(cli.Stdout, "%s: valid\n", result.Experiment)
			return nil
		},
	}
}

// validate loads the experiment and collects every issue.
func validate(source SourceParams, vars placeholder.Vars) validationResult {
	var result validationResult
	err := checkExperiment(source, vars, &result)
	if err != nil {
		for _, issue := range unwrapJoined(err) {
			result.Issues = append(result.Issues, issue.Error())
		}
	}
	result.Valid = err == nil
	return result
}

func checkExperiment(source SourceParams, vars placeholder.Vars, result *validationResult) error {
	basePath, overlayPath, err := source.options().Paths()
	if err != nil {
		return err
	}
	config, err := libexperiment.LoadConfig(basePath, overlayPath)
	if err != nil {
		return err
	}
	loaded, err := libexperiment.Build(config)
	if err != nil {
		return err
	}
	result.Experiment = loaded.Name
	result.ConfigDigest = loaded.ConfigDigest

	var issues []error
	if err := loaded.ResolveVariables(vars); err != nil {
		issues = append(issues, err)
	}
	evaluatorVars := vars.With(loaded.Environment())
	for _, evaluator := range loaded.Evaluators {
		if err := evaluator.ResolveVariables(evaluatorVars); err != nil {
			issues = append(issues, err)
		}
		for _, dataset := range evaluator.Datasets {
			path := filepath.Join(source.BasePath, dataset.Source)
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				issues = append(issues, fmt.Errorf("evaluator %q dataset %q: source %s does not exist", evaluator.Name, dataset.Name, path))
			}
		}
	}
	return errors.Join(issues...)
}

// unwrapJoined splits an errors.Join result into its parts.
func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

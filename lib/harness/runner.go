// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/clock"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/evalregistry"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/experiment"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/report"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/version"
)

// ErrUnknownEvaluator is returned when a selected evaluator name is not
// defined by the experiment.
var ErrUnknownEvaluator = errors.New("unknown evaluator")

// evalIDTimeFormat is the timestamp layout inside evaluation IDs.
const evalIDTimeFormat = "20060102_150405"

// Runner executes evaluators. Registry is required; every other field
// has a usable zero value.
type Runner struct {
	Registry *evalregistry.Registry

	// Clock stamps evaluation IDs and report times. nil means the
	// real clock.
	Clock clock.Clock

	Logger *slog.Logger

	// BasePath is joined with each dataset source.
	BasePath string

	// ReportDir is passed to every evaluation function and created
	// before the first call when non-empty.
	ReportDir string

	// Environment names the overlay the experiment was loaded with,
	// for the report.
	Environment string

	// Vars is the snapshot evaluator placeholders resolve against,
	// with the experiment's resolved variables layered on top. nil
	// means a snapshot of the process environment.
	Vars placeholder.Vars

	// Setenv, when set, receives every resolved variable of the
	// experiment and then of each evaluator before its functions run.
	// Pass os.Setenv to export into the process environment.
	Setenv func(key, value string) error

	// NewID returns the run ID. nil means a random UUID.
	NewID func() string
}

// Run executes the evaluators named in selected, in experiment order,
// or every evaluator when selected is empty. The experiment must
// already have its experiment-level variables resolved.
func (r *Runner) Run(ctx context.Context, exp *experiment.Experiment, selected []string) (*report.Run, error) {
	if r.Registry == nil {
		return nil, fmt.Errorf("harness: runner has no registry")
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := r.now()

	evaluators, err := selectEvaluators(exp, selected)
	if err != nil {
		return nil, err
	}
	vars := r.Vars
	if vars == nil {
		vars = placeholder.Environ()
	}

	run := &report.Run{
		ID:           r.newID(),
		Experiment:   exp.Name,
		Environment:  r.Environment,
		ConfigDigest: exp.ConfigDigest,
		ToolVersion:  version.Info(),
		StartedAt:    now(),
		Evaluations:  []report.Evaluation{},
	}
	logger.Info("starting evaluation run",
		"run_id", run.ID,
		"experiment", exp.Name,
		"evaluators", len(evaluators),
	)

	experimentEnv := exp.Environment()
	if err := r.export(experimentEnv); err != nil {
		return nil, err
	}
	evaluatorVars := vars.With(experimentEnv)

	if r.ReportDir != "" {
		if err := os.MkdirAll(r.ReportDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating report directory: %w", err)
		}
	}

	for _, evaluator := range evaluators {
		evaluatorLogger := logger.With("evaluator", evaluator.Name)

		if err := evaluator.ResolveVariables(evaluatorVars); err != nil {
			return nil, err
		}
		evaluatorEnv := evaluator.Environment()
		if err := r.export(evaluatorEnv); err != nil {
			return nil, err
		}

		functions := r.Registry.Functions(evaluator.Name)
		if len(functions) == 0 {
			evaluatorLogger.Warn("no evaluation functions registered, skipping evaluator",
				"registered", r.Registry.Modules())
			continue
		}

		env := make(map[string]string, len(experimentEnv)+len(evaluatorEnv))
		maps.Copy(env, experimentEnv)
		maps.Copy(env, evaluatorEnv)

		for _, function := range functions {
			for _, dataset := range evaluator.Datasets {
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				started := now()
				request := evalregistry.Request{
					EvalID:        exp.Name + "_eval_" + started.Format(evalIDTimeFormat),
					DataPath:      filepath.Join(r.BasePath, dataset.Source),
					ColumnMapping: maps.Clone(dataset.Mappings),
					ReportDir:     r.ReportDir,
					Env:           env,
					Connections:   evaluator.Connections,
					Logger:        evaluatorLogger.With("function", function.Name, "dataset", dataset.Name),
				}
				request.Logger.Info("running evaluation", "eval_id", request.EvalID, "path", request.DataPath)

				result, err := function.Func(ctx, request)
				if err != nil {
					return nil, fmt.Errorf("evaluator %q function %s dataset %q: %w",
						evaluator.Name, function.Name, dataset.Name, err)
				}

				run.Evaluations = append(run.Evaluations, report.Evaluation{
					EvalID:     request.EvalID,
					Evaluator:  evaluator.Name,
					Function:   function.Name,
					Dataset:    dataset.Name,
					DataPath:   request.DataPath,
					Metrics:    result.Metrics,
					Rows:       result.Rows,
					StartedAt:  started,
					FinishedAt: now(),
				})
				request.Logger.Info("evaluation completed", "eval_id", request.EvalID, "metrics", result.Metrics)
			}
		}
	}

	run.FinishedAt = now()
	logger.Info("evaluation run finished",
		"run_id", run.ID,
		"evaluations", len(run.Evaluations),
		"duration", run.Duration(),
	)
	return run, nil
}

func (r *Runner) now() func() time.Time {
	c := r.Clock
	if c == nil {
		c = clock.Real()
	}
	return c.Now
}

func (r *Runner) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

// export passes variables to Setenv in key order.
func (r *Runner) export(env map[string]string) error {
	if r.Setenv == nil {
		return nil
	}
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := r.Setenv(key, env[key]); err != nil {
			return fmt.Errorf("exporting %s: %w", key, err)
		}
	}
	return nil
}

// selectEvaluators returns the named evaluators in experiment order,
// or all of them when names is empty.
func selectEvaluators(exp *experiment.Experiment, names []string) ([]*experiment.Evaluator, error) {
	if len(names) == 0 {
		return exp.Evaluators, nil
	}

	wanted := make(map[string]bool, len(names))
	var unknown []string
	for _, name := range names {
		if _, ok := exp.Evaluator(name); !ok {
			unknown = append(unknown, name)
		}
		wanted[name] = true
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (experiment %q defines: %s)",
			ErrUnknownEvaluator, strings.Join(unknown, ", "), exp.Name, evaluatorNames(exp))
	}

	var selected []*experiment.Evaluator
	for _, evaluator := range exp.Evaluators {
		if wanted[evaluator.Name] {
			selected = append(selected, evaluator)
		}
	}
	return selected, nil
}

func evaluatorNames(exp *experiment.Experiment) string {
	names := make([]string, len(exp.Evaluators))
	for index, evaluator := range exp.Evaluators {
		names[index] = evaluator.Name
	}
	return strings.Join(names, ", ")
}

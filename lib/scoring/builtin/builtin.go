// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/dataset"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/evalregistry"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/scoring"
)

// ErrMissingInput is returned when a mapped row lacks an input the
// scorer needs.
var ErrMissingInput = errors.New("missing scorer input")

// Register adds every built-in evaluation function to registry.
func Register(registry *evalregistry.Registry) error {
	if err := registry.Register("answer_length", "eval_answer_length", EvalAnswerLength); err != nil {
		return err
	}
	return registry.Register("agent_score", "eval_agent_score", EvalAgentScore)
}

// EvalAnswerLength scores the length of each row's response.
func EvalAnswerLength(ctx context.Context, request evalregistry.Request) (evalregistry.Result, error) {
	return scoreRows(ctx, request, scoring.AnswerLengthMetric, func(row dataset.Row) (float64, error) {
		response, err := input(row, "response")
		if err != nil {
			return 0, err
		}
		return scoring.AnswerLength(dataset.String(response))[scoring.AnswerLengthMetric], nil
	})
}

// EvalAgentScore scores each row's agent transcript against the
// expected message counts and time spread in the same row.
func EvalAgentScore(ctx context.Context, request evalregistry.Request) (evalregistry.Result, error) {
	return scoreRows(ctx, request, scoring.AgentScoreMetric, func(row dataset.Row) (float64, error) {
		transcript, err := input(row, "full_output")
		if err != nil {
			return 0, err
		}
		messages, err := scoring.ParseMessages(dataset.String(transcript))
		if err != nil {
			return 0, err
		}

		var counts [4]int64
		for index, name := range []string{
			"total_message_count",
			"total_user_message_count",
			"total_assistant_message_count",
			"time_difference",
		} {
			if counts[index], err = integerInput(row, name); err != nil {
				return 0, err
			}
		}
		expect := scoring.AgentExpectations{
			TotalMessages:     int(counts[0]),
			UserMessages:      int(counts[1]),
			AssistantMessages: int(counts[2]),
			MaxTimeDifference: counts[3],
		}

		return float64(scoring.AgentScore(messages, expect)), nil
	})
}

// scoreRows loads the request's dataset and applies score to each
// row. Rows in the result carry the row index and the metric value.
func scoreRows(ctx context.Context, request evalregistry.Request, metric string, score func(dataset.Row) (float64, error)) (evalregistry.Result, error) {
	rows, err := dataset.Load(request.DataPath, request.ColumnMapping)
	if err != nil {
		return evalregistry.Result{}, err
	}

	outputs := make([]map[string]any, 0, len(rows))
	total := 0.0
	for index, row := range rows {
		if err := ctx.Err(); err != nil {
			return evalregistry.Result{}, err
		}
		value, err := score(row)
		if err != nil {
			return evalregistry.Result{}, fmt.Errorf("%s: row %d: %w", request.DataPath, index+1, err)
		}
		total += value
		outputs = append(outputs, map[string]any{"line_number": index, metric: value})
	}

	mean := 0.0
	if len(rows) > 0 {
		mean = total / float64(len(rows))
	}
	if request.Logger != nil {
		request.Logger.Info("scored dataset",
			"eval_id", request.EvalID,
			"metric", metric,
			"rows", len(rows),
			"mean", mean,
		)
	}
	return evalregistry.Result{
		Metrics: map[string]float64{metric: mean},
		Rows:    outputs,
	}, nil
}

func input(row dataset.Row, name string) (any, error) {
	value, ok := row[name]
	if !ok || value == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingInput, name)
	}
	return value, nil
}

// integerInput reads an integer input given as a JSON number or a
// decimal string.
func integerInput(row dataset.Row, name string) (int64, error) {
	value, err := input(row, name)
	if err != nil {
		return 0, err
	}
	switch typed := value.(type) {
	case float64:
		return int64(typed), nil
	case string:
		parsed, err := strconv.ParseInt(typed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("input %q: %w", name, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("input %q: want an integer, got %T", name, value)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// WriteSummary prints one line per evaluation with its metrics in
// name order.
func WriteSummary(w io.Writer, run *Run) error {
	fmt.Fprintf(w, "run %s  experiment %s", run.ID, run.Experiment)
	if run.Environment != "" {
		fmt.Fprintf(w, "  environment %s", run.Environment)
	}
	fmt.Fprintf(w, "  %s\n", run.Duration().Round(time.Millisecond))
	if len(run.Evaluations) == 0 {
		_, err := fmt.Fprintln(w, "no evaluations")
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EVAL ID\tEVALUATOR\tDATASET\tROWS\tMETRICS")
	for _, evaluation := range run.Evaluations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			evaluation.EvalID, evaluation.Evaluator, evaluation.Dataset,
			len(evaluation.Rows), formatMetrics(evaluation.Metrics))
	}
	return tw.Flush()
}

func formatMetrics(metrics map[string]float64) string {
	if len(metrics) == 0 {
		return "-"
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	parts := make([]string, len(names))
	for index, name := range names {
		parts[index] = name + "=" + strconv.FormatFloat(metrics[name], 'g', 6, 64)
	}
	return strings.Join(parts, " ")
}

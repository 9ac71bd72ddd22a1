// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	libexperiment "github.com/nstijepovic/genaiops-azureaisdk-template/lib/experiment"
)

// styles holds the text styles for human-readable output. Off a
// terminal the renderer uses the Ascii profile and every style renders
// plain text.
type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	faint   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	profile := termenv.Ascii
	if cli.IsTerminal(w) {
		profile = termenv.EnvColorProfile()
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return styles{
		title:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		heading: renderer.NewStyle().Bold(true),
		faint:   renderer.NewStyle().Faint(true),
	}
}

// writeExperiment prints the experiment as a sectioned summary.
func writeExperiment(w io.Writer, experiment *libexperiment.Experiment, style styles) error {
	fmt.Fprintln(w, style.title.Render("Experiment "+experiment.Name))
	if experiment.Description != "" {
		fmt.Fprintln(w, experiment.Description)
	}

	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  flow\t%s\n", experiment.Flow)
	fmt.Fprintf(tw, "  entry point\t%s\n", experiment.EntryPoint)
	if experiment.ConfigDigest != "" {
		fmt.Fprintf(tw, "  config digest\t%s\n", style.faint.Render(experiment.ConfigDigest))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	writeConnections(w, "", experiment.Connections, style)
	writeVariables(w, "", experiment.ResolvedEnvVars, style)

	for _, evaluator := range experiment.Evaluators {
		fmt.Fprintln(w)
		fmt.Fprintln(w, style.heading.Render("Evaluator "+evaluator.Name))
		tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  flow\t%s\n", evaluator.Flow)
		fmt.Fprintf(tw, "  entry point\t%s\n", evaluator.EntryPoint)
		if err := tw.Flush(); err != nil {
			return err
		}
		writeConnections(w, "  ", evaluator.Connections, style)
		writeVariables(w, "  ", evaluator.ResolvedEnvVars, style)
		if len(evaluator.Datasets) > 0 {
			fmt.Fprintf(w, "\n  %s\n", style.heading.Render("Datasets"))
			tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
			for _, dataset := range evaluator.Datasets {
				fmt.Fprintf(tw, "    %s\t%s\t%s\n", dataset.Name, dataset.Source, mappingSummary(dataset.Mappings))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeConnections(w io.Writer, indent string, connections []libexperiment.Connection, style styles) {
	if len(connections) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s%s\n", indent, style.heading.Render("Connections"))
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, connection := range connections {
		fmt.Fprintf(tw, "%s  %s\t%s\t%s\t%s\tkey %s\n", indent,
			connection.Name, connection.ConnectionType, connection.APIBase,
			connection.DeploymentName, connection.APIKey)
	}
	tw.Flush()
}

func writeVariables(w io.Writer, indent string, variables map[string]any, style styles) {
	if len(variables) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s%s\n", indent, style.heading.Render("Variables"))
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	keys := make([]string, 0, len(variables))
	for key := range variables {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(tw, "%s  %s\t%v\n", indent, key, variables[key])
	}
	tw.Flush()
}

func mappingSummary(mappings map[string]string) string {
	if len(mappings) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(mappings))
	for key := range mappings {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	summary := ""
	for index, key := range keys {
		if index > 0 {
			summary += ", "
		}
		summary += key + "=" + mappings[key]
	}
	return summary
}

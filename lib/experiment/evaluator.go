// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"fmt"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

// Evaluator is one evaluation task within an experiment.
type Evaluator struct {
	Name       string `yaml:"name" json:"name"`
	Flow       string `yaml:"flow" json:"flow"`
	EntryPoint string `yaml:"entry_point" json:"entry_point"`

	// Connections are this evaluator's own copies of the referenced
	// table entries.
	Connections []Connection `yaml:"connections" json:"connections"`

	EnvVars  []map[string]any `yaml:"env_vars" json:"env_vars"`
	Datasets []DatasetMapping `yaml:"datasets" json:"datasets"`

	// ResolvedEnvVars is nil until ResolveVariables succeeds.
	ResolvedEnvVars map[string]any `yaml:"resolved_env_vars,omitempty" json:"resolved_env_vars,omitempty"`

	sourceConnections []Connection
}

// EvaluatorFromMap constructs an Evaluator, expanding its connection
// references against table. References come from connections_ref, or
// from connections when that key holds a list of names.
func EvaluatorFromMap(raw map[string]any, table map[string]Connection) (*Evaluator, error) {
	context := "evaluator"
	if name, ok := raw["name"].(string); ok {
		context = fmt.Sprintf("evaluator %q", name)
	}

	name, err := requiredString(raw, "name", context)
	if err != nil {
		return nil, err
	}
	flow, err := requiredString(raw, "flow", context)
	if err != nil {
		return nil, err
	}
	entryPoint, err := requiredString(raw, "entry_point", context)
	if err != nil {
		return nil, err
	}

	references, err := connectionReferences(raw, context)
	if err != nil {
		return nil, err
	}
	connections, err := connectionTable(table).expand(references, context)
	if err != nil {
		return nil, err
	}

	envVars, err := envVarList(raw, context)
	if err != nil {
		return nil, err
	}

	rawDatasets, err := mapList(raw, "datasets", context)
	if err != nil {
		return nil, err
	}
	datasets := make([]DatasetMapping, 0, len(rawDatasets))
	for _, rawDataset := range rawDatasets {
		dataset, err := DatasetFromMap(rawDataset, context)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}

	return &Evaluator{
		Name:        name,
		Flow:        flow,
		EntryPoint:  entryPoint,
		Connections: connections,
		EnvVars:     envVars,
		Datasets:    datasets,
	}, nil
}

// connectionReferences returns the reference list of an experiment or
// evaluator document: connections_ref when present, otherwise the
// connections list. At the experiment level connections is the table
// itself, so every table entry becomes an inline reference.
func connectionReferences(raw map[string]any, context string) ([]any, error) {
	if _, ok := raw["connections_ref"]; ok {
		return optionalList(raw, "connections_ref", context)
	}
	return optionalList(raw, "connections", context)
}

// ResolveVariables resolves the evaluator's connections and flattens
// its env_vars into ResolvedEnvVars. Every call starts from the
// connections as built, so calling it again re-resolves against the
// new vars. On error the evaluator is left unchanged.
func (e *Evaluator) ResolveVariables(vars placeholder.Vars) error {
	source := unresolvedConnections(&e.sourceConnections, e.Connections)
	connections, resolved, err := resolveScope(fmt.Sprintf("evaluator %q", e.Name), source, e.EnvVars, vars)
	if err != nil {
		return fmt.Errorf("resolving evaluator %q: %w", e.Name, err)
	}
	e.Connections = connections
	e.ResolvedEnvVars = resolved
	return nil
}

// Dataset returns the dataset with the given name.
func (e *Evaluator) Dataset(name string) (*DatasetMapping, bool) {
	for index := range e.Datasets {
		if e.Datasets[index].Name == name {
			return &e.Datasets[index], true
		}
	}
	return nil, false
}

// Environment returns ResolvedEnvVars as strings, suitable for export
// into a process environment. Empty before ResolveVariables.
func (e *Evaluator) Environment() map[string]string {
	return stringEnv(e.ResolvedEnvVars)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"fmt"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

// Experiment is the root of the resolved object graph.
type Experiment struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Flow        string `yaml:"flow" json:"flow"`
	EntryPoint  string `yaml:"entry_point" json:"entry_point"`

	// Connections are the experiment's own copies of the referenced
	// table entries, independent of every evaluator's copies.
	Connections []Connection `yaml:"connections" json:"connections"`

	EnvVars    []map[string]any `yaml:"env_vars" json:"env_vars"`
	Evaluators []*Evaluator     `yaml:"evaluators" json:"evaluators"`

	// ResolvedEnvVars is nil until ResolveVariables succeeds.
	ResolvedEnvVars map[string]any `yaml:"resolved_env_vars,omitempty" json:"resolved_env_vars,omitempty"`

	// ConfigDigest fingerprints the merged document this experiment
	// was built from. See [Digest].
	ConfigDigest string `yaml:"config_digest,omitempty" json:"config_digest,omitempty"`

	sourceConnections []Connection
}

// Build constructs the object graph from a merged configuration
// document. No placeholders are resolved.
func Build(config map[string]any) (*Experiment, error) {
	context := "experiment"
	if name, ok := config["name"].(string); ok {
		context = fmt.Sprintf("experiment %q", name)
	}

	if value, ok := config["connections"]; !ok || value == nil {
		return nil, &MissingFieldError{Field: "connections", Context: context}
	}
	tableEntries, err := mapList(config, "connections", context)
	if err != nil {
		return nil, err
	}
	table, err := newConnectionTable(tableEntries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}

	name, err := requiredString(config, "name", context)
	if err != nil {
		return nil, err
	}
	description, err := optionalString(config, "description", context)
	if err != nil {
		return nil, err
	}
	flow, err := requiredString(config, "flow", context)
	if err != nil {
		return nil, err
	}
	entryPoint, err := requiredString(config, "entry_point", context)
	if err != nil {
		return nil, err
	}

	references, err := connectionReferences(config, context)
	if err != nil {
		return nil, err
	}
	connections, err := table.expand(references, context)
	if err != nil {
		return nil, err
	}

	envVars, err := envVarList(config, context)
	if err != nil {
		return nil, err
	}

	rawEvaluators, err := mapList(config, "evaluators", context)
	if err != nil {
		return nil, err
	}
	evaluators := make([]*Evaluator, 0, len(rawEvaluators))
	for _, rawEvaluator := range rawEvaluators {
		evaluator, err := EvaluatorFromMap(rawEvaluator, table)
		if err != nil {
			return nil, err
		}
		evaluators = append(evaluators, evaluator)
	}

	digest, err := Digest(config)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		Name:         name,
		Description:  description,
		Flow:         flow,
		EntryPoint:   entryPoint,
		Connections:  connections,
		EnvVars:      envVars,
		Evaluators:   evaluators,
		ConfigDigest: digest,
	}, nil
}

// ResolveVariables resolves the experiment's own connections and
// env_vars. Evaluators are not touched; see [Evaluator.ResolveVariables].
// Every call starts from the connections as built. On error the
// experiment is left unchanged.
func (x *Experiment) ResolveVariables(vars placeholder.Vars) error {
	source := unresolvedConnections(&x.sourceConnections, x.Connections)
	connections, resolved, err := resolveScope(fmt.Sprintf("experiment %q", x.Name), source, x.EnvVars, vars)
	if err != nil {
		return fmt.Errorf("resolving experiment %q: %w", x.Name, err)
	}
	x.Connections = connections
	x.ResolvedEnvVars = resolved
	return nil
}

// Evaluator returns the first evaluator with the given name.
func (x *Experiment) Evaluator(name string) (*Evaluator, bool) {
	for _, evaluator := range x.Evaluators {
		if evaluator.Name == name {
			return evaluator, true
		}
	}
	return nil, false
}

// Dataset returns the named dataset of the named evaluator.
func (x *Experiment) Dataset(evaluatorName, datasetName string) (*DatasetMapping, bool) {
	evaluator, ok := x.Evaluator(evaluatorName)
	if !ok {
		return nil, false
	}
	return evaluator.Dataset(datasetName)
}

// Environment returns ResolvedEnvVars as strings, suitable for export
// into a process environment. Empty before ResolveVariables.
func (x *Experiment) Environment() map[string]string {
	return stringEnv(x.ResolvedEnvVars)
}

// Redacted returns a copy safe for display: every connection API key
// and every resolved env var whose source value held a placeholder is
// masked. The receiver is not modified.
func (x *Experiment) Redacted() *Experiment {
	clone := *x
	clone.Connections = redactConnections(x.Connections)
	clone.ResolvedEnvVars = redactResolved(x.EnvVars, x.ResolvedEnvVars)
	clone.Evaluators = make([]*Evaluator, len(x.Evaluators))
	for index, evaluator := range x.Evaluators {
		evaluatorClone := *evaluator
		evaluatorClone.Connections = redactConnections(evaluator.Connections)
		evaluatorClone.ResolvedEnvVars = redactResolved(evaluator.EnvVars, evaluator.ResolvedEnvVars)
		clone.Evaluators[index] = &evaluatorClone
	}
	return &clone
}

func redactConnections(connections []Connection) []Connection {
	redacted := make([]Connection, len(connections))
	for index, connection := range connections {
		redacted[index] = connection.Redacted()
	}
	return redacted
}

// redactResolved masks the resolved value of every key whose last
// source value was a placeholder.
func redactResolved(envVars []map[string]any, resolved map[string]any) map[string]any {
	if resolved == nil {
		return nil
	}
	fromPlaceholder := make(map[string]bool)
	for _, entry := range envVars {
		for key, value := range entry {
			text, ok := value.(string)
			fromPlaceholder[key] = ok && placeholder.HasToken(text)
		}
	}
	redacted := make(map[string]any, len(resolved))
	for key, value := range resolved {
		if fromPlaceholder[key] {
			value = redactedValue
		}
		redacted[key] = value
	}
	return redacted
}

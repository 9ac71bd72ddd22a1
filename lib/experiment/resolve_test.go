// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

func TestExperimentResolveVariables(t *testing.T) {
	experiment, err := Build(baseConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := experiment.ResolveVariables(placeholder.Vars{"AOAI_API_KEY": "secret"}); err != nil {
		t.Fatalf("ResolveVariables: %v", err)
	}
	if experiment.Connections[0].APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", experiment.Connections[0].APIKey)
	}
	if experiment.ResolvedEnvVars["AOAI_API_KEY"] != "secret" {
		t.Errorf("ResolvedEnvVars = %v, want AOAI_API_KEY=secret", experiment.ResolvedEnvVars)
	}

	// The experiment pass does not touch evaluators.
	evaluator, _ := experiment.Evaluator("answer_length")
	if evaluator.Connections[0].APIKey != "${AOAI_API_KEY}" {
		t.Errorf("evaluator APIKey = %q, want it unresolved", evaluator.Connections[0].APIKey)
	}
	if evaluator.ResolvedEnvVars != nil {
		t.Errorf("evaluator ResolvedEnvVars = %v, want nil", evaluator.ResolvedEnvVars)
	}
}

func TestResolveVariables_MissingVariable(t *testing.T) {
	experiment, err := Build(baseConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	err = experiment.ResolveVariables(placeholder.Vars{})
	var notFound *placeholder.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("ResolveVariables error = %v, want NotFoundError", err)
	}
	if notFound.Name != "AOAI_API_KEY" {
		t.Errorf("Name = %q, want AOAI_API_KEY", notFound.Name)
	}
	if !errors.Is(err, placeholder.ErrVariableNotFound) {
		t.Error("error does not match ErrVariableNotFound")
	}
	if experiment.ResolvedEnvVars != nil {
		t.Errorf("ResolvedEnvVars = %v, want nil after a failed pass", experiment.ResolvedEnvVars)
	}
}

func TestResolveVariables_EnvVarOverrideOrder(t *testing.T) {
	evaluator := &Evaluator{
		Name: "ordered",
		EnvVars: []map[string]any{
			{"K": "a"},
			{"K": "${V}"},
		},
	}

	if err := evaluator.ResolveVariables(placeholder.Vars{"V": "b"}); err != nil {
		t.Fatalf("ResolveVariables: %v", err)
	}
	if evaluator.ResolvedEnvVars["K"] != "b" {
		t.Errorf("K = %v, want b (later entry wins)", evaluator.ResolvedEnvVars["K"])
	}
}

func TestResolveVariables_NonStringPassThrough(t *testing.T) {
	evaluator := &Evaluator{
		Name: "types",
		EnvVars: []map[string]any{
			{"COUNT": 123, "ENABLED": true},
			{"RATIO": 0.5, "EMPTY": nil, "LITERAL": "plain"},
		},
	}

	if err := evaluator.ResolveVariables(placeholder.Vars{}); err != nil {
		t.Fatalf("ResolveVariables: %v", err)
	}
	want := map[string]any{
		"COUNT":   123,
		"ENABLED": true,
		"RATIO":   0.5,
		"EMPTY":   nil,
		"LITERAL": "plain",
	}
	if diff := cmp.Diff(want, evaluator.ResolvedEnvVars); diff != "" {
		t.Errorf("ResolvedEnvVars mismatch (-want +got):\n%s", diff)
	}

	env := evaluator.Environment()
	if env["COUNT"] != "123" || env["ENABLED"] != "true" || env["EMPTY"] != "" {
		t.Errorf("Environment() = %v", env)
	}
}

func TestResolveVariables_DeterministicFirstFailure(t *testing.T) {
	evaluator := &Evaluator{
		Name:    "multi",
		EnvVars: []map[string]any{{"B_KEY": "${MISSING_B}", "A_KEY": "${MISSING_A}"}},
	}

	err := evaluator.ResolveVariables(placeholder.Vars{})
	var notFound *placeholder.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if notFound.Name != "MISSING_A" {
		t.Errorf("first failure = %q, want MISSING_A (keys visited in sorted order)", notFound.Name)
	}
}

// Each owner gets its own copy of a shared named connection: resolving
// one evaluator must not change another evaluator's or the
// experiment's copy.
func TestConnectionCopiesAreIndependent(t *testing.T) {
	config := baseConfig()
	evaluators := config["evaluators"].([]any)
	second := map[string]any{
		"name":            "agent_score",
		"flow":            "evaluators/agent_score",
		"entry_point":     "agent_score:eval_agent_score",
		"connections_ref": []any{"aoai"},
	}
	config["evaluators"] = append(evaluators, second)

	experiment, err := Build(config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	first, _ := experiment.Evaluator("answer_length")
	other, _ := experiment.Evaluator("agent_score")

	if err := first.ResolveVariables(placeholder.Vars{"AOAI_API_KEY": "first-secret"}); err != nil {
		t.Fatalf("ResolveVariables: %v", err)
	}

	if first.Connections[0].APIKey != "first-secret" {
		t.Errorf("resolved evaluator APIKey = %q, want first-secret", first.Connections[0].APIKey)
	}
	if other.Connections[0].APIKey != "${AOAI_API_KEY}" {
		t.Errorf("other evaluator APIKey = %q, want it untouched", other.Connections[0].APIKey)
	}
	if experiment.Connections[0].APIKey != "${AOAI_API_KEY}" {
		t.Errorf("experiment APIKey = %q, want it untouched", experiment.Connections[0].APIKey)
	}
}

func TestConcurrentEvaluatorResolution(t *testing.T) {
	config := baseConfig()
	var evaluators []any
	for _, name := range []string{"one", "two", "three", "four"} {
		evaluators = append(evaluators, map[string]any{
			"name":            name,
			"flow":            "evaluators/" + name,
			"entry_point":     name + ":eval_" + name,
			"connections_ref": []any{"aoai"},
			"env_vars":        []any{map[string]any{"KEY": "${AOAI_API_KEY}"}},
		})
	}
	config["evaluators"] = evaluators

	experiment, err := Build(config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var group sync.WaitGroup
	for _, evaluator := range experiment.Evaluators {
		group.Add(1)
		go func() {
			defer group.Done()
			vars := placeholder.Vars{"AOAI_API_KEY": "key-" + evaluator.Name}
			if err := evaluator.ResolveVariables(vars); err != nil {
				t.Errorf("ResolveVariables(%s): %v", evaluator.Name, err)
			}
		}()
	}
	group.Wait()

	for _, evaluator := range experiment.Evaluators {
		want := "key-" + evaluator.Name
		if evaluator.Connections[0].APIKey != want {
			t.Errorf("%s APIKey = %q, want %q", evaluator.Name, evaluator.Connections[0].APIKey, want)
		}
		if evaluator.ResolvedEnvVars["KEY"] != want {
			t.Errorf("%s KEY = %v, want %q", evaluator.Name, evaluator.ResolvedEnvVars["KEY"], want)
		}
	}
}

func TestRedacted(t *testing.T) {
	experiment, err := Build(baseConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	experiment.EnvVars = append(experiment.EnvVars, map[string]any{"REGION": "westeurope"})
	if err := experiment.ResolveVariables(placeholder.Vars{"AOAI_API_KEY": "secret"}); err != nil {
		t.Fatalf("ResolveVariables: %v", err)
	}

	redacted := experiment.Redacted()
	if redacted.Connections[0].APIKey != "<redacted>" {
		t.Errorf("redacted APIKey = %q", redacted.Connections[0].APIKey)
	}
	if redacted.ResolvedEnvVars["AOAI_API_KEY"] != "<redacted>" {
		t.Errorf("redacted AOAI_API_KEY = %v", redacted.ResolvedEnvVars["AOAI_API_KEY"])
	}
	if redacted.ResolvedEnvVars["REGION"] != "westeurope" {
		t.Errorf("REGION = %v, literal values must stay visible", redacted.ResolvedEnvVars["REGION"])
	}
	if experiment.Connections[0].APIKey != "secret" {
		t.Errorf("Redacted modified the receiver: APIKey = %q", experiment.Connections[0].APIKey)
	}
}

func tokenConnection() Connection {
	return Connection{
		Name:           "aoai",
		ConnectionType: "AzureOpenAIConnection",
		APIBase:        "${BASE}",
		APIVersion:     "2024-10-01",
		APIKey:         "${KEY}",
		APIType:        "azure",
		DeploymentName: "gpt-4o",
	}
}

func TestResolveVariables_RepeatStartsFromSource(t *testing.T) {
	evaluator := &Evaluator{Name: "repeat", Connections: []Connection{tokenConnection()}}
	vars := placeholder.Vars{"BASE": "https://a.example.com/", "KEY": "${OTHER}", "OTHER": "wrong"}

	for pass := 1; pass <= 2; pass++ {
		if err := evaluator.ResolveVariables(vars); err != nil {
			t.Fatalf("pass %d: ResolveVariables: %v", pass, err)
		}
		if got := evaluator.Connections[0].APIKey; got != "${OTHER}" {
			t.Errorf("pass %d: APIKey = %q, want the value of KEY verbatim", pass, got)
		}
	}

	if err := evaluator.ResolveVariables(placeholder.Vars{"BASE": "https://b.example.com/", "KEY": "rotated"}); err != nil {
		t.Fatalf("ResolveVariables: %v", err)
	}
	if got := evaluator.Connections[0]; got.APIKey != "rotated" || got.APIBase != "https://b.example.com/" {
		t.Errorf("connection = %+v, want it re-resolved against the new vars", got)
	}
}

func TestResolveVariables_FailureLeavesConnectionsUnchanged(t *testing.T) {
	experiment := &Experiment{Name: "partial", Connections: []Connection{tokenConnection()}}

	err := experiment.ResolveVariables(placeholder.Vars{"BASE": "https://a.example.com/"})
	if !errors.Is(err, placeholder.ErrVariableNotFound) {
		t.Fatalf("ResolveVariables error = %v, want ErrVariableNotFound", err)
	}
	if got := experiment.Connections[0]; got != tokenConnection() {
		t.Errorf("connection = %+v, want it untouched after a failed pass", got)
	}

	if err := experiment.ResolveVariables(placeholder.Vars{"BASE": "https://a.example.com/", "KEY": "k"}); err != nil {
		t.Fatalf("ResolveVariables: %v", err)
	}
	if got := experiment.Connections[0]; got.APIBase != "https://a.example.com/" || got.APIKey != "k" {
		t.Errorf("connection = %+v, want it resolved", got)
	}
}

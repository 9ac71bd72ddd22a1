// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package evalregistry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/experiment"
)

// FunctionPrefix is the required prefix of every function name.
const FunctionPrefix = "eval_"

var (
	// ErrInvalidName is returned for an empty module name or a
	// function name without FunctionPrefix.
	ErrInvalidName = errors.New("invalid evaluation function name")

	// ErrDuplicate is returned when a module already has a function
	// with the same name.
	ErrDuplicate = errors.New("evaluation function already registered")
)

// Request is the input to one evaluation call: one function applied
// to one dataset.
type Request struct {
	// EvalID identifies the call, e.g. "math_coding_eval_20260301_120000".
	EvalID string

	// DataPath is the dataset file, already joined with the
	// experiment base path.
	DataPath string

	// ColumnMapping maps function inputs to dataset columns.
	ColumnMapping map[string]string

	// ReportDir is where the function may write its own artifacts.
	// May be empty.
	ReportDir string

	// Env holds the experiment's resolved variables overlaid with the
	// evaluator's, as strings.
	Env map[string]string

	// Connections are the evaluator's resolved connections.
	Connections []experiment.Connection

	Logger *slog.Logger
}

// Result is what an evaluation call returns.
type Result struct {
	// Metrics are aggregate scores keyed by metric name.
	Metrics map[string]float64

	// Rows holds per-row outputs, in dataset order. May be nil.
	Rows []map[string]any
}

// Func runs one evaluation.
type Func func(ctx context.Context, request Request) (Result, error)

// Function is a named evaluation function.
type Function struct {
	Name string
	Func Func
}

// Registry holds evaluation functions grouped by module name. The zero
// value is not usable; call New. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string][]Function
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{modules: make(map[string][]Function)}
}

// Register adds fn under module with the given function name.
func (r *Registry) Register(module, function string, fn Func) error {
	if strings.TrimSpace(module) == "" {
		return fmt.Errorf("%w: empty module name", ErrInvalidName)
	}
	if !strings.HasPrefix(strings.ToLower(function), FunctionPrefix) || len(function) == len(FunctionPrefix) {
		return fmt.Errorf("%w: %q must start with %q", ErrInvalidName, function, FunctionPrefix)
	}
	if fn == nil {
		return fmt.Errorf("registering %s.%s: nil function", module, function)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.modules[module] {
		if existing.Name == function {
			return fmt.Errorf("%w: %s.%s", ErrDuplicate, module, function)
		}
	}
	r.modules[module] = append(r.modules[module], Function{Name: function, Func: fn})
	return nil
}

// Functions returns the functions registered under module, in
// registration order. The result is a copy.
func (r *Registry) Functions(module string) []Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	functions := r.modules[module]
	result := make([]Function, len(functions))
	copy(result, functions)
	return result
}

// Modules returns every module name with at least one function, sorted.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

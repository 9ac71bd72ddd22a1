// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"fmt"
	"slices"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

// resolveScope is the resolution pass shared by experiments and
// evaluators. It resolves copies of source in order, then flattens
// envVars in list order with later keys overwriting earlier ones. Keys
// inside one mapping are visited in sorted order. String values
// containing a token are resolved; every other value is kept as
// decoded. Neither source nor envVars is modified.
func resolveScope(owner string, source []Connection, envVars []map[string]any, vars placeholder.Vars) ([]Connection, map[string]any, error) {
	connections := make([]Connection, len(source))
	for index, connection := range source {
		if err := connection.ResolveVariables(vars, owner); err != nil {
			return nil, nil, err
		}
		connections[index] = connection
	}

	resolved := make(map[string]any)
	for _, entry := range envVars {
		for _, key := range sortedKeys(entry) {
			value := entry[key]
			text, ok := value.(string)
			if !ok || !placeholder.HasToken(text) {
				resolved[key] = value
				continue
			}
			location := fmt.Sprintf("%s env_vars.%s", owner, key)
			substituted, err := placeholder.Resolve(text, vars, location)
			if err != nil {
				return nil, nil, err
			}
			resolved[key] = substituted
		}
	}
	return connections, resolved, nil
}

// unresolvedConnections returns the connections as built, recording
// them on first use so later resolution passes start from the source
// values rather than from an earlier pass's output.
func unresolvedConnections(source *[]Connection, current []Connection) []Connection {
	if *source == nil {
		*source = slices.Clone(current)
	}
	return *source
}

// stringEnv renders resolved variables as strings for export into a
// process environment. nil and non-string values use fmt.Sprint, with
// nil exported as the empty string.
func stringEnv(resolved map[string]any) map[string]string {
	env := make(map[string]string, len(resolved))
	for key, value := range resolved {
		switch typed := value.(type) {
		case nil:
			env[key] = ""
		case string:
			env[key] = typed
		default:
			env[key] = fmt.Sprint(typed)
		}
	}
	return env
}

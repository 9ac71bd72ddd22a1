// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"fmt"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

// Connection describes an endpoint and its credentials. Every field is
// required in the source document.
type Connection struct {
	Name           string `yaml:"name" json:"name"`
	ConnectionType string `yaml:"connection_type" json:"connection_type"`
	APIBase        string `yaml:"api_base" json:"api_base"`
	APIVersion     string `yaml:"api_version" json:"api_version"`
	APIKey         string `yaml:"api_key" json:"api_key"`
	APIType        string `yaml:"api_type" json:"api_type"`
	DeploymentName string `yaml:"deployment_name" json:"deployment_name"`
}

// connectionField pairs a document key with the struct field it fills.
type connectionField struct {
	key   string
	value *string
}

// fields lists the connection's fields in declaration order. Both
// construction and resolution walk this list, so the first reported
// error is always for the earliest field.
func (c *Connection) fields() []connectionField {
	return []connectionField{
		{"name", &c.Name},
		{"connection_type", &c.ConnectionType},
		{"api_base", &c.APIBase},
		{"api_version", &c.APIVersion},
		{"api_key", &c.APIKey},
		{"api_type", &c.APIType},
		{"deployment_name", &c.DeploymentName},
	}
}

// ConnectionFromMap constructs a Connection from one entry of the
// connections table.
func ConnectionFromMap(raw map[string]any) (Connection, error) {
	context := "connection"
	if name, ok := raw["name"].(string); ok {
		context = fmt.Sprintf("connection %q", name)
	}

	var connection Connection
	for _, field := range connection.fields() {
		value, err := requiredString(raw, field.key, context)
		if err != nil {
			return Connection{}, err
		}
		*field.value = value
	}
	return connection, nil
}

// Clone returns an independent copy. Connection holds only strings,
// so a value copy is deep.
func (c Connection) Clone() Connection {
	return c
}

// ResolveVariables substitutes ${VAR} tokens in every field, in
// declaration order, stopping at the first unresolved variable. owner
// prefixes the error location (e.g. `evaluator "answer_length"`).
func (c *Connection) ResolveVariables(vars placeholder.Vars, owner string) error {
	for _, field := range c.fields() {
		location := fmt.Sprintf("connection %q field %s", c.Name, field.key)
		if owner != "" {
			location = owner + " " + location
		}
		resolved, err := placeholder.Resolve(*field.value, vars, location)
		if err != nil {
			return err
		}
		*field.value = resolved
	}
	return nil
}

// Redacted returns a copy with the API key masked, for display.
func (c Connection) Redacted() Connection {
	if c.APIKey != "" {
		c.APIKey = redactedValue
	}
	return c
}

const redactedValue = "<redacted>"

// connectionTable indexes the top-level connections list by name.
type connectionTable map[string]Connection

// newConnectionTable builds the table. Duplicate names are rejected:
// a reference must identify exactly one entry.
func newConnectionTable(entries []map[string]any) (connectionTable, error) {
	table := make(connectionTable, len(entries))
	for index, entry := range entries {
		connection, err := ConnectionFromMap(entry)
		if err != nil {
			return nil, fmt.Errorf("connections[%d]: %w", index, err)
		}
		if _, exists := table[connection.Name]; exists {
			return nil, fmt.Errorf("connections[%d]: duplicate connection name %q: %w", index, connection.Name, ErrInvalidField)
		}
		table[connection.Name] = connection
	}
	return table, nil
}

// expand turns a list of references into owned connection copies. A
// string element names a table entry. A mapping element is an inline
// connection definition.
func (table connectionTable) expand(references []any, owner string) ([]Connection, error) {
	connections := make([]Connection, 0, len(references))
	for index, reference := range references {
		switch typed := reference.(type) {
		case string:
			connection, ok := table[typed]
			if !ok {
				return nil, &ConnectionNotFoundError{Name: typed, Owner: owner}
			}
			connections = append(connections, connection.Clone())
		case map[string]any:
			connection, err := ConnectionFromMap(typed)
			if err != nil {
				return nil, fmt.Errorf("%s: inline connection %d: %w", owner, index, err)
			}
			connections = append(connections, connection)
		default:
			return nil, fmt.Errorf("%s: connection reference %d must be a name or a mapping, got %T: %w",
				owner, index, reference, ErrInvalidField)
		}
	}
	return connections, nil
}

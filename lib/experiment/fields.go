// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"fmt"
	"sort"
)

// requiredString reads a scalar field and returns its text form.
// Numbers and booleans are formatted with fmt.Sprint: YAML turns an
// unquoted api_version like 2024 into an int, and the field is still
// meant to be text.
func requiredString(raw map[string]any, field, context string) (string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return "", &MissingFieldError{Field: field, Context: context}
	}
	return scalarString(value, field, context)
}

// optionalString is requiredString with "" for an absent or null field.
func optionalString(raw map[string]any, field, context string) (string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return "", nil
	}
	return scalarString(value, field, context)
}

// scalarString renders a decoded scalar as field text. A YAML float
// arrives as a float64 and is rendered in its shortest form, so an
// unquoted api_version: 2024.10 reads as "2024.1". Values whose exact
// spelling matters must be quoted in the document.
func scalarString(value any, field, context string) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case map[string]any, []any:
		return "", fmt.Errorf("%s: field %q must be a scalar, got %T: %w", context, field, value, ErrInvalidField)
	default:
		return fmt.Sprint(typed), nil
	}
}

// optionalList reads a list field. Absent or null yields nil.
func optionalList(raw map[string]any, field, context string) ([]any, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: field %q must be a list, got %T: %w", context, field, value, ErrInvalidField)
	}
	return list, nil
}

// mapList reads a list whose elements must all be maps.
func mapList(raw map[string]any, field, context string) ([]map[string]any, error) {
	list, err := optionalList(raw, field, context)
	if err != nil {
		return nil, err
	}
	result := make([]map[string]any, 0, len(list))
	for index, element := range list {
		entry, ok := element.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: %s[%d] must be a mapping, got %T: %w", context, field, index, element, ErrInvalidField)
		}
		result = append(result, entry)
	}
	return result, nil
}

// envVarList reads the env_vars field: an ordered list of mappings
// whose values stay in their decoded types.
func envVarList(raw map[string]any, context string) ([]map[string]any, error) {
	entries, err := mapList(raw, "env_vars", context)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []map[string]any{}, nil
	}
	return entries, nil
}

// sortedKeys returns the keys of a map in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

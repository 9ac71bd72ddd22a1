// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"fmt"
	"maps"
)

// DatasetMapping names a dataset file and maps evaluator inputs onto
// its columns. Datasets carry no placeholders and are never resolved.
type DatasetMapping struct {
	Name string `yaml:"name" json:"name"`

	// Source is the dataset path, relative to the experiment base path.
	Source string `yaml:"source" json:"source"`

	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Mappings maps an evaluator input name to a column expression,
	// either a bare column name or ${data.column}. Never nil.
	Mappings map[string]string `yaml:"mappings" json:"mappings"`
}

// DatasetFromMap constructs a DatasetMapping. name and source are
// required; description and mappings are optional.
func DatasetFromMap(raw map[string]any, owner string) (DatasetMapping, error) {
	context := "dataset"
	if name, ok := raw["name"].(string); ok {
		context = fmt.Sprintf("dataset %q", name)
	}
	if owner != "" {
		context = owner + " " + context
	}

	name, err := requiredString(raw, "name", context)
	if err != nil {
		return DatasetMapping{}, err
	}
	source, err := requiredString(raw, "source", context)
	if err != nil {
		return DatasetMapping{}, err
	}
	description, err := optionalString(raw, "description", context)
	if err != nil {
		return DatasetMapping{}, err
	}

	mappings := map[string]string{}
	if value, ok := raw["mappings"]; ok && value != nil {
		rawMappings, ok := value.(map[string]any)
		if !ok {
			return DatasetMapping{}, fmt.Errorf("%s: field %q must be a mapping, got %T: %w", context, "mappings", value, ErrInvalidField)
		}
		for key, mapped := range rawMappings {
			text, err := scalarString(mapped, "mappings."+key, context)
			if err != nil {
				return DatasetMapping{}, err
			}
			mappings[key] = text
		}
	}

	return DatasetMapping{
		Name:        name,
		Source:      source,
		Description: description,
		Mappings:    mappings,
	}, nil
}

// Equal reports structural equality.
func (d DatasetMapping) Equal(other DatasetMapping) bool {
	return d.Name == other.Name &&
		d.Source == other.Source &&
		d.Description == other.Description &&
		maps.Equal(d.Mappings, other.Mappings)
}

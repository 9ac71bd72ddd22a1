// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// decodeDocument decodes an experiment document into a generic map.
// The format follows the file extension: .json and .jsonc are JSON
// with comments and trailing commas, anything else is YAML. An empty
// document decodes to an empty map.
func decodeDocument(path string, data []byte) (map[string]any, error) {
	var (
		document any
		err      error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		document, err = decodeJSONC(data)
	default:
		document, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if document == nil {
		return map[string]any{}, nil
	}
	root, ok := normalize(document).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing %s: top level must be a mapping, got %T", path, document)
	}
	return root, nil
}

func decodeYAML(data []byte) (any, error) {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}
	return document, nil
}

func decodeJSONC(data []byte) (any, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, err
	}
	return document, nil
}

// normalize converts decoder-specific representations into the shapes
// the merger and builder expect: map[string]any for every mapping,
// int64 or float64 for JSON numbers, and text for timestamps (an
// unquoted api_version such as 2024-02-01 is a date to YAML).
func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, element := range typed {
			typed[key] = normalize(element)
		}
		return typed
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, element := range typed {
			converted[fmt.Sprint(key)] = normalize(element)
		}
		return converted
	case []any:
		for index, element := range typed {
			typed[index] = normalize(element)
		}
		return typed
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer
		}
		if float, err := typed.Float64(); err == nil {
			return float
		}
		return typed.String()
	case time.Time:
		if typed.Equal(typed.Truncate(24*time.Hour)) && typed.Location() == time.UTC {
			return typed.Format(time.DateOnly)
		}
		return typed.Format(time.RFC3339Nano)
	default:
		return value
	}
}

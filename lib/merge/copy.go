// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merge

// Copy returns a deep copy of a decoded document value. Mappings and
// sequences are copied recursively; scalars are returned as-is since
// they are immutable values.
func Copy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return copyMap(typed)
	case []any:
		return copySlice(typed)
	default:
		return value
	}
}

// CopyMap returns a deep copy of a mapping. A nil mapping copies to nil.
func CopyMap(value map[string]any) map[string]any {
	return copyMap(value)
}

func copyMap(value map[string]any) map[string]any {
	if value == nil {
		return nil
	}
	result := make(map[string]any, len(value))
	for key, element := range value {
		result[key] = Copy(element)
	}
	return result
}

func copySlice(value []any) []any {
	if value == nil {
		return nil
	}
	result := make([]any, len(value))
	for index, element := range value {
		result[index] = Copy(element)
	}
	return result
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merge

// NameKey is the mapping key that identifies elements of a sequence for
// merge-by-name.
const NameKey = "name"

// Merge merges override on top of base and returns a new document.
//
// Merge rules, applied per key of override:
//   - Key absent from base, or the two values have different shapes:
//     override wins outright
//   - Both mappings: merged recursively with the same rules
//   - Both sequences, and the first base element is a mapping with a
//     "name" key: merged by name (see [mergeNamed])
//   - Both sequences otherwise: override replaces base wholesale
//
// Keys present only in base are kept. Neither argument is modified.
func Merge(base, override map[string]any) map[string]any {
	result := copyMap(base)
	if result == nil {
		result = make(map[string]any, len(override))
	}

	for key, overrideValue := range override {
		baseValue, exists := result[key]
		if !exists {
			result[key] = Copy(overrideValue)
			continue
		}

		switch baseTyped := baseValue.(type) {
		case map[string]any:
			if overrideMap, ok := overrideValue.(map[string]any); ok {
				result[key] = Merge(baseTyped, overrideMap)
				continue
			}
		case []any:
			if overrideList, ok := overrideValue.([]any); ok {
				if isNamedList(baseTyped) {
					result[key] = mergeNamed(baseTyped, overrideList)
				} else {
					result[key] = copySlice(overrideList)
				}
				continue
			}
		}

		result[key] = Copy(overrideValue)
	}

	return result
}

// isNamedList reports whether list qualifies for merge-by-name: it is
// non-empty and its first element is a mapping carrying a name.
func isNamedList(list []any) bool {
	if len(list) == 0 {
		return false
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return false
	}
	_, hasName := first[NameKey]
	return hasName
}

// mergeNamed reconciles two sequences of named mappings. The result
// starts as a copy of base. Each override element whose name matches an
// element already in the result is deep-merged into that position; any
// other override element is appended, so new entries keep their
// relative override order after all base entries. Base elements that no
// override element names are left where they were.
//
// Override elements are applied in order, so two override entries with
// the same name are both merged into the same position, the later one
// winning on conflicting keys.
func mergeNamed(base, override []any) []any {
	result := copySlice(base)

	for _, overrideElement := range override {
		overrideMap, ok := overrideElement.(map[string]any)
		if !ok {
			result = append(result, Copy(overrideElement))
			continue
		}
		name, hasName := overrideMap[NameKey]
		if !hasName {
			result = append(result, Copy(overrideElement))
			continue
		}

		index := indexOfName(result, name)
		if index < 0 {
			result = append(result, copyMap(overrideMap))
			continue
		}
		// indexOfName only matches mappings.
		result[index] = Merge(result[index].(map[string]any), overrideMap)
	}

	return result
}

// indexOfName returns the position of the first mapping in list whose
// name equals name, or -1.
func indexOfName(list []any, name any) int {
	for index, element := range list {
		elementMap, ok := element.(map[string]any)
		if !ok {
			continue
		}
		elementName, hasName := elementMap[NameKey]
		if hasName && scalarEqual(elementName, name) {
			return index
		}
	}
	return -1
}

// scalarEqual compares two names. Names are normally strings, but a
// YAML name such as 2024 decodes as an int; comparing through any is
// safe for every comparable scalar and false for anything else.
func scalarEqual(a, b any) bool {
	switch a.(type) {
	case map[string]any, []any:
		return false
	}
	switch b.(type) {
	case map[string]any, []any:
		return false
	}
	return a == b
}

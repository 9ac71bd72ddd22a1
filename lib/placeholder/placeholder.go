// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package placeholder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrVariableNotFound is matched (via errors.Is) by every [NotFoundError].
var ErrVariableNotFound = errors.New("variable not found")

// NotFoundError reports a token whose name is missing from the snapshot.
type NotFoundError struct {
	// Name is the variable named inside ${...}.
	Name string

	// Location describes where the token appeared, e.g.
	// `connection "aoai".api_key` or `env_vars.OPENAI_KEY`. May be empty.
	Location string
}

func (e *NotFoundError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("environment variable %s not found", e.Name)
	}
	return fmt.Sprintf("environment variable %s not found (referenced by %s)", e.Name, e.Location)
}

// Is reports whether target is ErrVariableNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrVariableNotFound
}

// tokenPattern matches the first ${...} in a value. The capture is
// non-greedy so "${A}${B}" names A, not "A}${B".
var tokenPattern = regexp.MustCompile(`\$\{(.*?)\}`)

// HasToken reports whether value contains a complete ${...} token.
func HasToken(value string) bool {
	if !strings.Contains(value, "${") {
		return false
	}
	return tokenPattern.MatchString(value)
}

// TokenName returns the variable name of the first token in value, or
// ("", false) when value has none.
func TokenName(value string) (string, bool) {
	match := tokenPattern.FindStringSubmatch(value)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Resolve substitutes the first ${NAME} token in value. With no token the
// value is returned unchanged. With a token, the result is vars[NAME] in
// its entirety. location is copied into the error when NAME is missing.
func Resolve(value string, vars Vars, location string) (string, error) {
	name, ok := TokenName(value)
	if !ok {
		return value, nil
	}
	resolved, ok := vars[name]
	if !ok {
		return "", &NotFoundError{Name: name, Location: location}
	}
	return resolved, nil
}

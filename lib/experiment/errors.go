// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExperimentFile is returned when the experiment file name
	// lacks a name part or an extension.
	ErrInvalidExperimentFile = errors.New("invalid experiment file")

	// ErrExperimentFileNotFound is returned when the base experiment
	// file does not exist. A missing overlay is not an error.
	ErrExperimentFileNotFound = errors.New("experiment file not found")

	// ErrConnectionNotFound is matched by every [ConnectionNotFoundError].
	ErrConnectionNotFound = errors.New("connection not found")

	// ErrMissingField is matched by every [MissingFieldError].
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a field holds a value of the
	// wrong shape, such as a list where a string is expected.
	ErrInvalidField = errors.New("invalid field")
)

// ConnectionNotFoundError reports a connection reference with no entry
// in the connections table.
type ConnectionNotFoundError struct {
	// Name is the reference that did not resolve.
	Name string

	// Owner describes the referencing object, e.g. `experiment "math"`
	// or `evaluator "answer_length"`.
	Owner string
}

func (e *ConnectionNotFoundError) Error() string {
	return fmt.Sprintf("connection %q referenced by %s not found in connections table", e.Name, e.Owner)
}

// Is reports whether target is ErrConnectionNotFound.
func (e *ConnectionNotFoundError) Is(target error) bool {
	return target == ErrConnectionNotFound
}

// MissingFieldError reports a required key that is absent or null.
type MissingFieldError struct {
	Field   string
	Context string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Context, e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

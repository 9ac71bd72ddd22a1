// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

var (
	// ErrMissingColumn is returned when a mapped column is absent from
	// a row.
	ErrMissingColumn = errors.New("column not found in dataset row")

	// ErrUnsupportedReference is returned for a mapping expression
	// that references something other than dataset columns.
	ErrUnsupportedReference = errors.New("unsupported column reference")
)

// Row is one dataset record.
type Row map[string]any

// maxLineSize bounds a single JSONL record.
const maxLineSize = 16 << 20

// Read decodes JSON Lines from r. Blank lines are skipped. Every
// non-blank line must be a JSON object.
func Read(r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var rows []Row
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var row Row
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if row == nil {
			return nil, fmt.Errorf("line %d: record must be a JSON object", lineNumber)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return rows, nil
}

// ReadFile reads a JSON Lines dataset from disk.
func ReadFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	rows, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Column returns the dataset column named by a mapping expression.
func Column(expression string) (string, error) {
	if !placeholder.HasToken(expression) {
		return expression, nil
	}
	name, _ := placeholder.TokenName(expression)
	source, column, found := strings.Cut(name, ".")
	if !found || source != "data" || column == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedReference, expression)
	}
	return column, nil
}

// Apply returns a copy of row with every mapping target set to the
// value of its column. Unmapped columns are carried over unchanged.
func Apply(row Row, mapping map[string]string) (Row, error) {
	mapped := make(Row, len(row)+len(mapping))
	for key, value := range row {
		mapped[key] = value
	}
	for target, expression := range mapping {
		column, err := Column(expression)
		if err != nil {
			return nil, fmt.Errorf("mapping %q: %w", target, err)
		}
		value, ok := row[column]
		if !ok {
			return nil, fmt.Errorf("mapping %q: %w: %q", target, ErrMissingColumn, column)
		}
		mapped[target] = value
	}
	return mapped, nil
}

// Load reads a dataset file and applies mapping to every row.
func Load(path string, mapping map[string]string) ([]Row, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	for index, row := range rows {
		mapped, err := Apply(row, mapping)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, index+1, err)
		}
		rows[index] = mapped
	}
	return rows, nil
}

// String returns the text form of a column value: strings as is,
// anything else as compact JSON.
func String(value any) string {
	if text, ok := value.(string); ok {
		return text
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}

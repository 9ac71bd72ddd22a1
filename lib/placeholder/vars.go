// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package placeholder

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Vars is a read-only variable snapshot. Resolution code never mutates
// a Vars it was handed.
type Vars map[string]string

// Environ snapshots the process environment.
func Environ() Vars {
	return FromEnviron(os.Environ())
}

// FromEnviron builds a snapshot from "KEY=value" entries in the format
// returned by os.Environ. Entries without "=" are ignored. Later entries
// win, matching how the process environment treats duplicates.
func FromEnviron(environ []string) Vars {
	vars := make(Vars, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = value
	}
	return vars
}

// With returns a new snapshot containing vars overlaid with overrides.
// Neither input is modified.
func (vars Vars) With(overrides map[string]string) Vars {
	merged := make(Vars, len(vars)+len(overrides))
	maps.Copy(merged, vars)
	maps.Copy(merged, overrides)
	return merged
}

// LoadDotenv reads a dotenv file and returns base with the file's
// entries added underneath it: a key already present in base keeps its
// value. The process environment is not touched. A missing file is not
// an error when optional is true.
func LoadDotenv(base Vars, path string, optional bool) (Vars, error) {
	entries, err := godotenv.Read(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("reading dotenv file %s: %w", path, err)
	}

	merged := make(Vars, len(base)+len(entries))
	maps.Copy(merged, entries)
	maps.Copy(merged, base)
	return merged, nil
}

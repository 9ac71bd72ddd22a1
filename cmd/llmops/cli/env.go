// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

// DefaultDotenv is read, when present, if no --dotenv flag is given.
const DefaultDotenv = ".env"

// Vars snapshots the process environment and adds the entries of the
// dotenv file at path underneath it. An empty path reads DefaultDotenv
// if it exists; an explicit path must exist.
func Vars(path string) (placeholder.Vars, error) {
	optional := path == ""
	if optional {
		path = DefaultDotenv
	}
	return placeholder.LoadDotenv(placeholder.Environ(), path, optional)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

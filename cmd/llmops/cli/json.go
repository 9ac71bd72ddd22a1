// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
)

// JSONOutput is embedded in a params struct to give the command a
// --json flag.
type JSONOutput struct {
	JSON bool `json:"-" flag:"json" desc:"print the result as JSON"`
}

// EmitJSON prints value as indented JSON on Stdout when --json was
// given and reports whether it did. When it returns false the caller
// prints its text form.
func (o JSONOutput) EmitJSON(value any) (bool, error) {
	if !o.JSON {
		return false, nil
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return true, fmt.Errorf("encoding JSON output: %w", err)
	}
	_, err = Stdout.Write(append(data, '\n'))
	return true, err
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		JSONOutput
		Format  string   `flag:"format,f" default:"json"`
		Export  bool     `flag:"export-env" default:"true"`
		Names   []string `flag:"name" default:"a,b"`
		Ignored string
	}
	var bound params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&bound, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if bound.Format != "json" || !bound.Export || bound.JSON {
		t.Errorf("defaults = %+v", bound)
	}
	if len(bound.Names) != 2 || bound.Names[0] != "a" || bound.Names[1] != "b" {
		t.Errorf("Names = %v, want [a b]", bound.Names)
	}
	if flagSet.Lookup("ignored") != nil {
		t.Error("untagged field was bound")
	}
	if flag := flagSet.ShorthandLookup("f"); flag == nil || flag.Name != "format" {
		t.Errorf("shorthand -f = %v, want --format", flag)
	}
	if flagSet.Lookup("json") == nil {
		t.Error("--json from the embedded JSONOutput was not bound")
	}
}

func TestBindFlags_Errors(t *testing.T) {
	type badDefault struct {
		Enabled bool `flag:"enabled" default:"maybe"`
	}
	type unsupported struct {
		Count int `flag:"count"`
	}
	type unexportedField struct {
		name string `flag:"name"`
	}

	for name, params := range map[string]any{
		"not a pointer":       badDefault{},
		"bad default":         &badDefault{},
		"unsupported":         &unsupported{},
		"unexported field":    &unexportedField{},
	} {
		if err := BindFlags(params, pflag.NewFlagSet(name, pflag.ContinueOnError)); err == nil {
			t.Errorf("%s: BindFlags succeeded, want an error", name)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	if level, err := ParseLogLevel(""); err != nil || level.String() != "INFO" {
		t.Errorf("ParseLogLevel(\"\") = %v, %v", level, err)
	}
	if level, err := ParseLogLevel("debug"); err != nil || level.String() != "DEBUG" {
		t.Errorf("ParseLogLevel(debug) = %v, %v", level, err)
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Error("ParseLogLevel(loud) succeeded")
	}
}

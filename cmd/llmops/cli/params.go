// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// BindFlags registers a flag on flags for every field of the struct
// params points to that carries a flag tag, including fields promoted
// from embedded structs such as [JSONOutput]:
//
//	type runParams struct {
//	    cli.JSONOutput
//	    ReportDir  string   `flag:"report-dir" desc:"where reports go" default:"reports"`
//	    Evaluators []string `flag:"evaluator,e" desc:"evaluators to run"`
//	}
//
// The flag tag holds the long name and an optional one-letter
// shorthand. Field types are string, bool and []string; a []string
// default is comma-separated. Tagged fields must be exported.
func BindFlags(params any, flags *pflag.FlagSet) error {
	pointer := reflect.ValueOf(params)
	if pointer.Kind() != reflect.Pointer || pointer.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must point to a struct, got %T", params)
	}
	structValue := pointer.Elem()

	for _, field := range reflect.VisibleFields(structValue.Type()) {
		tag, ok := field.Tag.Lookup("flag")
		if !ok || field.Anonymous {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		definition := flagDefinition{
			name:         name,
			shorthand:    shorthand,
			usage:        field.Tag.Get("desc"),
			defaultValue: field.Tag.Get("default"),
		}

		target := structValue.FieldByIndex(field.Index).Addr()
		if !target.CanInterface() {
			return fmt.Errorf("field %s: unexported fields cannot be flags", field.Name)
		}
		if err := definition.bind(flags, target.Interface()); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// flagDefinition is the parsed tag set of one params field.
type flagDefinition struct {
	name         string
	shorthand    string
	usage        string
	defaultValue string
}

func (d flagDefinition) bind(flags *pflag.FlagSet, target any) error {
	switch target := target.(type) {
	case *string:
		flags.StringVarP(target, d.name, d.shorthand, d.defaultValue, d.usage)
	case *bool:
		enabled := false
		if d.defaultValue != "" {
			parsed, err := strconv.ParseBool(d.defaultValue)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", d.name, err)
			}
			enabled = parsed
		}
		flags.BoolVarP(target, d.name, d.shorthand, enabled, d.usage)
	case *[]string:
		var values []string
		if d.defaultValue != "" {
			values = strings.Split(d.defaultValue, ",")
		}
		flags.StringSliceVarP(target, d.name, d.shorthand, values, d.usage)
	default:
		return fmt.Errorf("--%s: unsupported flag type %T", d.name, target)
	}
	return nil
}

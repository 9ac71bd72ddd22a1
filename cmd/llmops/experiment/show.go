// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"gopkg.in/yaml.v3"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
	libexperiment "github.com/nstijepovic/genaiops-azureaisdk-template/lib/experiment"
)

type showParams struct {
	cli.JSONOutput
	SourceParams
	Merged bool `flag:"merged" desc:"print the merged document before resolution, as YAML"`
	Reveal bool `flag:"reveal" desc:"print API keys and placeholder-derived values"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show a resolved experiment",
		Description: `Load an experiment, merge its environment overlay, resolve placeholders
for the experiment and every evaluator, and print the result. Evaluator
placeholders also see the experiment's own env_vars.

API keys and values that came from placeholders are replaced with
<redacted> unless --reveal is given.

Use --merged to print the merged document exactly as the loader sees it
before any placeholder is resolved. On a terminal the YAML is
syntax-highlighted.`,
		Usage: "llmops experiment show [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the pr experiment",
				Command:     "llmops experiment show --base-path math_coding --env pr",
			},
			{
				Description: "Print the merged dev document",
				Command:     "llmops experiment show --env dev --merged",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if params.Merged {
				return showMerged(cli.Stdout, params.options())
			}

			vars, err := cli.Vars(params.Dotenv)
			if err != nil {
				return err
			}
			options := params.options()
			options.Vars = vars
			options.Logger = logger
			loaded, err := libexperiment.Load(options)
			if err != nil {
				return err
			}
			evaluatorVars := vars.With(loaded.Environment())
			for _, evaluator := range loaded.Evaluators {
				if err := evaluator.ResolveVariables(evaluatorVars); err != nil {
					return err
				}
			}

			if !params.Reveal {
				loaded = loaded.Redacted()
			}
			if done, err := params.EmitJSON(loaded); done {
				return err
			}
			return writeExperiment(cli.Stdout, loaded, newStyles(cli.Stdout))
		},
	}
}

// showMerged prints the merged, unresolved document as YAML.
func showMerged(w io.Writer, options libexperiment.Options) error {
	basePath, overlayPath, err := options.Paths()
	if err != nil {
		return err
	}
	config, err := libexperiment.LoadConfig(basePath, overlayPath)
	if err != nil {
		return err
	}

	var buffer strings.Builder
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("encoding merged document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoding merged document: %w", err)
	}

	if !cli.IsTerminal(w) {
		_, err := io.WriteString(w, buffer.String())
		return err
	}
	if err := quick.Highlight(w, buffer.String(), "yaml", "terminal256", "monokai"); err != nil {
		_, err = io.WriteString(w, buffer.String())
		return err
	}
	return nil
}

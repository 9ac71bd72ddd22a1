// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Stdout receives command results. Stderr receives help text and issue
// listings. Tests replace both.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Command is a node of the llmops command tree: a group that dispatches
// to Subcommands, or a leaf with a Run function.
type Command struct {
	Name string

	// Summary is the one-line text in the parent's command list.
	Summary string

	// Description is the help text of the command itself. Summary is
	// used when empty.
	Description string

	// Usage replaces the synthesized usage line in help output.
	Usage string

	Examples []Example

	// Params returns a pointer to the command's flag struct (see
	// [BindFlags]). It must return the same pointer on every call: Run
	// reads the parsed values through it.
	Params func() any

	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	Run func(ctx context.Context, args []string, logger *slog.Logger) error
}

// Example is one entry of the Examples section of help output.
type Example struct {
	Description string
	Command     string
}

// Execute resolves args against the tree rooted at c and runs the
// selected command. A nil logger discards diagnostics.
func (c *Command) Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return c.execute(ctx, []string{c.Name}, args, logger)
}

// execute runs c with path holding the command names from the root
// down to c.
func (c *Command) execute(ctx context.Context, path, args []string, logger *slog.Logger) error {
	name := strings.Join(path, " ")
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.writeHelp(Stderr, name)
		return nil
	}

	if len(c.Subcommands) > 0 {
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			sub := c.subcommand(args[0])
			if sub == nil {
				return unknownCommandError(args[0], c.Subcommands, name)
			}
			return sub.execute(ctx, append(path[:len(path):len(path)], sub.Name), args[1:], logger)
		}
		if c.Run == nil {
			c.writeHelp(Stderr, name)
			if len(args) == 0 {
				return fmt.Errorf("%s: subcommand required", name)
			}
			return fmt.Errorf("%s: subcommand required (got flag %q)", name, args[0])
		}
	}

	if c.Params != nil {
		flags := c.flags()
		if err := flags.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				c.writeHelp(Stderr, name)
				return nil
			}
			return flagError(err, flags, name)
		}
		args = flags.Args()
	}

	if c.Run == nil {
		return fmt.Errorf("%s: no action defined", name)
	}
	return c.Run(ctx, args, logger.With("command", logPath(path)))
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// flags binds Params to a fresh flag set. A params struct that does not
// bind is a programming error and panics.
func (c *Command) flags() *pflag.FlagSet {
	flags := pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	if err := BindFlags(c.Params(), flags); err != nil {
		panic(fmt.Sprintf("cli: command %q: %v", c.Name, err))
	}
	return flags
}

func unknownCommandError(input string, commands []*Command, name string) error {
	if suggestion := suggestCommand(input, commands); suggestion != "" {
		return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.", input, suggestion, name)
	}
	return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", input, name)
}

func flagError(err error, flags *pflag.FlagSet, name string) error {
	if suggestion := suggestFlag(err, flags); suggestion != "" {
		return fmt.Errorf("%v (did you mean --%s?)\n\nRun '%s --help' for usage.", err, suggestion, name)
	}
	return fmt.Errorf("%v\n\nRun '%s --help' for usage.", err, name)
}

// writeHelp writes help for c. name is the full command path, e.g.
// "llmops experiment show".
func (c *Command) writeHelp(w io.Writer, name string) {
	about := c.Description
	if about == "" {
		about = c.Summary
	}
	if about != "" {
		fmt.Fprintf(w, "%s\n\n", about)
	}

	usage := c.Usage
	switch {
	case usage != "":
	case len(c.Subcommands) > 0:
		usage = name + " <command> [flags]"
	default:
		usage = name + " [flags]"
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", usage)

	if len(c.Subcommands) > 0 {
		fmt.Fprintln(w, "\nCommands:")
		table := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if c.Params != nil {
		if flagUsage := c.flags().FlagUsages(); flagUsage != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", flagUsage)
		}
	}

	for index, example := range c.Examples {
		if index == 0 {
			fmt.Fprintln(w, "\nExamples:")
		}
		if example.Description != "" {
			fmt.Fprintf(w, "  # %s\n", example.Description)
		}
		fmt.Fprintf(w, "  %s\n", example.Command)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for details on a command.\n", name)
	}
}

// logPath is the command path below the root joined with "/", the
// value of the "command" log attribute (e.g. "experiment/show").
func logPath(path []string) string {
	if len(path) == 1 {
		return path[0]
	}
	return strings.Join(path[1:], "/")
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework of llmops.
//
// A [Command] either groups subcommands or runs. Its flags come from a
// params struct with flag, desc and default tags (see [BindFlags]);
// embedding [JSONOutput] adds --json. The tree is assembled in
// cmd/llmops/commands.go and run with [Command.Execute], which routes
// subcommands, parses flags and prints help. A mistyped command or
// long flag gets a "did you mean" hint for the nearest name within an
// edit distance of three.
//
// Results go to [Stdout] and help to [Stderr]. Diagnostics go through
// the *slog.Logger handed to Run, built by [NewCommandLogger].
package cli

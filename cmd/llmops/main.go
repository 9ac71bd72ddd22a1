// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// llmops loads layered experiment definitions and runs their
// evaluators.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nstijepovic/genaiops-azureaisdk-template/cmd/llmops/cli"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like experiment
		// validate) return an ExitError with the desired exit code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	level, err := cli.ParseLogLevel(os.Getenv(cli.LogLevelVariable))
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rootCommand().Execute(ctx, os.Args[1:], logger)
}

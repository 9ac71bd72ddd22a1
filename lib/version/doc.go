// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version of the llmops binary.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected at
// build time with -ldflags -X:
//
//	go build -ldflags "-X github.com/nstijepovic/genaiops-azureaisdk-template/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/llmops
//
// Development builds and test runs see the defaults ("unknown" and
// "0.1.0-dev"). Reports record [Info] so a run can be traced to the
// binary that produced it.
package version

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/merge"
	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/placeholder"
)

// DefaultFilename is the base experiment file used when
// Options.Filename is empty.
const DefaultFilename = "experiment.yaml"

// Options configures [Load].
type Options struct {
	// Filename is the base experiment file name, relative to BasePath.
	// Defaults to DefaultFilename.
	Filename string

	// BasePath is the directory holding the experiment files. Defaults
	// to the current directory.
	BasePath string

	// Environment selects the overlay file. Empty means no overlay.
	Environment string

	// Vars is the variable snapshot for placeholder resolution. nil
	// means a snapshot of the process environment taken by Load.
	Vars placeholder.Vars

	// Logger receives debug messages about the files read. nil
	// discards them.
	Logger *slog.Logger
}

// Load reads the base experiment file and its optional environment
// overlay, merges them, builds the object graph, and resolves
// experiment-level placeholders. Evaluators are returned unresolved.
func Load(options Options) (*Experiment, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	basePath, overlayPath, err := options.Paths()
	if err != nil {
		return nil, err
	}

	config, err := loadConfig(basePath, overlayPath, logger)
	if err != nil {
		return nil, err
	}

	experiment, err := Build(config)
	if err != nil {
		return nil, fmt.Errorf("building experiment from %s: %w", basePath, err)
	}

	vars := options.Vars
	if vars == nil {
		vars = placeholder.Environ()
	}
	if err := experiment.ResolveVariables(vars); err != nil {
		return nil, err
	}

	logger.Debug("experiment loaded",
		"experiment", experiment.Name,
		"evaluators", len(experiment.Evaluators),
		"config_digest", experiment.ConfigDigest,
	)
	return experiment, nil
}

// Paths returns the base file path and the overlay file path selected
// by options. overlayPath is empty when no environment is set.
func (options Options) Paths() (basePath, overlayPath string, err error) {
	filename := options.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	if options.Environment != "" {
		overlayName, err := OverlayFileName(filename, options.Environment)
		if err != nil {
			return "", "", err
		}
		overlayPath = filepath.Join(options.BasePath, overlayName)
	} else if err := validateFilename(filename); err != nil {
		return "", "", err
	}
	return filepath.Join(options.BasePath, filename), overlayPath, nil
}

// LoadConfig reads basePath and, when overlayPath is non-empty and the
// file exists, merges the overlay on top. The result is the merged
// document before object-graph construction.
func LoadConfig(basePath, overlayPath string) (map[string]any, error) {
	return loadConfig(basePath, overlayPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func loadConfig(basePath, overlayPath string, logger *slog.Logger) (map[string]any, error) {
	baseData, err := os.ReadFile(basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrExperimentFileNotFound, basePath)
		}
		return nil, fmt.Errorf("reading %s: %w", basePath, err)
	}
	base, err := decodeDocument(basePath, baseData)
	if err != nil {
		return nil, err
	}

	if overlayPath == "" {
		return base, nil
	}

	overlayData, err := os.ReadFile(overlayPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no environment overlay, using base experiment only", "path", overlayPath)
			return base, nil
		}
		return nil, fmt.Errorf("reading %s: %w", overlayPath, err)
	}
	overlay, err := decodeDocument(overlayPath, overlayData)
	if err != nil {
		return nil, err
	}

	logger.Debug("merging environment overlay", "base", basePath, "overlay", overlayPath)
	return merge.Merge(base, overlay), nil
}

// OverlayFileName inserts environment between the name and extension
// of filename: ("experiment.yaml", "dev") gives "experiment.dev.yaml".
func OverlayFileName(filename, environment string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}
	extension := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, extension)
	return stem + "." + environment + extension, nil
}

// validateFilename requires a non-empty name part and a non-empty
// extension, split on the last dot of the final path element.
func validateFilename(filename string) error {
	base := filepath.Base(filename)
	extension := filepath.Ext(base)
	stem := strings.TrimSuffix(base, extension)
	if extension == "" || extension == "." || stem == "" {
		return fmt.Errorf("%w: %q must have a name and an extension", ErrInvalidExperimentFile, filename)
	}
	return nil
}

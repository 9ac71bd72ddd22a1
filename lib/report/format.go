// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"
)

// Encoding selects the serialization of a report file.
type Encoding string

const (
	// EncodingJSON is indented JSON, readable without tools.
	EncodingJSON Encoding = "json"

	// EncodingCBOR is Core Deterministic CBOR.
	EncodingCBOR Encoding = "cbor"
)

// Compression selects the compression applied after encoding.
type Compression string

const (
	CompressionNone Compression = "none"

	// CompressionZstd is a zstd frame at the default level. Best
	// ratio for row-heavy reports.
	CompressionZstd Compression = "zstd"

	// CompressionLZ4 is an LZ4 frame. Fastest to write and read.
	CompressionLZ4 Compression = "lz4"
)

// Format is an encoding plus a compression. Sealed reports are
// encrypted to age recipients after compression.
type Format struct {
	Encoding    Encoding
	Compression Compression
	Sealed      bool
}

// DefaultFormat is uncompressed JSON.
var DefaultFormat = Format{Encoding: EncodingJSON, Compression: CompressionNone}

// ParseEncoding parses "json" or "cbor".
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case EncodingJSON, EncodingCBOR:
		return Encoding(name), nil
	default:
		return "", fmt.Errorf("unknown report encoding %q (want json or cbor)", name)
	}
}

// ParseCompression parses "none", "zstd", or "lz4". The empty string
// means none.
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZstd, CompressionLZ4:
		return Compression(name), nil
	default:
		return "", fmt.Errorf("unknown report compression %q (want none, zstd, or lz4)", name)
	}
}

// extension returns the file name suffix for a compression.
func (c Compression) extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// FileName returns the report file name for a run ID.
func (f Format) FileName(runID string) string {
	name := runID + ".report." + string(f.Encoding) + f.Compression.extension()
	if f.Sealed {
		name += sealedExtension
	}
	return name
}

// FormatFromName recovers the format from a report file name.
func FormatFromName(name string) (Format, error) {
	format := Format{Compression: CompressionNone}
	if strings.HasSuffix(name, sealedExtension) {
		format.Sealed = true
		name = strings.TrimSuffix(name, sealedExtension)
	}
	switch {
	case strings.HasSuffix(name, ".zst"):
		format.Compression = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".lz4"):
		format.Compression = CompressionLZ4
		name = strings.TrimSuffix(name, ".lz4")
	}

	switch {
	case strings.HasSuffix(name, ".report.json"):
		format.Encoding = EncodingJSON
	case strings.HasSuffix(name, ".report.cbor"):
		format.Encoding = EncodingCBOR
	default:
		return Format{}, fmt.Errorf("%s: not a report file name (want <id>.report.{json,cbor}[.zst|.lz4][.age])", name)
	}
	return format, nil
}

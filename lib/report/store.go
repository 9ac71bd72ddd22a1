// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/codec"
)

// zstdEncoder and zstdDecoder are shared; both are safe for concurrent
// use with EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("report: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("report: zstd decoder initialization failed: " + err.Error())
	}
}

// Write stores run in dir, creating dir if needed, and returns the
// path of the written file. The file appears atomically: it is written
// under a temporary name and renamed into place. When recipients are
// given the report is sealed to them and the name ends in ".age".
func Write(dir string, run *Run, format Format, recipients ...age.Recipient) (string, error) {
	if run.ID == "" {
		return "", fmt.Errorf("writing report: run has no ID")
	}
	if format.Sealed && len(recipients) == 0 {
		return "", fmt.Errorf("writing report: sealed format needs at least one recipient")
	}
	format.Sealed = len(recipients) > 0

	data, err := Encode(run, format)
	if err != nil {
		return "", err
	}
	if format.Sealed {
		if data, err = seal(data, recipients); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	path := filepath.Join(dir, format.FileName(run.ID))

	temporary, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	temporaryPath := temporary.Name()
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return "", fmt.Errorf("writing report file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return "", fmt.Errorf("closing report file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return "", fmt.Errorf("renaming report file: %w", err)
	}
	return path, nil
}

// Read loads a report written by Write. The format comes from the
// file name. A sealed report needs an identity matching one of its
// recipients.
func Read(path string, identities ...age.Identity) (*Run, error) {
	payload, format, err := ReadPayload(path, identities...)
	if err != nil {
		return nil, err
	}
	run, err := Decode(payload, Format{Encoding: format.Encoding, Compression: CompressionNone})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return run, nil
}

// ReadPayload returns the encoded report bytes of the file at path,
// unsealed and decompressed, with the format taken from its name.
func ReadPayload(path string, identities ...age.Identity) ([]byte, Format, error) {
	format, err := FormatFromName(filepath.Base(path))
	if err != nil {
		return nil, Format{}, err
	}
	if format.Sealed && len(identities) == 0 {
		return nil, Format{}, fmt.Errorf("%s: %w", path, ErrNoIdentity)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Format{}, fmt.Errorf("reading report: %w", err)
	}
	if format.Sealed {
		if data, err = unseal(data, identities); err != nil {
			return nil, Format{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	payload, err := decompress(data, format.Compression)
	if err != nil {
		return nil, Format{}, fmt.Errorf("%s: %w", path, err)
	}
	return payload, format, nil
}

// Encode serializes and compresses run.
func Encode(run *Run, format Format) ([]byte, error) {
	var (
		encoded []byte
		err     error
	)
	switch format.Encoding {
	case EncodingJSON:
		encoded, err = json.MarshalIndent(run, "", "  ")
		if err == nil {
			encoded = append(encoded, '\n')
		}
	case EncodingCBOR:
		encoded, err = codec.Marshal(run)
	default:
		return nil, fmt.Errorf("unsupported report encoding %q", format.Encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return compress(encoded, format.Compression)
}

// Decode decompresses and deserializes a report.
func Decode(data []byte, format Format) (*Run, error) {
	decompressed, err := decompress(data, format.Compression)
	if err != nil {
		return nil, err
	}

	var run Run
	switch format.Encoding {
	case EncodingJSON:
		err = json.Unmarshal(decompressed, &run)
	case EncodingCBOR:
		err = codec.Unmarshal(decompressed, &run)
	default:
		return nil, fmt.Errorf("unsupported report encoding %q", format.Encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &run, nil
}

func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case "", CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported report compression %q", compression)
	}
}

func decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case "", CompressionNone:
		return data, nil
	case CompressionZstd:
		decompressed, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return decompressed, nil
	case CompressionLZ4:
		decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return decompressed, nil
	default:
		return nil, fmt.Errorf("unsupported report compression %q", compression)
	}
}

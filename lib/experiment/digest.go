// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/nstijepovic/genaiops-azureaisdk-template/lib/codec"
)

// digestDomainKey keys the BLAKE3 hash so config digests never collide
// with hashes of the same bytes computed for another purpose. The
// bytes are the ASCII domain name, zero-padded to 32 bytes. Changing
// them changes every digest.
var digestDomainKey = [32]byte{
	'l', 'l', 'm', 'o', 'p', 's', '.', 'e', 'x', 'p', 'e', 'r', 'i', 'm', 'e', 'n',
	't', '.', 'c', 'o', 'n', 'f', 'i', 'g', 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest returns the hex BLAKE3 keyed hash of the deterministic CBOR
// encoding of a merged configuration document. Equal documents have
// equal digests regardless of map iteration order. Placeholders are
// hashed unresolved, so the digest never depends on secret values.
func Digest(config map[string]any) (string, error) {
	encoded, err := codec.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("encoding config for digest: %w", err)
	}

	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(digestDomainKey[:])
	if err != nil {
		panic("experiment: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

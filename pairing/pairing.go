// Cartera Mesh
// Copyright (C) 2026 cartera-mesh
//
// This file is part of Cartera Mesh.
//
// Cartera Mesh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cartera Mesh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Cartera Mesh. If not, see <https://www.gnu.org/licenses/>.

// Package pairing implements the root shared-secret channel data model
// described in spec §3 ("Pairing") and its wire URI form (§6.1).
package pairing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SymKeySize is the length in bytes of a pairing symmetric secret, which
// doubles as an X25519 scalar.
const SymKeySize = 32

// Metadata carries the out-of-band negotiated pairing parameters that are
// wire-visible in the URI (§6.1) but not part of the cryptographic
// derivation itself.
type Metadata struct {
	RelayProtocol   string   `json:"relayProtocol"`
	ExpiryTimestamp int64    `json:"expiryTimestamp,omitempty"`
	Methods         []string `json:"methods,omitempty"`
}

// Pairing is the root shared channel between a dapp and a wallet.
type Pairing struct {
	// Topic is lowercase hex SHA-256(SymKey) — 64 hex characters.
	Topic string `json:"topic"`
	// SymKey is the 32-byte shared secret, also usable as an X25519 scalar.
	SymKey   [SymKeySize]byte `json:"symKey"`
	Metadata Metadata         `json:"metadata"`
}

// New derives a Pairing from an explicit symmetric key, computing its topic
// as SHA-256(symKey) per spec §3.
func New(symKey [SymKeySize]byte, meta Metadata) Pairing {
	sum := sha256.Sum256(symKey[:])
	return Pairing{
		Topic:    hex.EncodeToString(sum[:]),
		SymKey:   symKey,
		Metadata: meta,
	}
}

// Generate creates a new Pairing with a cryptographically random symmetric
// key. Used by the dapp side when no wallet-supplied URI exists yet.
func Generate(meta Metadata) (Pairing, error) {
	var key [SymKeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return Pairing{}, fmt.Errorf("pairing: generate key: %w", err)
	}
	if meta.RelayProtocol == "" {
		meta.RelayProtocol = "irn"
	}
	if meta.ExpiryTimestamp == 0 {
		meta.ExpiryTimestamp = time.Now().Add(24 * time.Hour).Unix()
	}
	return New(key, meta), nil
}

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

package cipher

import (
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/cartera-mesh/gomesh/mesherr"
)

// envelopeType is the leading byte of every envelope (spec §3/§4.1).
type envelopeType byte

const (
	// typeZero is the ordinary envelope: no sender key, AEAD already
	// established between peers via a pairing or session topic.
	typeZero envelopeType = 0
	// typeOne prepends the sender's Ed25519 verifying key so a
	// wc_sessionPropose envelope can be authenticated before any shared
	// secret exists.
	typeOne envelopeType = 1
)

const nonceSize = chacha20poly1305.NonceSize // 12

// senderKey optionally carries the Ed25519 verifying key that authenticates
// a type-1 envelope (see EncodeWithParams / P6 in spec §8).
type senderKey = ed25519.PublicKey

// buildEnvelope assembles [type_byte][sender_pub?][nonce][ciphertext+tag]
// and returns the standard-alphabet base64 string, matching §4.1 bit-exact.
func buildEnvelope(et envelopeType, sender senderKey, nonce, ciphertext []byte) string {
	var buf []byte
	switch et {
	case typeOne:
		buf = make([]byte, 0, 1+ed25519.PublicKeySize+len(nonce)+len(ciphertext))
		buf = append(buf, byte(typeOne))
		buf = append(buf, sender...)
	default:
		buf = make([]byte, 0, 1+len(nonce)+len(ciphertext))
		buf = append(buf, byte(typeZero))
	}
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)
	return base64.StdEncoding.EncodeToString(buf)
}

// parseEnvelope splits a decoded envelope into its type, optional sender
// key, nonce and ciphertext. It never touches the AEAD.
func parseEnvelope(raw []byte) (et envelopeType, sender senderKey, nonce, ciphertext []byte, err error) {
	if len(raw) < 1 {
		return 0, nil, nil, nil, mesherr.ErrCorruptedPayload
	}
	switch envelopeType(raw[0]) {
	case typeZero:
		rest := raw[1:]
		if len(rest) < nonceSize {
			return 0, nil, nil, nil, mesherr.ErrCorruptedPayload
		}
		return typeZero, nil, rest[:nonceSize], rest[nonceSize:], nil
	case typeOne:
		if len(raw) < 1+ed25519.PublicKeySize {
			return 0, nil, nil, nil, mesherr.ErrCorruptedPayload
		}
		key := ed25519.PublicKey(raw[1 : 1+ed25519.PublicKeySize])
		if _, err := new(edwards25519.Point).SetBytes(key); err != nil {
			// Not a valid (canonical) compressed Edwards point: the
			// sender key cannot possibly verify anything (P6).
			return 0, nil, nil, nil, mesherr.ErrCorruptedPayload
		}
		rest := raw[1+ed25519.PublicKeySize:]
		if len(rest) < nonceSize {
			return 0, nil, nil, nil, mesherr.ErrCorruptedPayload
		}
		return typeOne, key, rest[:nonceSize], rest[nonceSize:], nil
	default:
		return 0, nil, nil, nil, mesherr.ErrCorruptedPayload
	}
}

// randomNonce draws a fresh 12-byte ChaCha20-Poly1305 nonce.
func randomNonce() ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cipher: generate nonce: %w", err)
	}
	return nonce, nil
}

// encodeWith serializes payload as JSON, seals it with aead under nonce,
// and base64-encodes the resulting envelope of the requested type.
func encodeWith(aead cipher.AEAD, payload any, nonce []byte, et envelopeType, sender senderKey) (string, error) {
	serialized, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("cipher: marshal payload: %w", err)
	}
	ciphertext := aead.Seal(nil, nonce, serialized, nil)
	return buildEnvelope(et, sender, nonce, ciphertext), nil
}

// decodeWith reverses encodeWith: base64-decode, split the envelope,
// authenticate+decrypt with aead, and unmarshal into out.
func decodeWith(aead cipher.AEAD, b64 string, out any) error {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return mesherr.ErrCorruptedPayload
	}
	_, _, nonce, ciphertext, err := parseEnvelope(raw)
	if err != nil {
		return err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return mesherr.ErrEncryptionError
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("cipher: unmarshal payload: %w", err)
	}
	return nil
}

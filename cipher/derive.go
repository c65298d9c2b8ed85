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
	"crypto/ecdh"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/cartera-mesh/gomesh/mesherr"
)

// deriveSessionKey implements the bit-exact key schedule from spec §4.1:
//
//	ikm = X25519(pairingSymKey, theirPublic)
//	okm = HKDF-SHA256(salt=∅, ikm, info=∅, L=32)
//	sessionTopic = lowercase_hex(SHA-256(okm))
//
// okm doubles as the ChaCha20-Poly1305 key for the derived session and, when
// treated as an X25519 scalar, yields the local "expanded" public key
// returned to the caller.
func deriveSessionKey(pairingSymKey [32]byte, controllerPKHex string) (topic string, okm [32]byte, expandedPub []byte, err error) {
	peerBytes, err := hex.DecodeString(controllerPKHex)
	if err != nil {
		return "", okm, nil, fmt.Errorf("%w: %v", mesherr.ErrInvalidKeyLength, err)
	}
	if len(peerBytes) != 32 {
		return "", okm, nil, mesherr.ErrInvalidKeyLength
	}

	curve := ecdh.X25519()
	priv, err := curve.NewPrivateKey(pairingSymKey[:])
	if err != nil {
		return "", okm, nil, fmt.Errorf("cipher: invalid pairing scalar: %w", err)
	}
	peerPub, err := curve.NewPublicKey(peerBytes)
	if err != nil {
		return "", okm, nil, fmt.Errorf("cipher: invalid peer public key: %w", err)
	}

	ikm, err := priv.ECDH(peerPub)
	if err != nil {
		return "", okm, nil, fmt.Errorf("cipher: ecdh: %w", err)
	}

	h := hkdf.New(sha256.New, ikm, nil, nil)
	if _, err := io.ReadFull(h, okm[:]); err != nil {
		return "", okm, nil, fmt.Errorf("cipher: hkdf expand: %w", err)
	}

	sum := sha256.Sum256(okm[:])
	topic = hex.EncodeToString(sum[:])

	expandedPriv, err := curve.NewPrivateKey(okm[:])
	if err != nil {
		return "", okm, nil, fmt.Errorf("cipher: invalid expanded scalar: %w", err)
	}
	return topic, okm, expandedPriv.PublicKey().Bytes(), nil
}

// newAEAD constructs a ChaCha20-Poly1305 AEAD from a 32-byte key.
func newAEAD(key []byte) (cipher.AEAD, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: new aead: %w", err)
	}
	return aead, nil
}

// publicKeyFromScalar treats scalar as an X25519 private scalar and returns
// its public key bytes, the same construction deriveSessionKey uses to turn
// okm into expandedPub.
func publicKeyFromScalar(scalar [32]byte) ([]byte, error) {
	priv, err := ecdh.X25519().NewPrivateKey(scalar[:])
	if err != nil {
		return nil, fmt.Errorf("cipher: invalid scalar: %w", err)
	}
	return priv.PublicKey().Bytes(), nil
}

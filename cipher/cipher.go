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

// Package cipher implements the pairing/session keystore (component C):
// pairing creation, ECDH-derived per-session keys, symmetric envelope
// encoding/decoding, persistent key recovery, and session expiry
// enforcement (spec §4.1).
package cipher

import (
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/cartera-mesh/gomesh/internal/logx"
	"github.com/cartera-mesh/gomesh/mesherr"
	"github.com/cartera-mesh/gomesh/pairing"
	"github.com/cartera-mesh/gomesh/store"
)

const storagePrefix = "crypto"

func keyPairingTopic() string            { return storagePrefix + "-pairingtopic" }
func keySessions() string                { return storagePrefix + "-sessions" }
func keySessionController(t string) string { return fmt.Sprintf("%s-%s", storagePrefix, t) }
func keySettlement(t string) string      { return fmt.Sprintf("%s-settlement-%s", storagePrefix, t) }

// Cipher owns the pairing and session symmetric keys for one process
// instance. The AEAD table and pairing topic are the only state shared
// across actor boundaries (spec §5); both are guarded by a single mutex
// here, matching the teacher's mutex-guarded-map idiom for this scale of
// map (see crypto/storage/memory.go).
type Cipher struct {
	kv store.KVStore

	mu           sync.RWMutex
	pairingTopic string // "" if no pairing installed
	aeads        map[string]cipher.AEAD
}

// New constructs a Cipher over kv, restoring any previously persisted
// pairing/session state (spec §4.1 "new"). The optPairingTopic argument is
// accepted for interface parity with callers that already know which
// pairing they expect, but restoration always follows whatever is actually
// persisted under crypto-pairingtopic.
func New(kv store.KVStore, optPairingTopic string) (*Cipher, error) {
	c := &Cipher{kv: kv, aeads: make(map[string]cipher.AEAD)}
	_ = optPairingTopic

	p, found, err := store.GetJSON[pairing.Pairing](kv, keyPairingTopic())
	if err != nil {
		return nil, err
	}
	if !found {
		logx.Debug("cipher: no persisted pairing, clearing storage")
		if err := kv.Clear(); err != nil {
			return nil, err
		}
		return c, nil
	}

	logx.Debug("cipher: restoring pairing %s", p.Topic)
	aead, err := newAEAD(p.SymKey[:])
	if err != nil {
		return nil, err
	}
	c.pairingTopic = p.Topic
	c.aeads[p.Topic] = aead

	sessions, found, err := store.GetJSON[[]string](kv, keySessions())
	if err != nil {
		return nil, err
	}
	if !found {
		return c, nil
	}

	expired := false
	for _, topic := range sessions {
		isExpired, err := c.isExpiredLocked(topic)
		if err != nil {
			// No settlement yet (proposed but not settled): treat as live.
			isExpired = false
		}
		if isExpired {
			expired = true
			break
		}
		controllerPK, found, err := store.GetJSON[string](kv, keySessionController(topic))
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		_, okm, _, err := deriveSessionKey(p.SymKey, controllerPK)
		if err != nil {
			return nil, err
		}
		sessionAEAD, err := newAEAD(okm[:])
		if err != nil {
			return nil, err
		}
		c.aeads[topic] = sessionAEAD
	}

	if expired {
		logx.Info("cipher: session expired on restore, resetting storage")
		if err := kv.Clear(); err != nil {
			return nil, err
		}
		c.pairingTopic = ""
		c.aeads = make(map[string]cipher.AEAD)
	}

	return c, nil
}

// SetPairing fully resets cipher state before installing the new pairing
// (spec §4.1). Passing a zero-value Pairing (Topic == "") only performs the
// reset and leaves the cipher empty.
func (c *Cipher) SetPairing(p *pairing.Pairing) error {
	c.Reset()
	if p == nil {
		return nil
	}

	if err := store.SetJSON(c.kv, keyPairingTopic(), *p); err != nil {
		return err
	}
	aead, err := newAEAD(p.SymKey[:])
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.pairingTopic = p.Topic
	c.aeads[p.Topic] = aead
	c.mu.Unlock()
	return nil
}

// Pairing returns the currently persisted pairing, if any.
func (c *Cipher) Pairing() (pairing.Pairing, bool, error) {
	return store.GetJSON[pairing.Pairing](c.kv, keyPairingTopic())
}

// PairingKey returns the active pairing's symmetric key.
func (c *Cipher) PairingKey() ([32]byte, bool, error) {
	p, found, err := c.Pairing()
	if err != nil || !found {
		return [32]byte{}, found, err
	}
	return p.SymKey, true, nil
}

// CreateCommonTopic derives a session topic and AEAD key from the active
// pairing and a peer controller public key (hex), per spec §4.1. It
// persists the session topic list and the controller key, and registers
// the new AEAD for Encode/Decode.
func (c *Cipher) CreateCommonTopic(controllerPKHex string) (sessionTopic string, theirExpandedPublic []byte, err error) {
	pairingKey, found, err := c.PairingKey()
	if err != nil {
		return "", nil, err
	}
	if !found {
		return "", nil, mesherr.ErrNonExistingPairing
	}

	topic, okm, expandedPub, err := deriveSessionKey(pairingKey, controllerPKHex)
	if err != nil {
		return "", nil, err
	}

	if err := c.updateSessions(topic, controllerPKHex); err != nil {
		return "", nil, err
	}

	aead, err := newAEAD(okm[:])
	if err != nil {
		return "", nil, err
	}
	c.mu.Lock()
	c.aeads[topic] = aead
	c.mu.Unlock()

	return topic, expandedPub, nil
}

// updateSessions appends topic to the persisted session list (append, not
// overwrite — see spec.md §9 REDESIGN FLAGS on the original's inverted
// overwrite bug) and records the controller public key for topic.
func (c *Cipher) updateSessions(topic, controllerPKHex string) error {
	sessions, _, err := store.GetJSON[[]string](c.kv, keySessions())
	if err != nil {
		return err
	}
	sessions = append(sessions, topic)
	if err := store.SetJSON(c.kv, keySessions(), sessions); err != nil {
		return err
	}
	return store.SetJSON(c.kv, keySessionController(topic), controllerPKHex)
}

// Encode serializes payload as JSON, encrypts it with the AEAD registered
// for topic using a fresh random nonce and a type-0 envelope.
func (c *Cipher) Encode(topic string, payload any) (string, error) {
	nonce, err := randomNonce()
	if err != nil {
		return "", err
	}
	return c.EncodeWithParams(topic, payload, nonce, typeZero, nil)
}

// EncodeWithParams is the fully parameterized encoder (spec §4.1
// "encode_with_params"), used directly by tests that need deterministic
// nonces and by the type-1 session-propose envelope path.
func (c *Cipher) EncodeWithParams(topic string, payload any, nonce []byte, et envelopeType, sender senderKey) (string, error) {
	c.mu.RLock()
	aead, ok := c.aeads[topic]
	c.mu.RUnlock()
	if !ok {
		return "", &mesherr.UnknownTopicError{Topic: topic}
	}
	return encodeWith(aead, payload, nonce, et, sender)
}

// EncodeType0 is sugar for Encode — kept as a named entry point so callers
// that care about the envelope type they are choosing can say so
// explicitly, matching the Rust Type::Type0/Type1 split.
func (c *Cipher) EncodeType0(topic string, payload any) (string, error) {
	return c.Encode(topic, payload)
}

// EncodeType1 encodes a type-1 envelope carrying the sender's Ed25519
// verifying key, for use before any shared secret exists (e.g. a
// wc_sessionPropose sent on the pairing topic).
func (c *Cipher) EncodeType1(topic string, payload any, sender senderKey) (string, error) {
	nonce, err := randomNonce()
	if err != nil {
		return "", err
	}
	return c.EncodeWithParams(topic, payload, nonce, typeOne, sender)
}

// Decode decrypts and deserializes an envelope produced by Encode/
// EncodeWithParams for topic into out.
func (c *Cipher) Decode(topic, b64 string, out any) error {
	c.mu.RLock()
	aead, ok := c.aeads[topic]
	c.mu.RUnlock()
	if !ok {
		return &mesherr.UnknownTopicError{Topic: topic}
	}
	return decodeWith(aead, b64, out)
}

// SetSettlement persists the settlement record for a session topic.
func (c *Cipher) SetSettlement(topic string, settled SessionSettled) error {
	return store.SetJSON(c.kv, keySettlement(topic), settled)
}

// Settlements returns every persisted settlement for the active pairing's
// sessions. Returns an empty slice (never an error) if there is no pairing
// or no registered sessions.
func (c *Cipher) Settlements() ([]SessionSettled, error) {
	c.mu.RLock()
	empty := c.pairingTopic == "" || len(c.aeads) == 0
	c.mu.RUnlock()
	if empty {
		return nil, nil
	}

	sessions, found, err := store.GetJSON[[]string](c.kv, keySessions())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	out := make([]SessionSettled, 0, len(sessions))
	for _, topic := range sessions {
		s, found, err := store.GetJSON[SessionSettled](c.kv, keySettlement(topic))
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, s)
		}
	}
	return out, nil
}

// IsExpired reports whether topic's settlement has expired. Live-at-expiry
// is chosen for the boundary (expiry < now means expired, not expiry <=
// now) per the Open Question in spec.md §9.
func (c *Cipher) IsExpired(topic string) (bool, error) {
	return c.isExpiredLocked(topic)
}

func (c *Cipher) isExpiredLocked(topic string) (bool, error) {
	s, found, err := store.GetJSON[SessionSettled](c.kv, keySettlement(topic))
	if err != nil {
		return false, err
	}
	if !found {
		return false, &mesherr.UnknownTopicError{Topic: topic}
	}
	now := time.Now().Unix()
	return s.Expiry < now, nil
}

// DeleteSession removes topic's AEAD key, controller-key record, and
// settlement record together (I4), and filters topic out of the persisted
// session list — keeping every *other* session, which is the corrected
// semantics for the inverted filter noted in spec.md §9.
func (c *Cipher) DeleteSession(topic string) error {
	if err := c.kv.Delete(keySessionController(topic)); err != nil {
		return err
	}

	sessions, found, err := store.GetJSON[[]string](c.kv, keySessions())
	if err != nil {
		return err
	}
	if found {
		kept := make([]string, 0, len(sessions))
		for _, t := range sessions {
			if t != topic {
				kept = append(kept, t)
			}
		}
		if err := store.SetJSON(c.kv, keySessions(), kept); err != nil {
			return err
		}
	}

	if err := c.kv.Delete(keySettlement(topic)); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.aeads, topic)
	c.mu.Unlock()
	return nil
}

// Reset clears every registered AEAD, the cached pairing topic, and the
// entire persisted store. Idempotent (P4): calling it twice in a row
// leaves the same observable empty state as calling it once.
func (c *Cipher) Reset() {
	c.mu.Lock()
	c.aeads = make(map[string]cipher.AEAD)
	c.pairingTopic = ""
	c.mu.Unlock()
	_ = c.kv.Clear()
}

// Subscriptions returns every topic with a registered AEAD (pairing topic
// plus every live session topic).
func (c *Cipher) Subscriptions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.aeads))
	for t := range c.aeads {
		out = append(out, t)
	}
	return out
}

// PublicKeyHex returns the hex-encoded X25519 public key derived from the
// active pairing's symmetric scalar, or false if there is no pairing.
func (c *Cipher) PublicKeyHex() (string, bool, error) {
	key, found, err := c.PairingKey()
	if err != nil || !found {
		return "", found, err
	}
	pub, err := publicKeyFromScalar(key)
	if err != nil {
		return "", false, err
	}
	return hex.EncodeToString(pub), true, nil
}

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

// Package mesherr defines the sentinel errors surfaced across the pairing
// and session layers. Callers should match on these with errors.Is rather
// than string comparison.
package mesherr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTopic is returned when encoding/decoding references a topic
	// with no registered AEAD key.
	ErrUnknownTopic = errors.New("unknown topic")

	// ErrCorruptedPayload is returned when an envelope is malformed
	// (bad base64, missing bytes, unrecognized type byte).
	ErrCorruptedPayload = errors.New("corrupted payload")

	// ErrEncryptionError is returned when AEAD authentication fails.
	ErrEncryptionError = errors.New("encryption error")

	// ErrInvalidKeyLength is returned when a hex-decoded key is not 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrNonExistingPairing is returned when an operation requires a
	// pairing that has not been set.
	ErrNonExistingPairing = errors.New("no pairing configured")

	// ErrUnknownSessionTopic is returned when a session topic has no
	// settlement record.
	ErrUnknownSessionTopic = errors.New("unknown session topic")

	// ErrNoPairManager is returned when a pairing topic has no registered
	// pairing manager.
	ErrNoPairManager = errors.New("no pair manager for topic")

	// ErrOperationTimedOut is returned when a request/response round trip
	// exceeds its deadline.
	ErrOperationTimedOut = errors.New("operation timed out")

	// ErrSuperseded is returned to a pending-session waiter that was
	// displaced by a newer proposal on the same pairing topic.
	ErrSuperseded = errors.New("pending session superseded")

	// ErrShutdown is returned to callers still waiting when an actor is
	// torn down.
	ErrShutdown = errors.New("actor shut down")
)

// NoResponse reports that a request was published but no response arrived
// for (topic, method) before the deadline. It wraps ErrOperationTimedOut so
// callers can still match with errors.Is(err, ErrOperationTimedOut).
type NoResponse struct {
	Topic  string
	Method string
}

func (e *NoResponse) Error() string {
	return fmt.Sprintf("no response for topic=%s method=%s", e.Topic, e.Method)
}

func (e *NoResponse) Unwrap() error { return ErrOperationTimedOut }

// UnknownTopicError wraps ErrUnknownTopic with the offending topic.
type UnknownTopicError struct {
	Topic string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic: %s", e.Topic)
}

func (e *UnknownTopicError) Unwrap() error { return ErrUnknownTopic }

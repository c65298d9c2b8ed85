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

// Package relay defines the relay client interface this module consumes
// (spec §6.3) and a concrete gorilla/websocket adapter. The relay server
// itself is out of scope; this is only the consumed transport contract.
package relay

import "context"

// Frame is one inbound (topic, ciphertext) pair delivered by the relay.
type Frame struct {
	Topic      string
	Ciphertext string // base64, as defined by the envelope wire format
}

// Client is the relay adapter interface the Transport Actor drives.
// Implementations must be safe for concurrent use: Subscribe/Unsubscribe/
// Publish may be called from the Transport Actor's single goroutine, but
// Inbound's channel is read concurrently with those calls.
type Client interface {
	Subscribe(ctx context.Context, topic string) error
	Unsubscribe(ctx context.Context, topic string) error
	Publish(ctx context.Context, topic, ciphertextB64 string, tag uint32, ttl uint64, prompt bool) error

	// Inbound returns the channel of frames delivered by the relay. The
	// channel is closed when the underlying connection is torn down.
	Inbound() <-chan Frame

	Close() error
}

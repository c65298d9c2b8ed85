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

package session

import (
	"context"
	"encoding/json"

	"github.com/cartera-mesh/gomesh/cipher"
	"github.com/cartera-mesh/gomesh/namespace"
	"github.com/cartera-mesh/gomesh/rpc"
	"github.com/cartera-mesh/gomesh/transport"
)

// ClientSession is the per-settled-session façade exposed to callers above
// the RPC routing fabric (component I, spec §4). It wraps a session topic
// already registered with the cipher keystore and the shared Transport
// Actor used to publish on it.
type ClientSession struct {
	topic      string
	namespaces namespace.Namespaces
	expiry     int64
	controller string

	actor  *transport.Actor
	cipher *cipher.Cipher
}

// New wraps an already-settled session topic. The caller is responsible
// for having registered the topic's AEAD via cipher.CreateCommonTopic
// beforehand.
func New(topic string, settled cipher.SessionSettled, actor *transport.Actor, c *cipher.Cipher) *ClientSession {
	return &ClientSession{
		topic:      topic,
		namespaces: settled.Namespaces,
		expiry:     settled.Expiry,
		controller: settled.Controller,
		actor:      actor,
		cipher:     c,
	}
}

func (s *ClientSession) Topic() string                    { return s.topic }
func (s *ClientSession) Namespaces() namespace.Namespaces  { return s.namespaces }
func (s *ClientSession) Expiry() int64                     { return s.expiry }
func (s *ClientSession) Controller() string                { return s.controller }

// IsExpired reports whether this session's settlement has expired, per the
// cipher keystore's persisted record (spec I2, P3's "< now" boundary).
func (s *ClientSession) IsExpired() (bool, error) {
	return s.cipher.IsExpired(s.topic)
}

// Request sends a wc_sessionRequest and returns the raw result payload,
// which the caller unmarshals according to the namespace method it called
// (spec §6.4 SessionHandler::request).
func (s *ClientSession) Request(ctx context.Context, params any) (json.RawMessage, error) {
	resp, err := s.actor.SendRequest(ctx, s.topic, rpc.MethodSessionRequest, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &rpcError{resp.Error}
	}
	return resp.Result, nil
}

// Event publishes a wc_sessionEvent (fire-and-acknowledge) to the peer.
func (s *ClientSession) Event(ctx context.Context, params any) error {
	resp, err := s.actor.SendRequest(ctx, s.topic, rpc.MethodSessionEvent, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return &rpcError{resp.Error}
	}
	return nil
}

// Ping sends a wc_sessionPing and waits for acknowledgment (spec §8 scenario 2
// shape, applied to the session topic rather than the pairing topic).
func (s *ClientSession) Ping(ctx context.Context) error {
	resp, err := s.actor.SendRequest(ctx, s.topic, rpc.MethodSessionPing, nil)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return &rpcError{resp.Error}
	}
	return nil
}

// Disconnect publishes wc_sessionDelete, unsubscribes from the topic, and
// removes the session's keys from the cipher keystore (spec I4).
func (s *ClientSession) Disconnect(ctx context.Context) error {
	_, err := s.actor.SendRequest(ctx, s.topic, rpc.MethodSessionDelete, nil)
	if err != nil {
		return err
	}
	if err := s.actor.Unsubscribe(ctx, s.topic); err != nil {
		return err
	}
	return s.cipher.DeleteSession(s.topic)
}

type rpcError struct{ inner *rpc.ResponseError }

func (e *rpcError) Error() string { return e.inner.Message }

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

package rpc

import "time"

// RelayMetadata is the (tag, ttl, prompt) triple bound statically per
// method (spec §3, §6.6). Values are wire-visible and must match peer
// implementations bit-exactly.
type RelayMetadata struct {
	Tag    uint32
	TTL    time.Duration
	Prompt bool
}

// requestTag/responseTag hold the full static table: request tag, its
// paired response tag, ttl and prompt flag, keyed by method.
type methodMeta struct {
	requestTag  uint32
	responseTag uint32
	ttl         time.Duration
	prompt      bool
}

var registry = map[string]methodMeta{
	MethodPairingPing:    {1002, 1003, 30 * time.Second, false},
	MethodPairingExtend:  {1004, 1005, 86400 * time.Second, false},
	MethodPairingDelete:  {1006, 1007, 86400 * time.Second, false},
	MethodSessionPropose: {1100, 1101, 300 * time.Second, true},
	MethodSessionSettle:  {1102, 1103, 300 * time.Second, false},
	MethodSessionUpdate:  {1104, 1105, 86400 * time.Second, false},
	MethodSessionExtend:  {1106, 1107, 86400 * time.Second, false},
	MethodSessionRequest: {1108, 1109, 300 * time.Second, true},
	MethodSessionEvent:   {1110, 1111, 300 * time.Second, true},
	MethodSessionDelete:  {1112, 1113, 86400 * time.Second, false},
	MethodSessionPing:    {1114, 1115, 30 * time.Second, false},
}

// responseTagIndex inverts registry on responseTag for ResponseFromTag.
var responseTagIndex = func() map[uint32]string {
	m := make(map[uint32]string, len(registry))
	for method, meta := range registry {
		m[meta.responseTag] = method
	}
	return m
}()

// RequestMetadata returns the relay publish parameters for a request of
// method. The second return value is false for an unrecognized method.
func RequestMetadata(method string) (RelayMetadata, bool) {
	meta, ok := registry[method]
	if !ok {
		return RelayMetadata{}, false
	}
	return RelayMetadata{Tag: meta.requestTag, TTL: meta.ttl, Prompt: meta.prompt}, true
}

// ResponseMetadata returns the relay publish parameters for a response to
// method.
func ResponseMetadata(method string) (RelayMetadata, bool) {
	meta, ok := registry[method]
	if !ok {
		return RelayMetadata{}, false
	}
	return RelayMetadata{Tag: meta.responseTag, TTL: meta.ttl, Prompt: false}, true
}

// ResponseFromTag recovers the originating method from an inbound
// response's relay tag — responses carry no method name of their own, only
// the IRN tag, mirroring the original implementation's irn_try_from_tag
// lookup. Pair-extend errors route through their own response tag here,
// not PairDelete's, correcting the source's documented mis-route.
func ResponseFromTag(tag uint32) (string, bool) {
	method, ok := responseTagIndex[tag]
	return method, ok
}

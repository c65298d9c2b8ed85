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

package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURIRoundTrip(t *testing.T) {
	var key [SymKeySize]byte
	for i := range key {
		key[i] = 0x11
	}
	p := New(key, Metadata{
		RelayProtocol:   "irn",
		ExpiryTimestamp: 1_700_000_000,
		Methods:         []string{"eth_sign", "solana_signTransaction"},
	})

	uri := p.String()
	parsed, err := ParseURI(uri)
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParseURICaseInsensitiveScheme(t *testing.T) {
	var key [SymKeySize]byte
	for i := range key {
		key[i] = 0x22
	}
	p := New(key, Metadata{RelayProtocol: "irn"})
	uri := "WC:" + p.Topic + "@2?relay-protocol=irn&sym-key=" + hexUpper(key)

	parsed, err := ParseURI(uri)
	require.NoError(t, err)
	assert.Equal(t, p.Topic, parsed.Topic)
	assert.Equal(t, p.SymKey, parsed.SymKey)
}

func TestParseURIRejectsTamperedTopic(t *testing.T) {
	var key [SymKeySize]byte
	for i := range key {
		key[i] = 0x33
	}
	p := New(key, Metadata{RelayProtocol: "irn"})
	bad := "wc:" + "0000000000000000000000000000000000000000000000000000000000000000" + "@2?relay-protocol=irn&sym-key=" + hexUpper(key)
	_, err := ParseURI(bad)
	require.Error(t, err)
	_ = p
}

func TestParseURIRejectsBadVersion(t *testing.T) {
	_, err := ParseURI("wc:abc@3?relay-protocol=irn&sym-key=11")
	require.Error(t, err)
}

func hexUpper(key [SymKeySize]byte) string {
	const hextable = "0123456789ABCDEF"
	out := make([]byte, len(key)*2)
	for i, b := range key {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}

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
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// URIVersion is the only pairing protocol version this module speaks.
const URIVersion = 2

// String renders the pairing as the wire URI described in spec §6.1:
//
//	wc:<topic>@<version>?relay-protocol=<p>&sym-key=<hex32>&expiry-timestamp=<unix?>&methods=<csv?>
func (p Pairing) String() string {
	v := url.Values{}
	v.Set("relay-protocol", p.Metadata.RelayProtocol)
	v.Set("sym-key", hex.EncodeToString(p.SymKey[:]))
	if p.Metadata.ExpiryTimestamp != 0 {
		v.Set("expiry-timestamp", strconv.FormatInt(p.Metadata.ExpiryTimestamp, 10))
	}
	if len(p.Metadata.Methods) > 0 {
		v.Set("methods", strings.Join(p.Metadata.Methods, ","))
	}
	return fmt.Sprintf("wc:%s@%d?%s", p.Topic, URIVersion, v.Encode())
}

// ParseURI parses a pairing URI as produced by String. Parsing is
// case-insensitive on the "wc" scheme and permissive on hex casing, per
// spec §6.1. The topic in the URI is trusted as-is, but is also
// recomputed from sym-key and compared, so a tampered topic is rejected.
func ParseURI(uri string) (Pairing, error) {
	trimmed := strings.TrimSpace(uri)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "wc:") {
		return Pairing{}, fmt.Errorf("pairing: URI missing wc: scheme")
	}
	rest := trimmed[len("wc:"):]

	at := strings.LastIndex(rest, "@")
	q := strings.Index(rest, "?")
	if at < 0 || q < 0 || q < at {
		return Pairing{}, fmt.Errorf("pairing: malformed URI %q", uri)
	}

	topic := strings.ToLower(rest[:at])
	versionStr := rest[at+1 : q]
	version, err := strconv.Atoi(versionStr)
	if err != nil {
		return Pairing{}, fmt.Errorf("pairing: invalid version %q: %w", versionStr, err)
	}
	if version != URIVersion {
		return Pairing{}, fmt.Errorf("pairing: unsupported version %d", version)
	}

	query, err := url.ParseQuery(rest[q+1:])
	if err != nil {
		return Pairing{}, fmt.Errorf("pairing: invalid query: %w", err)
	}

	symKeyHex := strings.ToLower(query.Get("sym-key"))
	keyBytes, err := hex.DecodeString(symKeyHex)
	if err != nil {
		return Pairing{}, fmt.Errorf("pairing: invalid sym-key hex: %w", err)
	}
	if len(keyBytes) != SymKeySize {
		return Pairing{}, fmt.Errorf("pairing: sym-key must be %d bytes, got %d", SymKeySize, len(keyBytes))
	}
	var symKey [SymKeySize]byte
	copy(symKey[:], keyBytes)

	meta := Metadata{RelayProtocol: query.Get("relay-protocol")}
	if meta.RelayProtocol == "" {
		meta.RelayProtocol = "irn"
	}
	if expStr := query.Get("expiry-timestamp"); expStr != "" {
		exp, err := strconv.ParseInt(expStr, 10, 64)
		if err != nil {
			return Pairing{}, fmt.Errorf("pairing: invalid expiry-timestamp: %w", err)
		}
		meta.ExpiryTimestamp = exp
	}
	if methodsStr := query.Get("methods"); methodsStr != "" {
		meta.Methods = strings.Split(methodsStr, ",")
	}

	derived := New(symKey, meta)
	if topic != "" && topic != derived.Topic {
		return Pairing{}, fmt.Errorf("pairing: topic %q does not match sym-key digest %q", topic, derived.Topic)
	}
	return derived, nil
}

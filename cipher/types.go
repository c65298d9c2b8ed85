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

import "github.com/cartera-mesh/gomesh/namespace"

// SessionSettled is the agreement-of-capabilities record produced once a
// session proposal is accepted. It is the unit persisted under
// crypto-settlement-<topic> (spec §3) and the payload carried on the wire
// in a wc_sessionSettle request.
type SessionSettled struct {
	Topic      string                `json:"topic"`
	Namespaces namespace.Namespaces  `json:"namespaces"`
	Expiry     int64                 `json:"expiry"`
	Controller string                `json:"controllerPublicKey,omitempty"`
	Metadata   SessionSettledMeta    `json:"metadata,omitempty"`
}

// SessionSettledMeta carries peer-reported metadata that rides along with
// a settlement but plays no role in the cryptographic layer.
type SessionSettledMeta struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

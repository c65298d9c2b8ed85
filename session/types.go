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

// Package session implements the Pending Session Coordinator (component H)
// and the Client Session façade (component I): tracking in-flight
// proposals, installing settled sessions, and exposing request/ping/
// disconnect to the layer above the RPC routing fabric.
package session

import (
	"context"

	"github.com/cartera-mesh/gomesh/cipher"
	"github.com/cartera-mesh/gomesh/namespace"
)

// Category distinguishes which side of a proposal this process plays,
// since only the wallet side publishes wc_sessionSettle (spec §4.4).
type Category int

const (
	CategoryDapp Category = iota
	CategoryWallet
)

// ProposalHandle is what Add returns to the caller waiting on a proposal
// to settle: a channel that receives exactly one Outcome.
type ProposalHandle struct {
	topic string
	ch    chan Outcome
}

// Wait blocks until the proposal settles, is superseded, or ctx is done.
func (h *ProposalHandle) Wait(ctx context.Context) (Outcome, error) {
	select {
	case out, ok := <-h.ch:
		if !ok {
			return Outcome{}, context.Canceled
		}
		return out, out.Err
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Outcome is delivered to a parked proposal waiter once it resolves.
type Outcome struct {
	Session *ClientSession
	Err     error
}

// SettleRequest is the payload of a wc_sessionSettle RPC (spec §4.4 step 2).
type SettleRequest struct {
	Namespaces namespace.Namespaces     `json:"namespaces"`
	Expiry     int64                    `json:"expiry"`
	Controller string                   `json:"controllerPublicKey"`
	Metadata   cipher.SessionSettledMeta `json:"metadata,omitempty"`
}

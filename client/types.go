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

// Package client wires the cipher keystore, transport actor, request
// router, and pairing manager into the Dapp/Wallet façade an embedding
// application drives. Handler interfaces are deliberately narrow (spec §9
// "Dynamic dispatch") — each is one or two methods, modeled as a
// capability set the caller supplies at construction.
package client

import (
	"context"

	"github.com/cartera-mesh/gomesh/cipher"
	"github.com/cartera-mesh/gomesh/namespace"
)

// SessionProposeRequest is the payload of an inbound wc_sessionPropose
// (spec §6.4 WalletSettlementHandler::settlement).
type SessionProposeRequest struct {
	ProposerPublicKey string               `json:"proposerPublicKey"`
	Namespaces        namespace.Namespaces `json:"namespaces"`
	Metadata          cipher.SessionSettledMeta `json:"metadata,omitempty"`
}

// SessionRequest is the payload of an inbound wc_sessionRequest (spec §6.4
// SessionHandler::request).
type SessionRequest struct {
	ChainID string `json:"chainId"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// WalletRequestResponse is what a SessionHandler returns for a
// SessionRequest.
type WalletRequestResponse struct {
	Result any `json:"result,omitempty"`
}

// SessionEvent is the payload of an inbound wc_sessionEvent.
type SessionEvent struct {
	ChainID string `json:"chainId"`
	Name    string `json:"name"`
	Data    any    `json:"data"`
}

// SessionDeleteRequest is the payload of an inbound wc_sessionDelete on an
// already-settled session topic.
type SessionDeleteRequest struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WalletSettlementHandler is implemented by the wallet-side application to
// decide whether to accept a proposal and which namespaces to grant.
type WalletSettlementHandler interface {
	Settlement(ctx context.Context, req SessionProposeRequest) (namespace.Namespaces, error)
}

// SessionHandler is implemented by the application to serve inbound
// session RPCs once a session is settled (spec §6.4 SessionHandler).
type SessionHandler interface {
	Request(ctx context.Context, topic string, req SessionRequest) (WalletRequestResponse, error)
	Event(ctx context.Context, topic string, evt SessionEvent)
}

// SessionDeleteHandler is notified when a peer tears down a session (spec
// §6.4 SessionDeleteHandler).
type SessionDeleteHandler interface {
	Handle(ctx context.Context, topic string, req SessionDeleteRequest)
}

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

package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cartera-mesh/gomesh/cipher"
	"github.com/cartera-mesh/gomesh/namespace"
	"github.com/cartera-mesh/gomesh/pairmgr"
	"github.com/cartera-mesh/gomesh/rpc"
	"github.com/cartera-mesh/gomesh/session"
	"github.com/cartera-mesh/gomesh/transport"
)

// proposalHandler implements router.ProposalHandler, adapting inbound
// wc_sessionPropose/wc_sessionSettle RPCs to the Pending Session
// Coordinator and (on the wallet side) the application's
// WalletSettlementHandler.
type proposalHandler struct {
	manager     *pairmgr.Manager
	coordinator *session.Coordinator
	actor       *transport.Actor
	cipher      *cipher.Cipher
	settlement  WalletSettlementHandler // nil on the dapp side
	category    session.Category
}

// Propose handles an inbound wc_sessionPropose. Only meaningful on the
// wallet side: it asks the application's WalletSettlementHandler whether to
// accept, derives the session topic, publishes wc_sessionSettle, and
// notifies the coordinator once the dapp acknowledges (spec §4.4).
func (h *proposalHandler) Propose(ctx context.Context, topic string, req rpc.Request) (any, error) {
	if h.settlement == nil {
		return nil, fmt.Errorf("client: this process has no WalletSettlementHandler configured")
	}

	var proposeReq SessionProposeRequest
	if err := json.Unmarshal(req.Params, &proposeReq); err != nil {
		return nil, fmt.Errorf("client: decode session propose: %w", err)
	}

	grantedNamespaces, err := h.settlement.Settlement(ctx, proposeReq)
	if err != nil {
		return nil, err
	}
	if err := namespace.ValidateAccounts(grantedNamespaces); err != nil {
		return nil, err
	}

	sessionTopic, _, err := h.manager.ProposeSession(ctx, proposeReq.ProposerPublicKey)
	if err != nil {
		return nil, err
	}

	settled := cipher.SessionSettled{
		Topic:      sessionTopic,
		Namespaces: grantedNamespaces,
		Controller: proposeReq.ProposerPublicKey,
		Metadata:   proposeReq.Metadata,
	}
	sess := session.New(sessionTopic, settled, h.actor, h.cipher)

	settleReq := &session.SettleRequest{
		Namespaces: grantedNamespaces,
		Controller: proposeReq.ProposerPublicKey,
		Metadata:   proposeReq.Metadata,
	}
	if err := h.coordinator.Settled(ctx, h.manager.Topic(), h.manager, sess, session.CategoryWallet, settleReq); err != nil {
		return nil, err
	}

	return true, nil
}

// Settle handles an inbound wc_sessionSettle. Only meaningful on the dapp
// side: the wallet has accepted and is handing back the settled
// namespaces; this fulfills the pending proposal waiter.
func (h *proposalHandler) Settle(ctx context.Context, topic string, req rpc.Request) (any, error) {
	var settleReq session.SettleRequest
	if err := json.Unmarshal(req.Params, &settleReq); err != nil {
		return nil, fmt.Errorf("client: decode session settle: %w", err)
	}

	settled := cipher.SessionSettled{
		Topic:      topic,
		Namespaces: settleReq.Namespaces,
		Expiry:     settleReq.Expiry,
		Controller: settleReq.Controller,
		Metadata:   settleReq.Metadata,
	}
	sess := session.New(topic, settled, h.actor, h.cipher)

	if err := h.coordinator.Settled(ctx, h.manager.Topic(), h.manager, sess, session.CategoryDapp, nil); err != nil {
		return nil, err
	}
	return true, nil
}

// sessionHandler implements router.SessionHandler, forwarding inbound
// session RPCs to the application's SessionHandler/SessionDeleteHandler.
type sessionHandler struct {
	manager *pairmgr.Manager
	request SessionHandler       // nil if this process never serves requests
	delete  SessionDeleteHandler // nil if the application doesn't care
}

func (h *sessionHandler) Request(ctx context.Context, topic string, req rpc.Request) (any, error) {
	if h.request == nil {
		return nil, fmt.Errorf("client: no SessionHandler configured")
	}
	var sreq SessionRequest
	if err := json.Unmarshal(req.Params, &sreq); err != nil {
		return nil, fmt.Errorf("client: decode session request: %w", err)
	}
	return h.request.Request(ctx, topic, sreq)
}

func (h *sessionHandler) Event(ctx context.Context, topic string, req rpc.Request) (any, error) {
	if h.request == nil {
		return true, nil
	}
	var evt SessionEvent
	if err := json.Unmarshal(req.Params, &evt); err != nil {
		return nil, fmt.Errorf("client: decode session event: %w", err)
	}
	h.request.Event(ctx, topic, evt)
	return true, nil
}

func (h *sessionHandler) Update(_ context.Context, _ string, _ rpc.Request) (any, error) {
	return true, nil
}

func (h *sessionHandler) Extend(_ context.Context, _ string, _ rpc.Request) (any, error) {
	return true, nil
}

func (h *sessionHandler) Ping(_ context.Context, _ string, _ rpc.Request) (any, error) {
	return true, nil
}

func (h *sessionHandler) Delete(ctx context.Context, topic string, req rpc.Request) (any, error) {
	if h.delete != nil {
		var dreq SessionDeleteRequest
		if err := json.Unmarshal(req.Params, &dreq); err == nil {
			h.delete.Handle(ctx, topic, dreq)
		}
	}
	if err := h.manager.DeleteOneSession(ctx, topic); err != nil {
		return nil, err
	}
	return true, nil
}

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

// Package router implements the Request Router (component F, spec §4.3):
// it inspects a decoded inbound request's method and dispatches to the
// pairing manager, proposal handler, or session handler, then posts the
// handler's typed response back through the Transport Actor.
package router

import (
	"context"

	"github.com/cartera-mesh/gomesh/internal/logx"
	"github.com/cartera-mesh/gomesh/rpc"
	"github.com/cartera-mesh/gomesh/transport"
)

// PairingHandler serves pairing-level RPCs (spec §4.2).
type PairingHandler interface {
	Ping(ctx context.Context, topic string, req rpc.Request) (any, error)
	Extend(ctx context.Context, topic string, req rpc.Request) (any, error)
	Delete(ctx context.Context, topic string, req rpc.Request) (any, error)
}

// ProposalHandler serves session proposal/settlement (component H).
type ProposalHandler interface {
	Propose(ctx context.Context, topic string, req rpc.Request) (any, error)
	Settle(ctx context.Context, topic string, req rpc.Request) (any, error)
}

// SessionHandler serves an already-settled session's RPCs (component I).
type SessionHandler interface {
	Request(ctx context.Context, topic string, req rpc.Request) (any, error)
	Event(ctx context.Context, topic string, req rpc.Request) (any, error)
	Update(ctx context.Context, topic string, req rpc.Request) (any, error)
	Extend(ctx context.Context, topic string, req rpc.Request) (any, error)
	Ping(ctx context.Context, topic string, req rpc.Request) (any, error)
	Delete(ctx context.Context, topic string, req rpc.Request) (any, error)
}

// Router owns the dispatch table and the Transport Actor used to reply.
type Router struct {
	actor    *transport.Actor
	pairing  PairingHandler
	proposal ProposalHandler
	session  SessionHandler
}

// New constructs a Router. Pass the result's Handle method as the
// transport.RequestHandler given to transport.New.
func New(actor *transport.Actor, pairing PairingHandler, proposal ProposalHandler, session SessionHandler) *Router {
	return &Router{actor: actor, pairing: pairing, proposal: proposal, session: session}
}

// Handle dispatches one decoded inbound request. The Transport Actor
// already runs this on its own goroutine per frame, so Handle itself never
// needs to fork further work; it simply must never block the actor's
// mailbox, which it doesn't since it only touches its own handlers and
// calls back into the actor's thread-safe publish path.
func (r *Router) Handle(topic string, req rpc.Request) {
	ctx := context.Background()

	result, err := r.dispatch(ctx, topic, req)
	if err != nil {
		logx.Warn("router: handler error method=%s topic=%s: %v", req.Method, topic, err)
		resp := rpc.NewErrorResponse(req.ID, rpc.UnknownError())
		if pubErr := r.actor.PublishResponse(ctx, topic, req.Method, resp); pubErr != nil {
			logx.Warn("router: failed to publish error response: %v", pubErr)
		}
		return
	}

	resp, err := rpc.NewResultResponse(req.ID, result)
	if err != nil {
		logx.Warn("router: failed to marshal result for method=%s: %v", req.Method, err)
		resp = rpc.NewErrorResponse(req.ID, rpc.UnknownError())
	}
	if pubErr := r.actor.PublishResponse(ctx, topic, req.Method, resp); pubErr != nil {
		logx.Warn("router: failed to publish response: %v", pubErr)
	}
}

func (r *Router) dispatch(ctx context.Context, topic string, req rpc.Request) (any, error) {
	switch req.Method {
	case rpc.MethodPairingPing:
		return r.pairing.Ping(ctx, topic, req)
	case rpc.MethodPairingExtend:
		return r.pairing.Extend(ctx, topic, req)
	case rpc.MethodPairingDelete:
		return r.pairing.Delete(ctx, topic, req)
	case rpc.MethodSessionPropose:
		return r.proposal.Propose(ctx, topic, req)
	case rpc.MethodSessionSettle:
		return r.proposal.Settle(ctx, topic, req)
	case rpc.MethodSessionRequest:
		return r.session.Request(ctx, topic, req)
	case rpc.MethodSessionEvent:
		return r.session.Event(ctx, topic, req)
	case rpc.MethodSessionUpdate:
		return r.session.Update(ctx, topic, req)
	case rpc.MethodSessionExtend:
		return r.session.Extend(ctx, topic, req)
	case rpc.MethodSessionPing:
		return r.session.Ping(ctx, topic, req)
	case rpc.MethodSessionDelete:
		return r.session.Delete(ctx, topic, req)
	default:
		return nil, errUnknownMethod{method: req.Method}
	}
}

type errUnknownMethod struct {
	method string
}

func (e errUnknownMethod) Error() string {
	return "router: unknown method " + e.method
}

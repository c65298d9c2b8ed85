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
	"fmt"
	"time"

	"github.com/cartera-mesh/gomesh/cipher"
	"github.com/cartera-mesh/gomesh/config"
	"github.com/cartera-mesh/gomesh/pairing"
	"github.com/cartera-mesh/gomesh/pairmgr"
	"github.com/cartera-mesh/gomesh/relay"
	"github.com/cartera-mesh/gomesh/router"
	"github.com/cartera-mesh/gomesh/rpc"
	"github.com/cartera-mesh/gomesh/session"
	"github.com/cartera-mesh/gomesh/store"
	"github.com/cartera-mesh/gomesh/transport"
)

// Client wires components C through I into a single runnable façade: a
// Cipher keystore, a Transport Actor over a relay connection, a Request
// Router, a Pairing Manager, and a Pending Session Coordinator.
type Client struct {
	Cipher      *cipher.Cipher
	Manager     *pairmgr.Manager
	Coordinator *session.Coordinator
	actor       *transport.Actor

	cancel context.CancelFunc
}

// Options bundles the application-supplied capability handlers (spec §9
// "Dynamic dispatch"). A dapp typically supplies none of these; a wallet
// supplies Settlement at minimum.
type Options struct {
	Settlement WalletSettlementHandler
	Session    SessionHandler
	Delete     SessionDeleteHandler
}

// New connects to the relay named in cfg, restores any persisted pairing
// from kv, and starts the Transport Actor's run loop. Callers should defer
// Close.
func New(ctx context.Context, cfg config.Config, kv store.KVStore, opts Options) (*Client, error) {
	c, err := cipher.New(kv, "")
	if err != nil {
		return nil, fmt.Errorf("client: restore cipher: %w", err)
	}

	dialCtx, cancelDial := context.WithTimeout(ctx, cfg.Relay.DialTimeout)
	defer cancelDial()
	relayClient, err := relay.Dial(dialCtx, cfg.Relay.URL)
	if err != nil {
		return nil, fmt.Errorf("client: dial relay: %w", err)
	}

	// The Transport Actor's handler and the Request Router hold references
	// to each other (spec §9 "Cyclic references"): the actor is built first
	// with an indirection that forwards to whichever router is wired in
	// below, once the router itself has an actor to reply through.
	var rt *router.Router
	actor := transport.New(relayClient, c, func(topic string, req rpc.Request) {
		if rt != nil {
			rt.Handle(topic, req)
		}
	})

	manager := pairmgr.New(c, actor)
	coordinator := session.New(actor)

	proposal := &proposalHandler{
		manager:     manager,
		coordinator: coordinator,
		actor:       actor,
		cipher:      c,
		settlement:  opts.Settlement,
	}
	sessHandler := &sessionHandler{manager: manager, request: opts.Session, delete: opts.Delete}
	rt = router.New(actor, manager, proposal, sessHandler)

	runCtx, cancel := context.WithCancel(ctx)
	go actor.Run(runCtx)

	if err := manager.Restore(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("client: restore pairing manager: %w", err)
	}

	return &Client{
		Cipher:      c,
		Manager:     manager,
		Coordinator: coordinator,
		actor:       actor,
		cancel:      cancel,
	}, nil
}

// Close shuts down the Transport Actor and its relay connection.
func (cl *Client) Close() error {
	cl.cancel()
	cl.actor.Shutdown()
	return nil
}

// Pair installs a newly generated pairing (dapp side) and returns its
// shareable URI.
func (cl *Client) Pair(ctx context.Context, meta pairing.Metadata) (string, error) {
	p, err := pairing.Generate(meta)
	if err != nil {
		return "", err
	}
	if err := cl.Manager.SetPairing(ctx, p); err != nil {
		return "", err
	}
	return p.String(), nil
}

// PairFromURI imports a pairing from a dapp-issued URI (wallet side).
func (cl *Client) PairFromURI(ctx context.Context, uri string) error {
	p, err := pairing.ParseURI(uri)
	if err != nil {
		return err
	}
	return cl.Manager.SetPairing(ctx, p)
}

// Propose starts a session proposal on the active pairing topic and blocks
// until it settles, times out, or is superseded (spec §4.4).
func (cl *Client) Propose(ctx context.Context, timeout time.Duration) (*session.ClientSession, error) {
	topic := cl.Manager.Topic()
	handle := cl.Coordinator.Add(topic)

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	out, err := handle.Wait(waitCtx)
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

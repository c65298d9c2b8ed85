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
	"sync"

	"github.com/cartera-mesh/gomesh/internal/logx"
	"github.com/cartera-mesh/gomesh/mesherr"
	"github.com/cartera-mesh/gomesh/rpc"
	"github.com/cartera-mesh/gomesh/transport"
)

// Registrar installs a settled ClientSession into whatever registry the
// Pairing Manager keeps (so the Request Router can later address it by
// topic). Kept as a narrow interface rather than an import of pairmgr to
// avoid a dependency cycle (pairmgr depends on session, not vice versa).
type Registrar interface {
	RegisterSession(topic string, sess *ClientSession)
}

// Coordinator owns a map pairing_topic -> pending proposal waiter (spec
// §4.4). Each pairing topic has at most one pending proposal; a second Add
// supersedes the first, resolving the earlier waiter with ErrSuperseded.
type Coordinator struct {
	actor *transport.Actor

	mu      sync.Mutex
	pending map[string]*ProposalHandle
}

// New constructs a Coordinator that publishes wc_sessionSettle through
// actor when settling on the wallet side.
func New(actor *transport.Actor) *Coordinator {
	return &Coordinator{actor: actor, pending: make(map[string]*ProposalHandle)}
}

// Add registers a waiter for pairingTopic, returning a handle the caller
// blocks on. Any previously pending proposal on the same topic is
// superseded immediately.
func (c *Coordinator) Add(pairingTopic string) *ProposalHandle {
	handle := &ProposalHandle{topic: pairingTopic, ch: make(chan Outcome, 1)}

	c.mu.Lock()
	if prev, ok := c.pending[pairingTopic]; ok {
		prev.ch <- Outcome{Err: mesherr.ErrSuperseded}
		close(prev.ch)
	}
	c.pending[pairingTopic] = handle
	c.mu.Unlock()

	return handle
}

// Settled installs sess via registrar, optionally publishes wc_sessionSettle
// (wallet side only) and awaits the dapp's acknowledgment, then fulfills the
// waiter parked on pairingTopic (spec §4.4 steps 1-3).
func (c *Coordinator) Settled(ctx context.Context, pairingTopic string, registrar Registrar, sess *ClientSession, category Category, settleReq *SettleRequest) error {
	registrar.RegisterSession(sess.Topic(), sess)

	if category == CategoryWallet {
		if settleReq == nil {
			return mesherr.ErrNonExistingPairing
		}
		resp, err := c.actor.SendRequest(ctx, sess.Topic(), rpc.MethodSessionSettle, settleReq)
		if err != nil {
			c.resolve(pairingTopic, Outcome{Err: err})
			return err
		}
		if resp.Error != nil {
			err := &acknowledgeError{msg: resp.Error.Message}
			c.resolve(pairingTopic, Outcome{Err: err})
			return err
		}
	}

	c.resolve(pairingTopic, Outcome{Session: sess})
	return nil
}

func (c *Coordinator) resolve(pairingTopic string, out Outcome) {
	c.mu.Lock()
	handle, ok := c.pending[pairingTopic]
	if ok {
		delete(c.pending, pairingTopic)
	}
	c.mu.Unlock()

	if !ok {
		logx.Debug("session: no pending proposal for topic %s", pairingTopic)
		return
	}
	handle.ch <- out
	close(handle.ch)
}

type acknowledgeError struct{ msg string }

func (e *acknowledgeError) Error() string { return "session settle not acknowledged: " + e.msg }

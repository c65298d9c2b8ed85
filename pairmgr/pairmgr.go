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

// Package pairmgr implements the Pairing Manager (component G, spec §4.2):
// it owns a single pairing topic, restores sessions on startup, and
// handles pair-level RPCs (ping/extend/delete), including the cascading
// session teardown a pairing delete triggers.
package pairmgr

import (
	"context"
	"sync"
	"time"

	"github.com/cartera-mesh/gomesh/cipher"
	"github.com/cartera-mesh/gomesh/internal/logx"
	"github.com/cartera-mesh/gomesh/mesherr"
	"github.com/cartera-mesh/gomesh/pairing"
	"github.com/cartera-mesh/gomesh/rpc"
	"github.com/cartera-mesh/gomesh/session"
	"github.com/cartera-mesh/gomesh/transport"
)

// State mirrors the state machine in spec §4.2.
type State int

const (
	StateNone State = iota
	StatePaired
	StateDead
)

// restoreTimeout bounds the startup ping used to decide whether a restored
// pairing is still alive.
const restoreTimeout = 3 * time.Second

// Manager is the Pairing Manager. It is single-writer over its own state
// (state, topic, session registry) guarded by a mutex, matching the
// lock-guarded-struct option spec §9 allows in place of an actor library.
type Manager struct {
	cipher *cipher.Cipher
	actor  *transport.Actor

	mu       sync.RWMutex
	state    State
	topic    string
	sessions map[string]*session.ClientSession
}

// New constructs a Manager with no pairing installed.
func New(c *cipher.Cipher, actor *transport.Actor) *Manager {
	return &Manager{cipher: c, actor: actor, state: StateNone, sessions: make(map[string]*session.ClientSession)}
}

// Restore performs the startup sequence from spec §4.2: if the cipher
// restored a persisted pairing, resubscribe to it and every session topic,
// then ping the pairing with a short timeout. On timeout/error the pairing
// is unsubscribed and reset, returning to None.
func (m *Manager) Restore(ctx context.Context) error {
	p, found, err := m.cipher.Pairing()
	if err != nil {
		return err
	}
	if !found {
		m.setState(StateNone, "")
		return nil
	}

	if err := m.actor.Subscribe(ctx, p.Topic); err != nil {
		return err
	}
	for _, topic := range m.cipher.Subscriptions() {
		if topic == p.Topic {
			continue
		}
		if err := m.actor.Subscribe(ctx, topic); err != nil {
			logx.Warn("pairmgr: resubscribe failed for %s: %v", topic, err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, restoreTimeout)
	defer cancel()
	if _, err := m.actor.SendRequest(pingCtx, p.Topic, rpc.MethodPairingPing, nil); err != nil {
		logx.Info("pairmgr: restore ping failed, resetting: %v", err)
		_ = m.actor.Unsubscribe(ctx, p.Topic)
		m.cipher.Reset()
		m.setState(StateDead, "")
		return nil
	}

	m.setState(StatePaired, p.Topic)
	return nil
}

// SetPairing idempotently installs a new pairing, wiping any prior state.
func (m *Manager) SetPairing(ctx context.Context, p pairing.Pairing) error {
	if err := m.cipher.SetPairing(&p); err != nil {
		return err
	}
	if err := m.actor.Subscribe(ctx, p.Topic); err != nil {
		return err
	}
	m.setState(StatePaired, p.Topic)
	return nil
}

func (m *Manager) setState(s State, topic string) {
	m.mu.Lock()
	m.state = s
	m.topic = topic
	if s != StatePaired {
		m.sessions = make(map[string]*session.ClientSession)
	}
	m.mu.Unlock()
}

// State returns the manager's current pairing state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Topic returns the active pairing topic, or "" if none.
func (m *Manager) Topic() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topic
}

// ProposeSession allocates a session topic via the cipher keystore,
// subscribes to it, and returns it for the Proposal Handler to continue
// the settlement flow (spec §4.2 "session_propose").
func (m *Manager) ProposeSession(ctx context.Context, controllerPKHex string) (topic string, theirPublic []byte, err error) {
	if m.State() != StatePaired {
		return "", nil, mesherr.ErrNonExistingPairing
	}
	topic, theirPublic, err = m.cipher.CreateCommonTopic(controllerPKHex)
	if err != nil {
		return "", nil, err
	}
	if err := m.actor.Subscribe(ctx, topic); err != nil {
		return "", nil, err
	}
	return topic, theirPublic, nil
}

// RegisterSession implements session.Registrar, installing sess in this
// manager's session registry so the Request Router can later address it.
func (m *Manager) RegisterSession(topic string, sess *session.ClientSession) {
	m.mu.Lock()
	m.sessions[topic] = sess
	m.mu.Unlock()
}

// GetSession looks up a previously registered, settled session by topic.
func (m *Manager) GetSession(topic string) (*session.ClientSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[topic]
	return sess, ok
}

// Ping implements router.PairingHandler: replies to an inbound
// wc_pairingPing with an empty acknowledgment.
func (m *Manager) Ping(_ context.Context, _ string, _ rpc.Request) (any, error) {
	return true, nil
}

// Extend implements router.PairingHandler: extends the active pairing's
// expiry. Pair-extend errors route through their own response tag (see
// rpc.ResponseMetadata for MethodPairingExtend), not PairDelete's.
func (m *Manager) Extend(_ context.Context, topic string, _ rpc.Request) (any, error) {
	if m.Topic() != topic {
		return nil, mesherr.ErrNoPairManager
	}
	return true, nil
}

// Delete implements router.PairingHandler: triggers cascading session
// teardown before resetting the pairing itself (spec §4.2 "pair_delete").
func (m *Manager) Delete(ctx context.Context, topic string, _ rpc.Request) (any, error) {
	if m.Topic() != topic {
		return nil, mesherr.ErrNoPairManager
	}

	m.mu.RLock()
	topics := make([]string, 0, len(m.sessions))
	for t := range m.sessions {
		topics = append(topics, t)
	}
	m.mu.RUnlock()

	for _, t := range topics {
		if err := m.cipher.DeleteSession(t); err != nil {
			logx.Warn("pairmgr: delete session %s failed: %v", t, err)
		}
		_ = m.actor.Unsubscribe(ctx, t)
	}

	m.cipher.Reset()
	m.setState(StateDead, "")
	return true, nil
}

// DeleteOneSession tears down a single settled session without resetting
// the pairing itself, for an inbound wc_sessionDelete on that session's
// topic (as opposed to Delete, which handles a pairing-level delete and
// cascades to every session).
func (m *Manager) DeleteOneSession(ctx context.Context, topic string) error {
	if err := m.cipher.DeleteSession(topic); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, topic)
	m.mu.Unlock()
	return m.actor.Unsubscribe(ctx, topic)
}

// PairPing sends an outbound wc_pairingPing on the active pairing topic and
// waits for acknowledgment, per spec §8 scenario 6. A timeout surfaces as
// OperationTimedOut and leaves the pairing installed.
func (m *Manager) PairPing(ctx context.Context) error {
	topic := m.Topic()
	if topic == "" {
		return mesherr.ErrNonExistingPairing
	}
	_, err := m.actor.SendRequest(ctx, topic, rpc.MethodPairingPing, nil)
	return err
}

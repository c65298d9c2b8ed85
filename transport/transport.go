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

// Package transport implements the Transport Actor (component E, spec
// §4.5): a single-writer guard over the relay client that serializes
// outbound publishes, demultiplexes inbound frames into typed requests and
// responses, and correlates responses to pending requests by (topic, id).
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cartera-mesh/gomesh/cipher"
	"github.com/cartera-mesh/gomesh/internal/logx"
	"github.com/cartera-mesh/gomesh/mesherr"
	"github.com/cartera-mesh/gomesh/relay"
	"github.com/cartera-mesh/gomesh/rpc"
)

// DefaultTimeout is the implicit timeout for a request/response round trip
// (spec §5 "Cancellation and timeouts").
const DefaultTimeout = 5 * time.Second

// RequestHandler receives a decoded inbound request on topic. Implemented
// by the Request Router; the Actor never blocks on it (spec §4.3 "the
// router never blocks waiting for a handler" — here, the actor never
// blocks waiting for the router either, it hands off and keeps pumping).
type RequestHandler func(topic string, req rpc.Request)

type correlationKey struct {
	topic string
	id    uint64
}

// Actor is the Transport Actor. All outbound writes to the relay flow
// through its mailbox goroutine; concurrent callers never touch the relay
// client directly, giving FIFO publish ordering per spec §5.
type Actor struct {
	relay  relay.Client
	cipher *cipher.Cipher

	mailbox chan func()
	done    chan struct{}

	corrMu sync.Mutex
	corr   map[correlationKey]chan rpc.Response

	handler RequestHandler
}

// New constructs an Actor. Call Run in its own goroutine before using
// Publish/SendRequest.
func New(r relay.Client, c *cipher.Cipher, handler RequestHandler) *Actor {
	return &Actor{
		relay:   r,
		cipher:  c,
		mailbox: make(chan func(), 256),
		done:    make(chan struct{}),
		corr:    make(map[correlationKey]chan rpc.Response),
		handler: handler,
	}
}

// Run drives the actor's mailbox and the relay's inbound pump until ctx is
// canceled or Shutdown is called. Intended to run in its own goroutine.
func (a *Actor) Run(ctx context.Context) {
	inbound := a.relay.Inbound()
	for {
		select {
		case <-ctx.Done():
			a.drainShutdown()
			return
		case <-a.done:
			return
		case fn := <-a.mailbox:
			fn()
		case frame, ok := <-inbound:
			if !ok {
				a.drainShutdown()
				return
			}
			a.handleFrame(ctx, frame)
		}
	}
}

// Shutdown flips the termination flag; pending waiters are woken with
// ErrShutdown (spec §5 "Shutdown").
func (a *Actor) Shutdown() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
	a.drainShutdown()
}

func (a *Actor) drainShutdown() {
	a.corrMu.Lock()
	defer a.corrMu.Unlock()
	for key, ch := range a.corr {
		close(ch)
		delete(a.corr, key)
	}
}

// Subscribe/Unsubscribe are idempotent from the caller's perspective; the
// relay adapter is expected to tolerate redundant calls.
func (a *Actor) Subscribe(ctx context.Context, topic string) error {
	errCh := make(chan error, 1)
	a.mailbox <- func() { errCh <- a.relay.Subscribe(ctx, topic) }
	return <-errCh
}

func (a *Actor) Unsubscribe(ctx context.Context, topic string) error {
	errCh := make(chan error, 1)
	a.mailbox <- func() { errCh <- a.relay.Unsubscribe(ctx, topic) }
	return <-errCh
}

// PublishRequest encodes payload for topic, derives the method's relay
// metadata, and publishes it through the actor mailbox.
func (a *Actor) PublishRequest(ctx context.Context, topic, method string, req rpc.Request) error {
	meta, ok := rpc.RequestMetadata(method)
	if !ok {
		return fmt.Errorf("transport: unknown method %q", method)
	}
	return a.publish(ctx, topic, req, meta)
}

// PublishResponse encodes resp for topic using method's response metadata.
func (a *Actor) PublishResponse(ctx context.Context, topic, method string, resp rpc.Response) error {
	meta, ok := rpc.ResponseMetadata(method)
	if !ok {
		return fmt.Errorf("transport: unknown method %q", method)
	}
	return a.publish(ctx, topic, resp, meta)
}

func (a *Actor) publish(ctx context.Context, topic string, payload any, meta rpc.RelayMetadata) error {
	encoded, err := a.cipher.Encode(topic, payload)
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	a.mailbox <- func() {
		errCh <- a.relay.Publish(ctx, topic, encoded, meta.Tag, uint64(meta.TTL.Seconds()), meta.Prompt)
	}
	return <-errCh
}

// SendRequest publishes a request on topic and blocks until a correlated
// response arrives, the context is canceled, DefaultTimeout elapses, or the
// actor shuts down.
func (a *Actor) SendRequest(ctx context.Context, topic, method string, params any) (rpc.Response, error) {
	req, err := rpc.NewRequest(method, params)
	if err != nil {
		return rpc.Response{}, err
	}

	key := correlationKey{topic: topic, id: req.ID}
	waiter := make(chan rpc.Response, 1)
	a.corrMu.Lock()
	a.corr[key] = waiter
	a.corrMu.Unlock()
	defer func() {
		a.corrMu.Lock()
		delete(a.corr, key)
		a.corrMu.Unlock()
	}()

	if err := a.PublishRequest(ctx, topic, method, req); err != nil {
		return rpc.Response{}, err
	}

	timer := time.NewTimer(DefaultTimeout)
	defer timer.Stop()

	select {
	case resp, ok := <-waiter:
		if !ok {
			return rpc.Response{}, mesherr.ErrShutdown
		}
		return resp, nil
	case <-timer.C:
		return rpc.Response{}, &mesherr.NoResponse{Topic: topic, Method: method}
	case <-ctx.Done():
		return rpc.Response{}, ctx.Err()
	}
}

// handleFrame decrypts an inbound relay frame and classifies it as a
// request or a response (spec §4.5 inbound pump).
func (a *Actor) handleFrame(ctx context.Context, frame relay.Frame) {
	var probe struct {
		Method *string `json:"method"`
	}
	if err := a.cipher.Decode(frame.Topic, frame.Ciphertext, &probe); err != nil {
		logx.Warn("transport: decode failed for topic %s: %v", frame.Topic, err)
		return
	}

	if probe.Method != nil {
		var req rpc.Request
		if err := a.cipher.Decode(frame.Topic, frame.Ciphertext, &req); err != nil {
			logx.Warn("transport: request decode failed for topic %s: %v", frame.Topic, err)
			return
		}
		if a.handler != nil {
			go a.handler(frame.Topic, req)
		}
		return
	}

	var resp rpc.Response
	if err := a.cipher.Decode(frame.Topic, frame.Ciphertext, &resp); err != nil {
		logx.Warn("transport: response decode failed for topic %s: %v", frame.Topic, err)
		return
	}
	a.dispatchResponse(frame.Topic, resp)
	_ = ctx
}

// dispatchResponse wakes exactly the one parked waiter for (topic, id);
// an unmatched response (no waiter, or the waiter already fired) is logged
// and dropped (spec P5).
func (a *Actor) dispatchResponse(topic string, resp rpc.Response) {
	key := correlationKey{topic: topic, id: resp.ID}
	a.corrMu.Lock()
	waiter, ok := a.corr[key]
	if ok {
		delete(a.corr, key)
	}
	a.corrMu.Unlock()

	if !ok {
		logx.Debug("transport: dropping unmatched response topic=%s id=%d", topic, resp.ID)
		return
	}
	select {
	case waiter <- resp:
	default:
		logx.Debug("transport: duplicate response topic=%s id=%d", topic, resp.ID)
	}
}

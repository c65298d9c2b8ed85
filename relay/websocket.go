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

package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cartera-mesh/gomesh/internal/logx"
)

// WSClient implements Client over a single persistent gorilla/websocket
// connection, following the same dial/write/read-pump shape as the
// teacher's pkg/agent/transport/websocket adapter: one mutex around the
// connection for writes, a background goroutine pumping reads, and a
// connected flag guarded by its own lock.
type WSClient struct {
	url string

	writeMu sync.Mutex
	conn    *websocket.Conn

	dialTimeout  time.Duration
	writeTimeout time.Duration

	connMu    sync.RWMutex
	connected bool

	inbound chan Frame
}

// wireEnvelope is the message shape exchanged with the relay over the
// socket: a thin publish/subscribe protocol carrying the already-encrypted
// envelope produced by the cipher package.
type wireEnvelope struct {
	Type    string `json:"type"` // "subscribe" | "unsubscribe" | "publish" | "message"
	Topic   string `json:"topic"`
	Message string `json:"message,omitempty"`
	Tag     uint32 `json:"tag,omitempty"`
	TTL     uint64 `json:"ttl,omitempty"`
	Prompt  bool   `json:"prompt,omitempty"`
}

// Dial connects to a relay WebSocket endpoint and starts its read pump.
func Dial(ctx context.Context, url string) (*WSClient, error) {
	c := &WSClient{
		url:          url,
		dialTimeout:  10 * time.Second,
		writeTimeout: 10 * time.Second,
		inbound:      make(chan Frame, 64),
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *WSClient) connect(ctx context.Context) error {
	dialer := &websocket.Dialer{HandshakeTimeout: c.dialTimeout}
	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("relay: dial failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("relay: dial failed: %w", err)
	}

	c.writeMu.Lock()
	c.conn = conn
	c.writeMu.Unlock()
	c.setConnected(true)

	go c.readPump()
	return nil
}

func (c *WSClient) readPump() {
	defer c.setConnected(false)
	defer close(c.inbound)

	for {
		c.writeMu.Lock()
		conn := c.conn
		c.writeMu.Unlock()
		if conn == nil {
			return
		}

		var env wireEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Warn("relay: read error: %v", err)
			}
			return
		}
		if env.Type != "message" {
			continue
		}
		c.inbound <- Frame{Topic: env.Topic, Ciphertext: env.Message}
	}
}

func (c *WSClient) write(env wireEnvelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("relay: not connected")
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return fmt.Errorf("relay: set write deadline: %w", err)
	}
	if err := c.conn.WriteJSON(env); err != nil {
		c.setConnected(false)
		return fmt.Errorf("relay: write: %w", err)
	}
	return nil
}

func (c *WSClient) Subscribe(_ context.Context, topic string) error {
	return c.write(wireEnvelope{Type: "subscribe", Topic: topic})
}

func (c *WSClient) Unsubscribe(_ context.Context, topic string) error {
	return c.write(wireEnvelope{Type: "unsubscribe", Topic: topic})
}

func (c *WSClient) Publish(_ context.Context, topic, ciphertextB64 string, tag uint32, ttl uint64, prompt bool) error {
	return c.write(wireEnvelope{
		Type:    "publish",
		Topic:   topic,
		Message: ciphertextB64,
		Tag:     tag,
		TTL:     ttl,
		Prompt:  prompt,
	})
}

func (c *WSClient) Inbound() <-chan Frame { return c.inbound }

func (c *WSClient) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.conn == nil {
		return nil
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := c.conn.Close()
	c.conn = nil
	c.setConnected(false)
	return err
}

func (c *WSClient) isConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected
}

func (c *WSClient) setConnected(v bool) {
	c.connMu.Lock()
	c.connected = v
	c.connMu.Unlock()
}

package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 45 * time.Second
	writeTimeout            = 10 * time.Second
	closeGracePeriod        = time.Second
	maxFrameSize            = 64 * 1024
)

// Transport is a duplex channel owned by exactly one session.
type Transport interface {
	// Send writes v as a single JSON frame.
	Send(ctx context.Context, v any) error
	// Receive blocks until the next frame arrives or the channel fails.
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}

// Dialer opens transports.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Transport, error)
}

// WebSocketDialer opens gorilla websocket connections.
type WebSocketDialer struct {
	HandshakeTimeout time.Duration
	Header           http.Header
}

// Dial connects to endpoint. The handshake is bounded by HandshakeTimeout so
// a hung open cannot leave a session connecting forever.
func (d WebSocketDialer) Dial(ctx context.Context, endpoint string) (Transport, error) {
	timeout := d.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
	}
	conn, resp, err := dialer.DialContext(ctx, endpoint, d.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("ws dial %s: %s: %w", endpoint, resp.Status, err)
		}
		return nil, fmt.Errorf("ws dial %s: %w", endpoint, err)
	}
	conn.SetReadLimit(maxFrameSize)
	return &wsTransport{conn: conn}, nil
}

type wsTransport struct {
	conn *websocket.Conn

	writeMu   sync.Mutex // serialises writes, including the close frame
	closeOnce sync.Once
	closeErr  error
}

func (t *wsTransport) Send(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	t.conn.SetWriteDeadline(deadline)
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

// Receive returns text and binary frames alike; the caller decides whether
// the payload parses.
func (t *wsTransport) Receive(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) Close() error {
	t.closeOnce.Do(func() {
		t.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		t.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		t.writeMu.Unlock()
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

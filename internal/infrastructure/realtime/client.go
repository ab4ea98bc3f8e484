package realtime

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/presence"
)

// frame is the outbound wire shape: {"event": ..., "payload": ...}.
type frame struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client wraps a websocket connection as a presence.Conn. The mutex
// serializes writes; gorilla/websocket supports at most one concurrent
// writer per connection.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// Send writes one event frame to the peer.
func (c *Client) Send(event string, payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(frame{Event: event, Payload: payload})
}

var _ presence.Conn = (*Client)(nil)

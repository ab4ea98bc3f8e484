package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/presence"
)

const (
	// EventIdentify binds a connection to an identity. The client sends its
	// session token; the hub verifies it and registers presence.
	EventIdentify = "identify"

	maxInboundBytes = 4096
)

// inbound is the client-to-server wire shape.
type inbound struct {
	Event string `json:"event"`
	Token string `json:"token,omitempty"`
}

// Hub owns the websocket endpoint and drives the presence lifecycle:
// connect, identify (register) and disconnect (unregister).
type Hub struct {
	registry *presence.Registry
	issuer   ports.TokenIssuer
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHub creates the live-connection hub. checkOrigin nil allows all origins,
// matching a browser client served from another host.
func NewHub(registry *presence.Registry, issuer ports.TokenIssuer, log zerolog.Logger, checkOrigin func(*http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		registry: registry,
		issuer:   issuer,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeHTTP upgrades the request and runs the read loop until the peer goes
// away. A connection may register at most one identity at a time; a second
// identify re-registers under the new identity.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(maxInboundBytes)

	client := newClient(conn)
	defer func() {
		h.registry.Unregister(client)
		_ = conn.Close()
	}()

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}
		switch msg.Event {
		case EventIdentify:
			identityID, _, err := h.issuer.Verify(msg.Token)
			if err != nil {
				// Unidentified connections stay open but receive nothing.
				_ = client.Send("error", map[string]string{"message": "invalid token"})
				continue
			}
			h.registry.Register(identityID, client)
			h.log.Debug().Str("identity_id", identityID.String()).Msg("presence registered")
		default:
			// Unknown client events are ignored.
		}
	}
}

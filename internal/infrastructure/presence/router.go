package presence

import (
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// Router implements ports.Notifier over the presence registry. Delivery is
// at-most-once: a missed event is acceptable because the underlying state is
// already durable and visible on next fetch.
type Router struct {
	registry *Registry
	log      zerolog.Logger
}

// NewRouter creates a notification router reading from the given registry.
func NewRouter(registry *Registry, log zerolog.Logger) *Router {
	return &Router{registry: registry, log: log}
}

// Notify delivers the event to the identity's live connection in a detached
// goroutine and returns immediately. Absent presence is a deliberate no-op.
// Delivery failures are logged and swallowed; they must never propagate to
// the triggering mutation.
func (r *Router) Notify(identityID domain.IdentityID, event string, payload interface{}) {
	conn, ok := r.registry.Lookup(identityID)
	if !ok {
		return
	}
	go func() {
		if err := conn.Send(event, payload); err != nil {
			r.log.Warn().
				Err(err).
				Str("identity_id", identityID.String()).
				Str("event", event).
				Msg("notification delivery failed")
		}
	}()
}

var _ ports.Notifier = (*Router)(nil)

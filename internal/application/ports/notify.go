package ports

import "github.com/yusuufashraaf/TMS-backend/internal/domain"

// Notifier routes an event to an identity's live connection, if one exists.
// Delivery is best-effort and asynchronous: no queueing, no retry, and no
// error surfaces to the caller. An identity without a live connection is a
// silent no-op.
type Notifier interface {
	Notify(identityID domain.IdentityID, event string, payload interface{})
}

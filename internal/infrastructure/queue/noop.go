package queue

import (
	"context"
	"time"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// NoopEnqueuer is used when Redis/Asynq is not configured; reminders are
// silently skipped.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueDeadlineReminder(ctx context.Context, taskID domain.TaskID, deadline time.Time) error {
	return nil
}

var _ ports.ReminderEnqueuer = (*NoopEnqueuer)(nil)

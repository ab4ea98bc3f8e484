package ports

import (
	"context"
	"time"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// ReminderEnqueuer schedules async deadline reminders.
type ReminderEnqueuer interface {
	EnqueueDeadlineReminder(ctx context.Context, taskID domain.TaskID, deadline time.Time) error
}

package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

const TypeDeadlineReminder = "task:deadline_reminder"

// ReminderEnqueuer schedules deadline reminders via Asynq.
type ReminderEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewReminderEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *ReminderEnqueuer {
	return &ReminderEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *ReminderEnqueuer) Close() error {
	return q.client.Close()
}

// EnqueueDeadlineReminder schedules a reminder to fire at the deadline.
// Deadlines already in the past fire immediately.
func (q *ReminderEnqueuer) EnqueueDeadlineReminder(ctx context.Context, taskID domain.TaskID, deadline time.Time) error {
	payload, _ := json.Marshal(map[string]string{"task_id": taskID.String()})
	task := asynq.NewTask(TypeDeadlineReminder, payload)
	_, err := q.client.EnqueueContext(ctx, task, asynq.ProcessAt(deadline))
	if err != nil {
		q.log.Warn().Err(err).Str("task_id", taskID.String()).Msg("enqueue deadline reminder failed")
		return err
	}
	return nil
}

var _ ports.ReminderEnqueuer = (*ReminderEnqueuer)(nil)

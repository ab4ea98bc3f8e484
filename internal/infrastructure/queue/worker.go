package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	applicationtask "github.com/yusuufashraaf/TMS-backend/internal/application/task"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// reminderPayload matches the JSON enqueued by EnqueueDeadlineReminder.
type reminderPayload struct {
	TaskID string `json:"task_id"`
}

// Worker runs Asynq handlers. The deadline reminder handler re-reads the
// task at fire time: a task completed before its deadline produces no
// notification, and delivery itself stays best-effort through the router.
type Worker struct {
	srv      *asynq.Server
	mux      *asynq.ServeMux
	tasks    ports.TaskRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, tasks ports.TaskRepository, notifier ports.Notifier, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, tasks: tasks, notifier: notifier, log: log}
	mux.HandleFunc(TypeDeadlineReminder, w.handleDeadlineReminder)
	return w
}

func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleDeadlineReminder(ctx context.Context, t *asynq.Task) error {
	var p reminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("deadline reminder payload invalid")
		return err
	}
	taskID, err := domain.ParseTaskID(p.TaskID)
	if err != nil {
		w.log.Error().Err(err).Str("task_id", p.TaskID).Msg("deadline reminder task id invalid")
		return nil // malformed id will never succeed; drop it
	}
	task, err := w.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err // transient store error; Asynq retries
	}
	if task == nil || task.Status == domain.StatusCompleted || task.AssignedTo == nil {
		return nil
	}
	w.notifier.Notify(*task.AssignedTo, applicationtask.EventTaskOverdue, &applicationtask.TaskEvent{
		Message: "Task deadline has passed: " + task.Title,
		Task:    applicationtask.NewTaskDTO(task),
	})
	return nil
}

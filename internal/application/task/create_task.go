package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

// EventNewTask is delivered to an assignee's live connection when a task is
// assigned to them at creation.
const EventNewTask = "new-task"

// EventTaskOverdue is delivered to an assignee when a deadline passes while
// the task is still not completed.
const EventTaskOverdue = "task-overdue"

// TaskEvent is the notification wire payload: {message, task}.
type TaskEvent struct {
	Message string   `json:"message"`
	Task    *TaskDTO `json:"task"`
}

// TaskDTO is the task shape carried on notification events.
type TaskDTO struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	CreatedBy   string     `json:"createdBy"`
}

// NewTaskDTO maps a domain task onto the event shape.
func NewTaskDTO(t *domain.Task) *TaskDTO {
	dto := &TaskDTO{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Deadline:    t.Deadline,
		CreatedBy:   t.CreatedBy.String(),
	}
	if t.AssignedTo != nil {
		dto.AssignedTo = t.AssignedTo.String()
	}
	return dto
}

type CreateTaskInput struct {
	ProjectID   domain.ProjectID
	Title       string
	Description string
	Priority    domain.Priority
	Status      domain.Status
	Deadline    *time.Time
	AssignedTo  *domain.IdentityID
	CreatedBy   domain.IdentityID
}

type CreateTaskResult struct {
	Task *domain.Task
}

// CreateTask persists a task after validating its foreign references, then
// fires a best-effort new-task notification at the assignee's live
// connection. The notification can never fail the creation: the task is
// durably recorded first and the delivery is detached.
type CreateTask struct {
	tasks      ports.TaskRepository
	projects   ports.ProjectRepository
	identities ports.IdentityRepository
	notifier   ports.Notifier
	reminders  ports.ReminderEnqueuer
	log        zerolog.Logger
}

func NewCreateTask(tasks ports.TaskRepository, projects ports.ProjectRepository, identities ports.IdentityRepository, notifier ports.Notifier, reminders ports.ReminderEnqueuer, log zerolog.Logger) *CreateTask {
	return &CreateTask{
		tasks:      tasks,
		projects:   projects,
		identities: identities,
		notifier:   notifier,
		reminders:  reminders,
		log:        log,
	}
}

func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*CreateTaskResult, error) {
	exists, err := uc.projects.Exists(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domerrors.ErrProjectNotFound
	}
	if input.AssignedTo != nil {
		assignee, err := uc.identities.GetByID(ctx, *input.AssignedTo)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, domerrors.ErrAssigneeNotFound
		}
	}
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	now := time.Now()
	t := &domain.Task{
		ID:          domain.NewTaskID(uuid.New()),
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      status,
		Deadline:    input.Deadline,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	if t.AssignedTo != nil {
		uc.notifier.Notify(*t.AssignedTo, EventNewTask, &TaskEvent{
			Message: "You have been assigned a new task: " + t.Title,
			Task:    NewTaskDTO(t),
		})
	}
	if t.Deadline != nil && uc.reminders != nil {
		if err := uc.reminders.EnqueueDeadlineReminder(ctx, t.ID, *t.Deadline); err != nil {
			uc.log.Warn().Err(err).Str("task_id", t.ID.String()).Msg("enqueue deadline reminder failed")
		}
	}
	return &CreateTaskResult{Task: t}, nil
}

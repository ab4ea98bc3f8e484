package task

import (
	"context"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

type ListTasksInput struct {
	Status   *domain.Status
	Priority *domain.Priority
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

type ListTasksResult struct {
	Tasks []*domain.Task
	Total int
}

// ListTasks pages through tasks with optional status/priority filters.
type ListTasks struct {
	tasks ports.TaskRepository
}

func NewListTasks(tasks ports.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

func (uc *ListTasks) Execute(ctx context.Context, input ListTasksInput) (*ListTasksResult, error) {
	tasks, total, err := uc.tasks.List(ctx, ports.TaskFilter{
		Status:   input.Status,
		Priority: input.Priority,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ListTasksResult{Tasks: tasks, Total: total}, nil
}

// GetTask fetches a task visible to the given identity (its creator or
// assignee). Anything else is not found.
type GetTask struct {
	tasks ports.TaskRepository
}

func NewGetTask(tasks ports.TaskRepository) *GetTask {
	return &GetTask{tasks: tasks}
}

func (uc *GetTask) Execute(ctx context.Context, id domain.TaskID, identity domain.IdentityID) (*domain.Task, error) {
	t, err := uc.tasks.GetForIdentity(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	return t, nil
}

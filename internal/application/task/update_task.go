package task

import (
	"context"
	"time"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
// ClearAssignee distinguishes "unassign" from "leave as is".
type UpdateTaskInput struct {
	TaskID        domain.TaskID
	Actor         domain.IdentityID
	Title         *string
	Description   *string
	Priority      *domain.Priority
	Status        *domain.Status
	Deadline      *time.Time
	AssignedTo    *domain.IdentityID
	ClearAssignee bool
}

type UpdateTaskResult struct {
	Task *domain.Task
}

// UpdateTask applies a partial update under the ownership rules: the creator
// may change any field; the assignee may change the status and nothing else.
// Identities unrelated to the task cannot see it at all (not found, not
// forbidden).
type UpdateTask struct {
	tasks      ports.TaskRepository
	identities ports.IdentityRepository
}

func NewUpdateTask(tasks ports.TaskRepository, identities ports.IdentityRepository) *UpdateTask {
	return &UpdateTask{tasks: tasks, identities: identities}
}

func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) (*UpdateTaskResult, error) {
	t, err := uc.tasks.GetForIdentity(ctx, input.TaskID, input.Actor)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}

	isCreator := t.CreatedBy == input.Actor
	if !isCreator {
		// Assignee path: status is the only mutable field. Every transition
		// among the three states is a plain overwrite.
		if input.Title != nil || input.Description != nil || input.Priority != nil ||
			input.Deadline != nil || input.AssignedTo != nil || input.ClearAssignee {
			return nil, domerrors.ErrStatusOnly
		}
		if input.Status == nil {
			return nil, domerrors.ErrStatusOnly
		}
		t.Status = *input.Status
		t.UpdatedAt = time.Now()
		if err := uc.tasks.Update(ctx, t); err != nil {
			return nil, err
		}
		return &UpdateTaskResult{Task: t}, nil
	}

	if input.AssignedTo != nil {
		assignee, err := uc.identities.GetByID(ctx, *input.AssignedTo)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, domerrors.ErrAssigneeNotFound
		}
		t.AssignedTo = input.AssignedTo
	}
	if input.ClearAssignee {
		t.AssignedTo = nil
	}
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Deadline != nil {
		t.Deadline = input.Deadline
	}
	t.UpdatedAt = time.Now()
	if err := uc.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return &UpdateTaskResult{Task: t}, nil
}

package task

import (
	"context"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

// DeleteTask removes a task. Only its creator may delete it; anyone else
// sees not found.
type DeleteTask struct {
	tasks ports.TaskRepository
}

func NewDeleteTask(tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

func (uc *DeleteTask) Execute(ctx context.Context, id domain.TaskID, actor domain.IdentityID) error {
	t, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil || t.CreatedBy != actor {
		return domerrors.ErrTaskNotFound
	}
	return uc.tasks.Delete(ctx, id)
}

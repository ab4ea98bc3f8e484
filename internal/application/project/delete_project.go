package project

import (
	"context"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

type DeleteProjectResult struct {
	TasksDeleted int64
}

// DeleteProject removes a project together with every task that references
// it, as one all-or-nothing unit. Either the project and all N dependent
// tasks are gone, or nothing changed. The store's transaction carries the
// guarantee; this use case only forwards it.
type DeleteProject struct {
	projects ports.ProjectRepository
}

func NewDeleteProject(projects ports.ProjectRepository) *DeleteProject {
	return &DeleteProject{projects: projects}
}

// Execute returns domain/errors.ErrProjectNotFound, with zero writes, when
// the project does not exist.
func (uc *DeleteProject) Execute(ctx context.Context, id domain.ProjectID) (*DeleteProjectResult, error) {
	deleted, err := uc.projects.DeleteCascade(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DeleteProjectResult{TasksDeleted: deleted}, nil
}

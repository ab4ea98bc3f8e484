package project

import (
	"context"
	"time"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

type UpdateProjectInput struct {
	ProjectID   domain.ProjectID
	Name        string
	Description string
	Members     []domain.IdentityID
}

type UpdateProjectResult struct {
	Project *domain.Project
}

// UpdateProject replaces a project's fields after validating member refs.
type UpdateProject struct {
	projects   ports.ProjectRepository
	identities ports.IdentityRepository
}

func NewUpdateProject(projects ports.ProjectRepository, identities ports.IdentityRepository) *UpdateProject {
	return &UpdateProject{projects: projects, identities: identities}
}

func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectResult, error) {
	p, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if len(input.Members) > 0 {
		ok, err := uc.identities.AllExist(ctx, input.Members)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domerrors.ErrMembersNotFound
		}
	}
	p.Name = input.Name
	p.Description = input.Description
	p.Members = input.Members
	p.UpdatedAt = time.Now()
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return &UpdateProjectResult{Project: p}, nil
}

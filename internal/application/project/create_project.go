package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

type CreateProjectInput struct {
	Name        string
	Description string
	CreatedBy   domain.IdentityID
	Members     []domain.IdentityID
}

type CreateProjectResult struct {
	Project *domain.Project
}

// CreateProject validates member references and persists a new project.
type CreateProject struct {
	projects   ports.ProjectRepository
	identities ports.IdentityRepository
}

func NewCreateProject(projects ports.ProjectRepository, identities ports.IdentityRepository) *CreateProject {
	return &CreateProject{projects: projects, identities: identities}
}

func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectResult, error) {
	if len(input.Members) > 0 {
		ok, err := uc.identities.AllExist(ctx, input.Members)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domerrors.ErrMembersNotFound
		}
	}
	now := time.Now()
	p := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
		Members:     input.Members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return &CreateProjectResult{Project: p}, nil
}

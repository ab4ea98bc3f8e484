package project

import (
	"context"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

type ListProjectsInput struct {
	Search string
	Limit  int
	Offset int
}

type ListProjectsResult struct {
	Projects []*domain.Project
	Total    int
}

// ListProjects pages through projects, newest first, optionally filtered by
// a case-insensitive name/description search.
type ListProjects struct {
	projects ports.ProjectRepository
}

func NewListProjects(projects ports.ProjectRepository) *ListProjects {
	return &ListProjects{projects: projects}
}

func (uc *ListProjects) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsResult, error) {
	projects, total, err := uc.projects.List(ctx, ports.ProjectFilter{
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ListProjectsResult{Projects: projects, Total: total}, nil
}

// GetProject fetches a single project by id.
type GetProject struct {
	projects ports.ProjectRepository
}

func NewGetProject(projects ports.ProjectRepository) *GetProject {
	return &GetProject{projects: projects}
}

func (uc *GetProject) Execute(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	p, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	return p, nil
}

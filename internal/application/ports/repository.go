package ports

import (
	"context"
	"time"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// IdentityRepository defines persistence for identities. Read operations
// return the stored secret hash; callers must never serialize it outward.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByID(ctx context.Context, id domain.IdentityID) (*domain.Identity, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Identity, int, error)
	Update(ctx context.Context, identity *domain.Identity) error
	Delete(ctx context.Context, id domain.IdentityID) error
	// AllExist reports whether every id in the set refers to a stored identity.
	AllExist(ctx context.Context, ids []domain.IdentityID) (bool, error)
}

// ProjectFilter narrows and pages project listings.
type ProjectFilter struct {
	Search string // matches name or description, case-insensitive
	Limit  int
	Offset int
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
	Exists(ctx context.Context, id domain.ProjectID) (bool, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, int, error)
	Update(ctx context.Context, project *domain.Project) error
	// DeleteCascade removes the project and every task referencing it as one
	// atomic unit. Returns domain/errors.ErrProjectNotFound without writing
	// anything when the project does not exist; on any later failure the
	// whole unit is rolled back.
	DeleteCascade(ctx context.Context, id domain.ProjectID) (tasksDeleted int64, err error)
}

// TaskFilter narrows, sorts and pages task listings.
type TaskFilter struct {
	Status   *domain.Status
	Priority *domain.Priority
	SortBy   string // "deadline", "priority" or "created_at"
	SortDesc bool
	Limit    int
	Offset   int
}

// TaskStats are the dashboard aggregates.
type TaskStats struct {
	Total            int64
	Completed        int64
	Pending          int64
	Overdue          int64
	CreatedThisMonth int64
	HighPriority     int64
	MediumPriority   int64
	LowPriority      int64
}

// TaskRepository defines persistence for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	// GetForIdentity returns the task only when the identity created it or is
	// assigned to it.
	GetForIdentity(ctx context.Context, id domain.TaskID, identity domain.IdentityID) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id domain.TaskID) error
	Stats(ctx context.Context, now time.Time) (*TaskStats, error)
}

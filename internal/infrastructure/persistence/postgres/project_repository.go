package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

const (
	insertProjectSQL = `INSERT INTO projects (id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	insertMemberSQL  = `INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)`
	deleteMembersSQL = `DELETE FROM project_members WHERE project_id = $1`
	selectProjectSQL = `SELECT p.id, p.name, p.description, p.created_by, p.created_at, p.updated_at,
		COALESCE(ARRAY_AGG(m.user_id::text) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM projects p LEFT JOIN project_members m ON m.project_id = p.id`
	updateProjectSQL = `UPDATE projects SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	projectExistsSQL = `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`

	lockProjectSQL        = `SELECT id FROM projects WHERE id = $1 FOR UPDATE`
	deleteProjectTasksSQL = `DELETE FROM tasks WHERE project_id = $1`
	deleteProjectSQL      = `DELETE FROM projects WHERE id = $1`
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, insertProjectSQL,
		project.ID.String(),
		project.Name,
		project.Description,
		project.CreatedBy.String(),
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return err
	}
	for _, member := range project.Members {
		if _, err := tx.Exec(ctx, insertMemberSQL, project.ID.String(), member.String()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, selectProjectSQL+` WHERE p.id = $1 GROUP BY p.id`, id.String())
	return scanProject(row)
}

func (r *ProjectRepository) Exists(ctx context.Context, id domain.ProjectID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, projectExistsSQL, id.String()).Scan(&exists)
	return exists, err
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, int, error) {
	where := ``
	countSQL := `SELECT COUNT(*) FROM projects p`
	args := []interface{}{}
	if filter.Search != "" {
		where = ` WHERE p.name ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%'`
		args = append(args, filter.Search)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countSQL+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	n := len(args)
	listSQL := selectProjectSQL + where +
		` GROUP BY p.id ORDER BY p.created_at DESC` +
		` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	tag, err := tx.Exec(ctx, updateProjectSQL,
		project.ID.String(),
		project.Name,
		project.Description,
		project.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrProjectNotFound
	}
	if _, err := tx.Exec(ctx, deleteMembersSQL, project.ID.String()); err != nil {
		return err
	}
	for _, member := range project.Members {
		if _, err := tx.Exec(ctx, insertMemberSQL, project.ID.String(), member.String()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteCascade removes the project and all of its tasks inside one
// transaction. The FOR UPDATE lock linearizes concurrent cascades and task
// creation for the same project; if any statement after the existence check
// fails, the deferred rollback leaves the store untouched.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id domain.ProjectID) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var lockedID string
	if err := tx.QueryRow(ctx, lockProjectSQL, id.String()).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domerrors.ErrProjectNotFound
		}
		return 0, err
	}
	tag, err := tx.Exec(ctx, deleteProjectTasksSQL, id.String())
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, deleteMembersSQL, id.String()); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, deleteProjectSQL, id.String()); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		idStr, createdByStr string
		memberStrs          []string
		project             domain.Project
	)
	err := row.Scan(&idStr, &project.Name, &project.Description, &createdByStr, &project.CreatedAt, &project.UpdatedAt, &memberStrs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	id, err := domain.ParseProjectID(idStr)
	if err != nil {
		return nil, err
	}
	createdBy, err := domain.ParseIdentityID(createdByStr)
	if err != nil {
		return nil, err
	}
	members := make([]domain.IdentityID, 0, len(memberStrs))
	for _, m := range memberStrs {
		memberID, err := domain.ParseIdentityID(m)
		if err != nil {
			return nil, err
		}
		members = append(members, memberID)
	}
	project.ID = id
	project.CreatedBy = createdBy
	project.Members = members
	return &project, nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

const (
	insertTaskSQL = `INSERT INTO tasks (id, project_id, title, description, priority, status, deadline, assigned_to, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	selectTaskSQL = `SELECT id, project_id, title, description, priority, status, deadline, assigned_to, created_by, created_at, updated_at FROM tasks`
	updateTaskSQL = `UPDATE tasks SET title = $2, description = $3, priority = $4, status = $5, deadline = $6, assigned_to = $7, updated_at = $8 WHERE id = $1`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = $1`

	taskStatsSQL = `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'Completed'),
		COUNT(*) FILTER (WHERE status = 'Pending'),
		COUNT(*) FILTER (WHERE status <> 'Completed' AND deadline IS NOT NULL AND deadline < $1),
		COUNT(*) FILTER (WHERE created_at >= DATE_TRUNC('month', $1::timestamptz)),
		COUNT(*) FILTER (WHERE priority = 'High'),
		COUNT(*) FILTER (WHERE priority = 'Medium'),
		COUNT(*) FILTER (WHERE priority = 'Low')
		FROM tasks`
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	var assignedTo *string
	if task.AssignedTo != nil {
		s := task.AssignedTo.String()
		assignedTo = &s
	}
	_, err := r.pool.Exec(ctx, insertTaskSQL,
		task.ID.String(),
		task.ProjectID.String(),
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.Deadline,
		assignedTo,
		task.CreatedBy.String(),
		task.CreatedAt,
		task.UpdatedAt,
	)
	// The use case checks project existence first, but a cascade delete can
	// race in between; surface that as the project vanishing, not a 500.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == "tasks_project_id_fkey" {
		return domerrors.ErrProjectNotFound
	}
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, selectTaskSQL+` WHERE id = $1`, id.String())
	return scanTask(row)
}

func (r *TaskRepository) GetForIdentity(ctx context.Context, id domain.TaskID, identity domain.IdentityID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		selectTaskSQL+` WHERE id = $1 AND (created_by = $2 OR assigned_to = $2)`,
		id.String(), identity.String())
	return scanTask(row)
}

func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, int, error) {
	where := ``
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += andWhere(where) + `status = $` + strconv.Itoa(len(args))
	}
	if filter.Priority != nil {
		args = append(args, string(*filter.Priority))
		where += andWhere(where) + `priority = $` + strconv.Itoa(len(args))
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := ` ORDER BY ` + sortColumn(filter.SortBy)
	if filter.SortDesc {
		order += ` DESC`
	}
	args = append(args, filter.Limit, filter.Offset)
	listSQL := selectTaskSQL + where + order +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, task)
	}
	return list, total, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	var assignedTo *string
	if task.AssignedTo != nil {
		s := task.AssignedTo.String()
		assignedTo = &s
	}
	tag, err := r.pool.Exec(ctx, updateTaskSQL,
		task.ID.String(),
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.Deadline,
		assignedTo,
		task.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id domain.TaskID) error {
	tag, err := r.pool.Exec(ctx, deleteTaskSQL, id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Stats(ctx context.Context, now time.Time) (*ports.TaskStats, error) {
	var s ports.TaskStats
	err := r.pool.QueryRow(ctx, taskStatsSQL, now).Scan(
		&s.Total,
		&s.Completed,
		&s.Pending,
		&s.Overdue,
		&s.CreatedThisMonth,
		&s.HighPriority,
		&s.MediumPriority,
		&s.LowPriority,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// sortColumn whitelists sortable columns; anything else falls back to
// creation time.
func sortColumn(s string) string {
	switch s {
	case "deadline", "priority":
		return s
	}
	return "created_at"
}

func andWhere(where string) string {
	if where == "" {
		return ` WHERE `
	}
	return ` AND `
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		idStr, projectStr, prioStr, statusStr, createdByStr string
		assignedStr                                         *string
		task                                                domain.Task
	)
	err := row.Scan(&idStr, &projectStr, &task.Title, &task.Description, &prioStr, &statusStr,
		&task.Deadline, &assignedStr, &createdByStr, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	id, err := domain.ParseTaskID(idStr)
	if err != nil {
		return nil, err
	}
	projectID, err := domain.ParseProjectID(projectStr)
	if err != nil {
		return nil, err
	}
	createdBy, err := domain.ParseIdentityID(createdByStr)
	if err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(prioStr)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}
	if assignedStr != nil {
		assignee, err := domain.ParseIdentityID(*assignedStr)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = &assignee
	}
	task.ID = id
	task.ProjectID = projectID
	task.CreatedBy = createdBy
	task.Priority = priority
	task.Status = status
	return &task, nil
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

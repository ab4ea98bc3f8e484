package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const (
	insertIdentitySQL = `INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	selectIdentitySQL  = `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users`
	updateIdentitySQL  = `UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5, updated_at = $6 WHERE id = $1`
	deleteIdentitySQL  = `DELETE FROM users WHERE id = $1`
	countIdentitiesSQL = `SELECT COUNT(*) FROM users`
	countByIDSetSQL    = `SELECT COUNT(*) FROM users WHERE id = ANY($1::uuid[])`
)

type IdentityRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	_, err := r.pool.Exec(ctx, insertIdentitySQL,
		identity.ID.String(),
		identity.DisplayName,
		identity.Email,
		identity.SecretHash,
		identity.Role.String(),
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domerrors.ErrEmailExists
	}
	return err
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	row := r.pool.QueryRow(ctx, selectIdentitySQL+` WHERE email = LOWER($1)`, email)
	return scanIdentity(row)
}

func (r *IdentityRepository) GetByID(ctx context.Context, id domain.IdentityID) (*domain.Identity, error) {
	row := r.pool.QueryRow(ctx, selectIdentitySQL+` WHERE id = $1`, id.String())
	return scanIdentity(row)
}

func (r *IdentityRepository) List(ctx context.Context, limit, offset int) ([]*domain.Identity, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, countIdentitiesSQL).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, selectIdentitySQL+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []*domain.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, identity)
	}
	return list, total, rows.Err()
}

func (r *IdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	tag, err := r.pool.Exec(ctx, updateIdentitySQL,
		identity.ID.String(),
		identity.DisplayName,
		identity.Email,
		identity.SecretHash,
		identity.Role.String(),
		identity.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domerrors.ErrEmailExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id domain.IdentityID) error {
	tag, err := r.pool.Exec(ctx, deleteIdentitySQL, id.String())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return domerrors.ErrIdentityInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityRepository) AllExist(ctx context.Context, ids []domain.IdentityID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	// De-duplicate so the count comparison holds for repeated refs.
	seen := make(map[domain.IdentityID]struct{}, len(ids))
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		strs = append(strs, id.String())
	}
	var count int
	if err := r.pool.QueryRow(ctx, countByIDSetSQL, strs).Scan(&count); err != nil {
		return false, err
	}
	return count == len(strs), nil
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var (
		idStr, roleStr string
		identity       domain.Identity
	)
	err := row.Scan(&idStr, &identity.DisplayName, &identity.Email, &identity.SecretHash, &roleStr, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	id, err := domain.ParseIdentityID(idStr)
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	identity.ID = id
	identity.Role = role
	return &identity, nil
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

// AccessLevelRepository handles access level (role) data access.
type AccessLevelRepository struct {
	pool *pgxpool.Pool
}

// NewAccessLevelRepository creates a new AccessLevelRepository.
func NewAccessLevelRepository(pool *pgxpool.Pool) *AccessLevelRepository {
	return &AccessLevelRepository{pool: pool}
}

func (r *AccessLevelRepository) Create(ctx context.Context, al *model.AccessLevel) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO access_levels (name, permissions)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		al.Name, al.Permissions,
	).Scan(&al.ID, &al.CreatedAt, &al.UpdatedAt)
}

func (r *AccessLevelRepository) GetByID(ctx context.Context, id int) (*model.AccessLevel, error) {
	al := &model.AccessLevel{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, permissions, created_at, updated_at
		 FROM access_levels WHERE id = $1`, id,
	).Scan(&al.ID, &al.Name, &al.Permissions, &al.CreatedAt, &al.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return al, nil
}

func (r *AccessLevelRepository) GetAll(ctx context.Context) ([]model.AccessLevel, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, permissions, created_at, updated_at
		 FROM access_levels ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []model.AccessLevel
	for rows.Next() {
		var al model.AccessLevel
		if err := rows.Scan(&al.ID, &al.Name, &al.Permissions, &al.CreatedAt, &al.UpdatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, al)
	}
	return levels, rows.Err()
}

func (r *AccessLevelRepository) Update(ctx context.Context, al *model.AccessLevel) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE access_levels SET name = $1, permissions = $2, updated_at = NOW() WHERE id = $3`,
		al.Name, al.Permissions, al.ID)
	return err
}

func (r *AccessLevelRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM access_levels WHERE id = $1`, id)
	return err
}

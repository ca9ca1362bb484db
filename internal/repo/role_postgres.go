package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresRoleRepo struct {
	q dbtx
}

func (r *postgresRoleRepo) Create(ctx context.Context, role models.Role) (models.Role, error) {
	query := `INSERT INTO roles (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query, role.Name, role.CreatedAt, role.UpdatedAt).Scan(&role.ID)
	if err != nil {
		return models.Role{}, pgError(err, ErrInvalidReference)
	}
	return role, nil
}

func (r *postgresRoleRepo) GetAll(ctx context.Context) ([]models.Role, error) {
	query := `SELECT id, name, created_at, updated_at FROM roles ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *postgresRoleRepo) GetByID(ctx context.Context, id int) (models.Role, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`, id)
}

func (r *postgresRoleRepo) GetByName(ctx context.Context, name string) (models.Role, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *postgresRoleRepo) getOne(ctx context.Context, query string, arg any) (models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role models.Role
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, ErrRoleNotFound
	}
	return role, err
}

func (r *postgresRoleRepo) Update(ctx context.Context, role models.Role) (models.Role, error) {
	query := `UPDATE roles SET name = $1, updated_at = $2 WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, query, role.Name, role.UpdatedAt, role.ID)
	if err != nil {
		return models.Role{}, pgError(err, ErrInvalidReference)
	}
	if err := affected(res, ErrRoleNotFound); err != nil {
		return models.Role{}, err
	}
	return role, nil
}

func (r *postgresRoleRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return pgError(err, ErrInUse)
	}
	return affected(res, ErrRoleNotFound)
}

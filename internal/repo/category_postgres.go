package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresCategoryRepo struct {
	q dbtx
}

func (r *postgresCategoryRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	query := `INSERT INTO categories (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query, c.Name, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		return models.Category{}, pgError(err, ErrInvalidReference)
	}
	return c, nil
}

func (r *postgresCategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM categories ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresCategoryRepo) GetByID(ctx context.Context, id int) (models.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id)
}

func (r *postgresCategoryRepo) GetByName(ctx context.Context, name string) (models.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM categories WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *postgresCategoryRepo) getOne(ctx context.Context, query string, arg any) (models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c models.Category
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *postgresCategoryRepo) Update(ctx context.Context, c models.Category) (models.Category, error) {
	query := `UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, query, c.Name, c.UpdatedAt, c.ID)
	if err != nil {
		return models.Category{}, pgError(err, ErrInvalidReference)
	}
	if err := affected(res, ErrCategoryNotFound); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (r *postgresCategoryRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return pgError(err, ErrInUse)
	}
	return affected(res, ErrCategoryNotFound)
}

package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresServiceRepo struct {
	q dbtx
}

const serviceColumns = `id, name, description, price, duration, category_id, active, created_at, updated_at`

func scanService(row rowScanner) (models.Service, error) {
	var s models.Service
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Duration, &s.CategoryID, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *postgresServiceRepo) Create(ctx context.Context, s models.Service) (models.Service, error) {
	query := `INSERT INTO services (name, description, price, duration, category_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query, s.Name, s.Description, s.Price, s.Duration, s.CategoryID, s.Active, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		return models.Service{}, pgError(err, ErrInvalidReference)
	}
	return s, nil
}

func (r *postgresServiceRepo) GetAll(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *postgresServiceRepo) GetByID(ctx context.Context, id int) (models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	s, err := scanService(r.q.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Service{}, ErrServiceNotFound
	}
	return s, err
}

func (r *postgresServiceRepo) Update(ctx context.Context, s models.Service) (models.Service, error) {
	query := `UPDATE services SET name = $1, description = $2, price = $3, duration = $4, category_id = $5,
		active = $6, updated_at = $7 WHERE id = $8`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, query, s.Name, s.Description, s.Price, s.Duration, s.CategoryID, s.Active, s.UpdatedAt, s.ID)
	if err != nil {
		return models.Service{}, pgError(err, ErrInvalidReference)
	}
	if err := affected(res, ErrServiceNotFound); err != nil {
		return models.Service{}, err
	}
	return s, nil
}

func (r *postgresServiceRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return pgError(err, ErrInUse)
	}
	return affected(res, ErrServiceNotFound)
}

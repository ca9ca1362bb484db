package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresEmployeeRepo struct {
	q dbtx
}

const employeeColumns = `id, first_name, last_name, email, password_hash, role_id, phone_number, active, push_token, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PasswordHash, &e.RoleID,
		&e.PhoneNumber, &e.Active, &e.PushToken, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *postgresEmployeeRepo) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	query := `INSERT INTO employees (first_name, last_name, email, password_hash, role_id, phone_number, active, push_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.RoleID,
		e.PhoneNumber, e.Active, e.PushToken, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return models.Employee{}, pgError(err, ErrInvalidReference)
	}
	return e, nil
}

func (r *postgresEmployeeRepo) GetAll(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *postgresEmployeeRepo) GetByID(ctx context.Context, id int) (models.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

func (r *postgresEmployeeRepo) GetByEmail(ctx context.Context, email string) (models.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *postgresEmployeeRepo) getOne(ctx context.Context, query string, arg any) (models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	e, err := scanEmployee(r.q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Employee{}, ErrEmployeeNotFound
	}
	return e, err
}

func (r *postgresEmployeeRepo) Update(ctx context.Context, e models.Employee) (models.Employee, error) {
	query := `UPDATE employees SET first_name = $1, last_name = $2, email = $3, password_hash = $4, role_id = $5,
		phone_number = $6, active = $7, push_token = $8, updated_at = $9 WHERE id = $10`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, query, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.RoleID,
		e.PhoneNumber, e.Active, e.PushToken, e.UpdatedAt, e.ID)
	if err != nil {
		return models.Employee{}, pgError(err, ErrInvalidReference)
	}
	if err := affected(res, ErrEmployeeNotFound); err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

func (r *postgresEmployeeRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return pgError(err, ErrInUse)
	}
	return affected(res, ErrEmployeeNotFound)
}

func (r *postgresEmployeeRepo) AdminPushTokens(ctx context.Context) ([]string, error) {
	query := `SELECT e.push_token FROM employees e JOIN roles r ON r.id = e.role_id
		WHERE LOWER(r.name) = $1 AND e.active AND e.push_token IS NOT NULL AND e.push_token <> ''
		ORDER BY e.id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, models.AdminRole)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresAppointmentRepo struct {
	q dbtx
}

const appointmentColumns = `id, employee_id, service_id, appointment_date, status, notes, created_at, updated_at`

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(&a.ID, &a.EmployeeID, &a.ServiceID, &a.AppointmentDate, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *postgresAppointmentRepo) Create(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	query := `INSERT INTO appointments (employee_id, service_id, appointment_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query, a.EmployeeID, a.ServiceID, a.AppointmentDate, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		return models.Appointment{}, pgError(err, ErrInvalidReference)
	}
	return a, nil
}

func (r *postgresAppointmentRepo) GetAll(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []any{}
	argIdx := 1
	if f.EmployeeID != nil {
		query += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *f.EmployeeID)
		argIdx++
	}
	if f.ServiceID != nil {
		query += fmt.Sprintf(" AND service_id = $%d", argIdx)
		args = append(args, *f.ServiceID)
		argIdx++
	}
	if f.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*f.Status))
		argIdx++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND appointment_date >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND appointment_date <= $%d", argIdx)
		args = append(args, *f.To)
	}
	query += " ORDER BY appointment_date, id"

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachProducts(ctx, appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *postgresAppointmentRepo) attachProducts(ctx context.Context, appointments []models.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}
	ids := make([]int, len(appointments))
	index := make(map[int]int, len(appointments))
	for i, a := range appointments {
		ids[i] = a.ID
		index[a.ID] = i
		appointments[i].Products = []models.AppointmentProduct{}
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT appointment_id, product_id, quantity FROM appointment_products WHERE appointment_id = ANY($1) ORDER BY appointment_id, product_id`, ids)
	if err != nil {
		return fmt.Errorf("failed to load appointment products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ap models.AppointmentProduct
		if err := rows.Scan(&ap.AppointmentID, &ap.ProductID, &ap.Quantity); err != nil {
			return err
		}
		i := index[ap.AppointmentID]
		appointments[i].Products = append(appointments[i].Products, ap)
	}
	return rows.Err()
}

func (r *postgresAppointmentRepo) GetByID(ctx context.Context, id int) (models.Appointment, error) {
	return r.getOne(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
}

// GetForUpdate reads the appointment and locks its row until the surrounding
// transaction ends.
func (r *postgresAppointmentRepo) GetForUpdate(ctx context.Context, id int) (models.Appointment, error) {
	return r.getOne(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresAppointmentRepo) getOne(ctx context.Context, query string, id int) (models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	a, err := scanAppointment(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	if err != nil {
		return models.Appointment{}, err
	}
	if a.Products, err = r.Products(ctx, id); err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

func (r *postgresAppointmentRepo) Products(ctx context.Context, appointmentID int) ([]models.AppointmentProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx,
		`SELECT appointment_id, product_id, quantity FROM appointment_products WHERE appointment_id = $1 ORDER BY product_id`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.AppointmentProduct{}
	for rows.Next() {
		var ap models.AppointmentProduct
		if err := rows.Scan(&ap.AppointmentID, &ap.ProductID, &ap.Quantity); err != nil {
			return nil, err
		}
		items = append(items, ap)
	}
	return items, rows.Err()
}

func (r *postgresAppointmentRepo) Update(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	query := `UPDATE appointments SET employee_id = $1, service_id = $2, appointment_date = $3, status = $4, notes = $5,
		updated_at = $6 WHERE id = $7`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, query, a.EmployeeID, a.ServiceID, a.AppointmentDate, a.Status, a.Notes, a.UpdatedAt, a.ID)
	if err != nil {
		return models.Appointment{}, pgError(err, ErrInvalidReference)
	}
	if err := affected(res, ErrAppointmentNotFound); err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

func (r *postgresAppointmentRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return pgError(err, ErrInUse)
	}
	return affected(res, ErrAppointmentNotFound)
}

func (r *postgresAppointmentRepo) SetProducts(ctx context.Context, appointmentID int, items []models.AppointmentProduct) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.q.ExecContext(ctx, `DELETE FROM appointment_products WHERE appointment_id = $1`, appointmentID); err != nil {
		return fmt.Errorf("failed to clear appointment products: %w", err)
	}
	for _, it := range items {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO appointment_products (appointment_id, product_id, quantity) VALUES ($1, $2, $3)`,
			appointmentID, it.ProductID, it.Quantity)
		if err != nil {
			return pgError(err, ErrInvalidReference)
		}
	}
	return nil
}

func (r *postgresAppointmentRepo) HasConflict(ctx context.Context, employeeID int, start, end time.Time, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments a
			JOIN services s ON s.id = a.service_id
			WHERE a.employee_id = $1
			  AND a.id <> $2
			  AND a.status <> $3
			  AND a.appointment_date < $4
			  AND a.appointment_date + make_interval(mins => s.duration) > $5
		)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	err := r.q.QueryRowContext(ctx, query, employeeID, excludeID, models.StatusCancelled, end, start).Scan(&exists)
	return exists, err
}

func (r *postgresAppointmentRepo) IDsByService(ctx context.Context, serviceID int) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, `SELECT id FROM appointments WHERE service_id = $1 ORDER BY id`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

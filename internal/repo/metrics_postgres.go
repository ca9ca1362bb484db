package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresMetricsRepo struct {
	q dbtx
}

func (r *postgresMetricsRepo) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m := Metrics{AppointmentsByStatus: map[string]int{}}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM products`, &m.TotalProducts},
		{`SELECT COUNT(*) FROM products WHERE active AND stock < low_stock_threshold`, &m.LowStockCount},
		{`SELECT COUNT(*) FROM services`, &m.TotalServices},
		{`SELECT COUNT(*) FROM employees`, &m.TotalEmployees},
		{`SELECT COUNT(*) FROM inventory_logs`, &m.TotalInventoryMoves},
	}
	for _, c := range counts {
		if err := r.q.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Metrics{}, err
		}
	}

	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments WHERE appointment_date >= $1 AND status <> $2`,
		time.Now().UTC(), models.StatusCancelled).Scan(&m.UpcomingAppointments)
	if err != nil {
		return Metrics{}, err
	}

	rows, err := r.q.QueryContext(ctx, `SELECT status, COUNT(*) FROM appointments GROUP BY status`)
	if err != nil {
		return Metrics{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return Metrics{}, err
		}
		m.AppointmentsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return Metrics{}, err
	}

	err = r.q.QueryRowContext(ctx, `
		SELECT p.name, SUM(ap.quantity) AS total
		FROM appointment_products ap
		JOIN products p ON ap.product_id = p.id
		GROUP BY p.name
		ORDER BY total DESC, p.name
		LIMIT 1
	`).Scan(&m.MostUsedProduct.Name, &m.MostUsedProduct.QuantityTotal)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Metrics{}, err
	}

	return m, nil
}

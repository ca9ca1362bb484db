package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresInventoryLogRepo struct {
	q dbtx
}

// Log inserts a new inventory log row.
func (r *postgresInventoryLogRepo) Log(ctx context.Context, l models.InventoryLog) error {
	query := `INSERT INTO inventory_logs (product_id, appointment_id, change, reason, created_at) VALUES ($1, $2, $3, $4, $5)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if _, err := r.q.ExecContext(ctx, query, l.ProductID, l.AppointmentID, l.Change, l.Reason, l.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert inventory log: %w", pgError(err, ErrInvalidReference))
	}
	return nil
}

// GetByProductID returns the logs of a product, newest first, and the total
// number of logs matching the filter.
func (r *postgresInventoryLogRepo) GetByProductID(ctx context.Context, productID int, mf MovementFilter) ([]models.InventoryLog, int, error) {
	if mf.Offset != nil && *mf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	whereClause, args := buildLogWhereClause(productID, mf)

	total, err := r.getTotal(ctx, whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	// limit = 0 means count only
	if mf.Limit != nil && *mf.Limit == 0 {
		return []models.InventoryLog{}, total, nil
	}
	if mf.Offset != nil && *mf.Offset >= total {
		return []models.InventoryLog{}, total, nil
	}

	query, queryArgs := buildLogQuery(whereClause, args, mf)
	logs, err := r.executeQuery(ctx, query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return logs, total, nil
}

func buildLogWhereClause(productID int, mf MovementFilter) (string, []any) {
	args := []any{productID}
	whereClause := "WHERE product_id = $1"
	argIndex := 2

	if mf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *mf.Since)
		argIndex++
	}
	if mf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *mf.Until)
	}
	return whereClause, args
}

func buildLogQuery(whereClause string, baseArgs []any, mf MovementFilter) (string, []any) {
	query := fmt.Sprintf("SELECT id, product_id, appointment_id, change, reason, created_at FROM inventory_logs %s ORDER BY created_at DESC, id DESC", whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	limit := defaultLimit
	if mf.Limit != nil && *mf.Limit > 0 {
		limit = min(*mf.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if mf.Offset != nil && *mf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *mf.Offset)
	}
	return query, args
}

func (r *postgresInventoryLogRepo) getTotal(ctx context.Context, whereClause string, args []any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory_logs "+whereClause, args...).Scan(&total)
	return total, err
}

func (r *postgresInventoryLogRepo) executeQuery(ctx context.Context, query string, args []any) ([]models.InventoryLog, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.InventoryLog{}
	for rows.Next() {
		var l models.InventoryLog
		if err := rows.Scan(&l.ID, &l.ProductID, &l.AppointmentID, &l.Change, &l.Reason, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type postgresProductRepo struct {
	q dbtx
}

const productColumns = `id, name, description, price, stock, low_stock_threshold, category_id, active, created_at, updated_at`

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
		&p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *postgresProductRepo) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, description, price, stock, low_stock_threshold, category_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.Stock, p.LowStockThreshold,
		p.CategoryID, p.Active, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return models.Product{}, pgError(err, ErrInvalidReference)
	}
	return p, nil
}

func (r *postgresProductRepo) GetAll(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE active`
	}
	return r.list(ctx, query+` ORDER BY id`)
}

func (r *postgresProductRepo) list(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepo) GetByID(ctx context.Context, id int) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *postgresProductRepo) GetByName(ctx context.Context, name string) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *postgresProductRepo) getOne(ctx context.Context, query string, arg any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Update writes every column except stock, which only AdjustStock changes.
// The returned product carries the stock currently stored.
func (r *postgresProductRepo) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, price = $3, low_stock_threshold = $4,
		category_id = $5, active = $6, updated_at = $7 WHERE id = $8 RETURNING stock`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.LowStockThreshold,
		p.CategoryID, p.Active, p.UpdatedAt, p.ID).Scan(&p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, pgError(err, ErrInvalidReference)
	}
	return p, nil
}

func (r *postgresProductRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return pgError(err, ErrInUse)
	}
	return affected(res, ErrProductNotFound)
}

func (r *postgresProductRepo) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := productConditions(pf)

	var total int
	countCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := r.q.QueryRowContext(countCtx, `SELECT COUNT(*) FROM products WHERE 1=1`+conditions, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions + ` ORDER BY id`
	limit := defaultLimit
	if pf.Limit != nil && *pf.Limit > 0 {
		limit = min(*pf.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	products, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func productConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Name+"%")
		argIdx++
	}
	if pf.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)
		args = append(args, *pf.CategoryID)
		argIdx++
	}
	if pf.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *pf.MinPrice)
		argIdx++
	}
	if pf.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *pf.MaxPrice)
		argIdx++
	}
	if pf.MinStock != nil {
		query += fmt.Sprintf(" AND stock >= $%d", argIdx)
		args = append(args, *pf.MinStock)
		argIdx++
	}
	if pf.MaxStock != nil {
		query += fmt.Sprintf(" AND stock <= $%d", argIdx)
		args = append(args, *pf.MaxStock)
		argIdx++
	}
	if pf.LowStock != nil {
		if *pf.LowStock {
			query += " AND stock < low_stock_threshold"
		} else {
			query += " AND stock >= low_stock_threshold"
		}
	}
	if pf.ActiveOnly {
		query += " AND active"
	}

	return query, args, argIdx
}

func (r *postgresProductRepo) AdjustStock(ctx context.Context, id, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = $2
		WHERE id = $3 AND stock + $1 >= 0
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.q.QueryRowContext(ctx, query, delta, time.Now().UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return models.Product{}, getErr
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	return p, err
}

func (r *postgresProductRepo) LowStock(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE active AND stock < low_stock_threshold ORDER BY stock, id`)
}

func (r *postgresProductRepo) CountLowStock(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE active AND stock < low_stock_threshold`).Scan(&n)
	return n, err
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const queryTimeout = 3 * time.Second

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresStore struct {
	db *sql.DB
	q  dbtx
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Roles() RoleRepository {
	return &postgresRoleRepo{q: s.q}
}

func (s *PostgresStore) Employees() EmployeeRepository {
	return &postgresEmployeeRepo{q: s.q}
}

func (s *PostgresStore) Categories() CategoryRepository {
	return &postgresCategoryRepo{q: s.q}
}

func (s *PostgresStore) Products() ProductRepository {
	return &postgresProductRepo{q: s.q}
}

func (s *PostgresStore) Services() ServiceRepository {
	return &postgresServiceRepo{q: s.q}
}

func (s *PostgresStore) Appointments() AppointmentRepository {
	return &postgresAppointmentRepo{q: s.q}
}

func (s *PostgresStore) InventoryLogs() InventoryLogRepository {
	return &postgresInventoryLogRepo{q: s.q}
}

func (s *PostgresStore) Metrics() MetricsRepository {
	return &postgresMetricsRepo{q: s.q}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(Store) error) (err error) {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return
		}
		if cmErr := tx.Commit(); cmErr != nil {
			err = fmt.Errorf("commit transaction: %w", cmErr)
		}
	}()

	return fn(&PostgresStore{db: s.db, q: tx})
}

// pgError maps constraint violations to repository sentinels. fkErr is what a
// foreign key violation means for the calling statement.
func pgError(err error, fkErr error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrDuplicatedValueUnique, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", fkErr, pgErr.ConstraintName)
		}
	}
	return err
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

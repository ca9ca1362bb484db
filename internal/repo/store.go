package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type RoleRepository interface {
	Create(ctx context.Context, r models.Role) (models.Role, error)
	GetAll(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, id int) (models.Role, error)
	GetByName(ctx context.Context, name string) (models.Role, error)
	Update(ctx context.Context, r models.Role) (models.Role, error)
	Delete(ctx context.Context, id int) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, e models.Employee) (models.Employee, error)
	GetAll(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id int) (models.Employee, error)
	GetByEmail(ctx context.Context, email string) (models.Employee, error)
	Update(ctx context.Context, e models.Employee) (models.Employee, error)
	Delete(ctx context.Context, id int) error
	// AdminPushTokens returns the push tokens of active employees holding the admin role.
	AdminPushTokens(ctx context.Context) ([]string, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (models.Category, error)
	GetByName(ctx context.Context, name string) (models.Category, error)
	Update(ctx context.Context, c models.Category) (models.Category, error)
	Delete(ctx context.Context, id int) error
}

type ProductRepository interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetAll(ctx context.Context, activeOnly bool) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	GetByName(ctx context.Context, name string) (models.Product, error)
	Update(ctx context.Context, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	// AdjustStock adds delta to the product stock, refusing to go below zero
	// with ErrInvalidQuantityChange.
	AdjustStock(ctx context.Context, id, delta int) (models.Product, error)
	LowStock(ctx context.Context) ([]models.Product, error)
	CountLowStock(ctx context.Context) (int, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s models.Service) (models.Service, error)
	GetAll(ctx context.Context, activeOnly bool) ([]models.Service, error)
	GetByID(ctx context.Context, id int) (models.Service, error)
	Update(ctx context.Context, s models.Service) (models.Service, error)
	Delete(ctx context.Context, id int) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, a models.Appointment) (models.Appointment, error)
	GetAll(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error)
	GetByID(ctx context.Context, id int) (models.Appointment, error)
	// GetForUpdate is GetByID holding a row lock for the rest of the transaction.
	GetForUpdate(ctx context.Context, id int) (models.Appointment, error)
	Update(ctx context.Context, a models.Appointment) (models.Appointment, error)
	Delete(ctx context.Context, id int) error
	// SetProducts replaces the product lines of an appointment.
	SetProducts(ctx context.Context, appointmentID int, items []models.AppointmentProduct) error
	Products(ctx context.Context, appointmentID int) ([]models.AppointmentProduct, error)
	// HasConflict reports whether the employee has another non-cancelled
	// appointment overlapping [start, end). excludeID is ignored when zero.
	HasConflict(ctx context.Context, employeeID int, start, end time.Time, excludeID int) (bool, error)
	IDsByService(ctx context.Context, serviceID int) ([]int, error)
}

type InventoryLogRepository interface {
	Log(ctx context.Context, l models.InventoryLog) error
	GetByProductID(ctx context.Context, productID int, mf MovementFilter) ([]models.InventoryLog, int, error)
}

// Store groups the repositories sharing one database handle.
type Store interface {
	Roles() RoleRepository
	Employees() EmployeeRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Services() ServiceRepository
	Appointments() AppointmentRepository
	InventoryLogs() InventoryLogRepository
	Metrics() MetricsRepository

	// WithTx runs fn against a transaction-scoped Store. A non-nil error from
	// fn rolls every write back. Nested calls reuse the outer transaction.
	WithTx(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}

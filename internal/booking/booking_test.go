package booking

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

var now = time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []notify.LowStockAlert
}

func (r *recordingNotifier) LowStock(_ context.Context, a notify.LowStockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *recordingNotifier) LowStockDigest(context.Context, []notify.LowStockAlert) error {
	return nil
}

func (r *recordingNotifier) Ban(context.Context, notify.BanAlert) error {
	return nil
}

func (r *recordingNotifier) DailyBanSummary(context.Context, notify.BanSummary) error {
	return nil
}

type env struct {
	svc      *Service
	store    *repo.MemoryStore
	notifier *recordingNotifier
	employee models.Employee
	service  models.Service
	shampoo  models.Product
	wax      models.Product
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := repo.NewMemoryStore()

	role, err := store.Roles().Create(ctx, models.Role{Name: "stylist"})
	require.NoError(t, err)
	emp, err := store.Employees().Create(ctx, models.Employee{FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com", RoleID: role.ID, Active: true})
	require.NoError(t, err)
	cat, err := store.Categories().Create(ctx, models.Category{Name: "Hair"})
	require.NoError(t, err)
	svc, err := store.Services().Create(ctx, models.Service{Name: "Haircut", Description: "Cut", Price: 20, Duration: 30, CategoryID: cat.ID, Active: true})
	require.NoError(t, err)
	shampoo, err := store.Products().Create(ctx, models.Product{Name: "Shampoo", Description: "500ml", Price: 10, Stock: 6, LowStockThreshold: 5, CategoryID: cat.ID, Active: true})
	require.NoError(t, err)
	wax, err := store.Products().Create(ctx, models.Product{Name: "Wax", Description: "Matte", Price: 8, Stock: 1, LowStockThreshold: 0, CategoryID: cat.ID, Active: true})
	require.NoError(t, err)

	n := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &env{
		svc:      NewService(store, n, logger, WithClock(func() time.Time { return now })),
		store:    store,
		notifier: n,
		employee: emp,
		service:  svc,
		shampoo:  shampoo,
		wax:      wax,
	}
}

func (e *env) stock(t *testing.T, id int) int {
	t.Helper()
	p, err := e.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (e *env) input(at time.Time, status models.Status, lines ...models.AppointmentProduct) AppointmentInput {
	return AppointmentInput{EmployeeID: e.employee.ID, ServiceID: e.service.ID, AppointmentDate: at, Status: status, Products: lines}
}

func requireKind(t *testing.T, err error, kind Kind, field string) {
	t.Helper()
	be, ok := AsError(err)
	require.True(t, ok, "expected booking error, got %v", err)
	assert.Equal(t, kind, be.Kind)
	assert.Equal(t, field, be.Field)
}

func TestCreatePendingDoesNotTouchStock(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	a, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), "", models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 2}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, a.Status)
	require.Len(t, a.Products, 1)
	assert.Equal(t, 2, a.Products[0].Quantity)
	assert.Equal(t, 6, e.stock(t, e.shampoo.ID))
}

func TestCreateConfirmedDeductsAndAlerts(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	a, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), models.StatusConfirmed,
		models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 1},
		models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 1}))
	require.NoError(t, err)
	e.svc.Wait()

	require.Len(t, a.Products, 1, "repeated products are merged")
	assert.Equal(t, 4, e.stock(t, e.shampoo.ID))

	logs, total, err := e.store.InventoryLogs().GetByProductID(ctx, e.shampoo.ID, repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, -2, logs[0].Change)
	assert.Equal(t, models.ReasonAppointmentUsage, logs[0].Reason)
	require.NotNil(t, logs[0].AppointmentID)
	assert.Equal(t, a.ID, *logs[0].AppointmentID)

	require.Len(t, e.notifier.alerts, 1)
	assert.Equal(t, "Shampoo", e.notifier.alerts[0].ProductName)
	assert.Equal(t, 4, e.notifier.alerts[0].Stock)
}

func TestCreateInsufficientStockRollsBack(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), models.StatusConfirmed,
		models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 1},
		models.AppointmentProduct{ProductID: e.wax.ID, Quantity: 3}))
	requireKind(t, err, KindConflict, "products")
	assert.Contains(t, err.Error(), "Wax")

	assert.Equal(t, 6, e.stock(t, e.shampoo.ID))
	all, err := e.store.Appointments().GetAll(ctx, repo.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateValidations(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.CreateAppointment(ctx, e.input(now.Add(-time.Minute), ""))
	requireKind(t, err, KindInvalid, "appointment_date")

	in := e.input(now.Add(time.Hour), "")
	in.EmployeeID = 999
	_, err = e.svc.CreateAppointment(ctx, in)
	requireKind(t, err, KindInvalid, "employee_id")

	inactive := e.service
	inactive.Active = false
	_, err = e.store.Services().Update(ctx, inactive)
	require.NoError(t, err)
	_, err = e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), ""))
	requireKind(t, err, KindInvalid, "service_id")

	_, err = e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), "", models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 0}))
	requireKind(t, err, KindInvalid, "products")
}

func TestCreateOverlap(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	at := now.Add(2 * time.Hour)

	first, err := e.svc.CreateAppointment(ctx, e.input(at, models.StatusConfirmed))
	require.NoError(t, err)

	_, err = e.svc.CreateAppointment(ctx, e.input(at.Add(10*time.Minute), ""))
	requireKind(t, err, KindConflict, "appointment_date")

	_, err = e.svc.CreateAppointment(ctx, e.input(at.Add(30*time.Minute), ""))
	require.NoError(t, err, "back-to-back slots do not overlap")

	cancelled := models.StatusCancelled
	_, err = e.svc.UpdateAppointment(ctx, first.ID, AppointmentPatch{Status: &cancelled})
	require.NoError(t, err)
	_, err = e.svc.CreateAppointment(ctx, e.input(at, ""))
	require.NoError(t, err, "cancelled appointments free the slot")
}

func TestUpdateStatusTransitions(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	line := models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 2}

	a, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), models.StatusPending, line))
	require.NoError(t, err)
	assert.Equal(t, 6, e.stock(t, e.shampoo.ID))

	confirmed, cancelled, completed := models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted

	_, err = e.svc.UpdateAppointment(ctx, a.ID, AppointmentPatch{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, 4, e.stock(t, e.shampoo.ID))

	_, err = e.svc.UpdateAppointment(ctx, a.ID, AppointmentPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, 4, e.stock(t, e.shampoo.ID), "confirmed to completed keeps the deduction")

	_, err = e.svc.UpdateAppointment(ctx, a.ID, AppointmentPatch{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 6, e.stock(t, e.shampoo.ID))

	logs, total, err := e.store.InventoryLogs().GetByProductID(ctx, e.shampoo.ID, repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, models.ReasonAppointmentCancel, logs[0].Reason)
	e.svc.Wait()
}

func TestUpdateProductsWhileHolding(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	a, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), models.StatusConfirmed, models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, 5, e.stock(t, e.shampoo.ID))

	lines := []models.AppointmentProduct{{ProductID: e.shampoo.ID, Quantity: 3}, {ProductID: e.wax.ID, Quantity: 1}}
	updated, err := e.svc.UpdateAppointment(ctx, a.ID, AppointmentPatch{Products: &lines})
	require.NoError(t, err)
	assert.Len(t, updated.Products, 2)
	assert.Equal(t, 3, e.stock(t, e.shampoo.ID))
	assert.Equal(t, 0, e.stock(t, e.wax.ID))

	tooMany := []models.AppointmentProduct{{ProductID: e.wax.ID, Quantity: 5}}
	_, err = e.svc.UpdateAppointment(ctx, a.ID, AppointmentPatch{Products: &tooMany})
	requireKind(t, err, KindConflict, "products")
	assert.Equal(t, 3, e.stock(t, e.shampoo.ID), "failed update is rolled back")
	assert.Equal(t, 0, e.stock(t, e.wax.ID))
	e.svc.Wait()
}

func TestUpdatePastAppointmentWithoutMovingIt(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	a, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), ""))
	require.NoError(t, err)

	later := &Service{store: e.store, notifier: e.notifier, logger: e.svc.logger, now: func() time.Time { return now.Add(48 * time.Hour) }}
	completed := models.StatusCompleted
	_, err = later.UpdateAppointment(ctx, a.ID, AppointmentPatch{Status: &completed})
	require.NoError(t, err)

	past := now
	_, err = later.UpdateAppointment(ctx, a.ID, AppointmentPatch{AppointmentDate: &past})
	requireKind(t, err, KindInvalid, "appointment_date")

	_, err = later.UpdateAppointment(ctx, 999, AppointmentPatch{})
	requireKind(t, err, KindNotFound, "id")
}

func TestDeleteRestoresHeldStock(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	a, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), models.StatusConfirmed, models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 2}))
	require.NoError(t, err)
	b, err := e.svc.CreateAppointment(ctx, e.input(now.Add(3*time.Hour), models.StatusPending, models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 2}))
	require.NoError(t, err)
	assert.Equal(t, 4, e.stock(t, e.shampoo.ID))

	require.NoError(t, e.svc.DeleteAppointment(ctx, a.ID))
	assert.Equal(t, 6, e.stock(t, e.shampoo.ID))

	require.NoError(t, e.svc.DeleteAppointment(ctx, b.ID))
	assert.Equal(t, 6, e.stock(t, e.shampoo.ID), "pending appointments held nothing")

	requireKind(t, e.svc.DeleteAppointment(ctx, a.ID), KindNotFound, "id")
	e.svc.Wait()
}

func TestConcurrentCancelAndDeleteRestoreOnce(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	for range 20 {
		a, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), models.StatusConfirmed, models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 2}))
		require.NoError(t, err)
		require.Equal(t, 4, e.stock(t, e.shampoo.ID))

		cancelled := models.StatusCancelled
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = e.svc.UpdateAppointment(ctx, a.ID, AppointmentPatch{Status: &cancelled})
		}()
		go func() {
			defer wg.Done()
			_ = e.svc.DeleteAppointment(ctx, a.ID)
		}()
		wg.Wait()

		require.Equal(t, 6, e.stock(t, e.shampoo.ID))
		if _, err := e.store.Appointments().GetByID(ctx, a.ID); err == nil {
			require.NoError(t, e.svc.DeleteAppointment(ctx, a.ID))
			require.Equal(t, 6, e.stock(t, e.shampoo.ID))
		}
	}
	e.svc.Wait()
}

func TestDeleteServiceCascade(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.CreateAppointment(ctx, e.input(now.Add(time.Hour), models.StatusConfirmed, models.AppointmentProduct{ProductID: e.shampoo.ID, Quantity: 1}))
	require.NoError(t, err)
	_, err = e.svc.CreateAppointment(ctx, e.input(now.Add(2*time.Hour), ""))
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteServiceCascade(ctx, e.service.ID))

	assert.Equal(t, 6, e.stock(t, e.shampoo.ID))
	_, err = e.store.Services().GetByID(ctx, e.service.ID)
	assert.ErrorIs(t, err, repo.ErrServiceNotFound)
	all, err := e.store.Appointments().GetAll(ctx, repo.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	requireKind(t, e.svc.DeleteServiceCascade(ctx, e.service.ID), KindNotFound, "id")
	e.svc.Wait()
}

func TestCheckAvailability(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	at := now.Add(time.Hour)

	a, err := e.svc.CreateAppointment(ctx, e.input(at, ""))
	require.NoError(t, err)

	free, err := e.svc.CheckAvailability(ctx, e.employee.ID, e.service.ID, at.Add(15*time.Minute), 0)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = e.svc.CheckAvailability(ctx, e.employee.ID, e.service.ID, at.Add(15*time.Minute), a.ID)
	require.NoError(t, err)
	assert.True(t, free)

	_, err = e.svc.CheckAvailability(ctx, 999, e.service.ID, at, 0)
	requireKind(t, err, KindNotFound, "employee_id")
}

func TestAdjustStock(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	p, err := e.svc.AdjustStock(ctx, e.shampoo.ID, -2, "")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)
	e.svc.Wait()
	assert.Len(t, e.notifier.alerts, 1)

	_, err = e.svc.AdjustStock(ctx, e.shampoo.ID, -10, "")
	requireKind(t, err, KindConflict, "delta")

	_, err = e.svc.AdjustStock(ctx, e.shampoo.ID, 0, "")
	requireKind(t, err, KindInvalid, "delta")

	_, err = e.svc.AdjustStock(ctx, 999, 1, "")
	requireKind(t, err, KindNotFound, "id")

	p, err = e.svc.AdjustStock(ctx, e.shampoo.ID, 10, "delivery")
	require.NoError(t, err)
	assert.Equal(t, 14, p.Stock)

	logs, _, err := e.store.InventoryLogs().GetByProductID(ctx, e.shampoo.ID, repo.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "delivery", logs[0].Reason)
	assert.Equal(t, models.ReasonManualAdjustment, logs[1].Reason)
}

package booking

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/metrics"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

type AppointmentInput struct {
	EmployeeID      int
	ServiceID       int
	AppointmentDate time.Time
	Status          models.Status
	Notes           string
	Products        []models.AppointmentProduct
}

// AppointmentPatch carries the fields of a partial update. Nil fields keep
// their stored value; a non-nil Products replaces the whole product list.
type AppointmentPatch struct {
	EmployeeID      *int
	ServiceID       *int
	AppointmentDate *time.Time
	Status          *models.Status
	Notes           *string
	Products        *[]models.AppointmentProduct
}

// normalizeLines merges repeated products and rejects non-positive quantities.
func normalizeLines(lines []models.AppointmentProduct) ([]models.AppointmentProduct, error) {
	merged := make([]models.AppointmentProduct, 0, len(lines))
	for _, l := range lines {
		if l.ProductID <= 0 {
			return nil, invalid("products", "product_id is required")
		}
		if l.Quantity <= 0 {
			return nil, invalid("products", "quantity must be greater than zero")
		}
		if i := slices.IndexFunc(merged, func(m models.AppointmentProduct) bool { return m.ProductID == l.ProductID }); i >= 0 {
			merged[i].Quantity += l.Quantity
			continue
		}
		merged = append(merged, models.AppointmentProduct{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	slices.SortFunc(merged, func(a, b models.AppointmentProduct) int { return a.ProductID - b.ProductID })
	return merged, nil
}

func sameLines(a, b []models.AppointmentProduct) bool {
	return slices.EqualFunc(a, b, func(x, y models.AppointmentProduct) bool {
		return x.ProductID == y.ProductID && x.Quantity == y.Quantity
	})
}

func (s *Service) checkNotPast(at time.Time) error {
	if at.Before(s.now()) {
		return invalid("appointment_date", "can't be in the past")
	}
	return nil
}

func (s *Service) checkEmployee(ctx context.Context, tx repo.Store, id int) error {
	e, err := tx.Employees().GetByID(ctx, id)
	if errors.Is(err, repo.ErrEmployeeNotFound) {
		return invalid("employee_id", "employee does not exist")
	}
	if err != nil {
		return err
	}
	if !e.Active {
		return invalid("employee_id", "employee is not active")
	}
	return nil
}

func (s *Service) loadService(ctx context.Context, tx repo.Store, id int, requireActive bool) (models.Service, error) {
	svc, err := tx.Services().GetByID(ctx, id)
	if errors.Is(err, repo.ErrServiceNotFound) {
		return models.Service{}, invalid("service_id", "service does not exist")
	}
	if err != nil {
		return models.Service{}, err
	}
	if requireActive && !svc.Active {
		return models.Service{}, invalid("service_id", "service is not active")
	}
	return svc, nil
}

// checkOverlap refuses a slot that overlaps another non-cancelled appointment
// of the same employee. Services without a duration never overlap.
func (s *Service) checkOverlap(ctx context.Context, tx repo.Store, a models.Appointment, svc models.Service) error {
	if a.Status == models.StatusCancelled || svc.Duration <= 0 {
		return nil
	}
	busy, err := tx.Appointments().HasConflict(ctx, a.EmployeeID, a.AppointmentDate, a.AppointmentDate.Add(svc.Length()), a.ID)
	if err != nil {
		return err
	}
	if busy {
		return conflict("appointment_date", "employee is not available at the selected time")
	}
	return nil
}

// checkLines verifies that every product exists, is active and has enough
// stock for its quantity.
func (s *Service) checkLines(ctx context.Context, tx repo.Store, lines []models.AppointmentProduct) error {
	for _, l := range lines {
		p, err := tx.Products().GetByID(ctx, l.ProductID)
		if errors.Is(err, repo.ErrProductNotFound) {
			return invalid("products", "product %d does not exist", l.ProductID)
		}
		if err != nil {
			return err
		}
		if !p.Active {
			return invalid("products", "product %s is not active", p.Name)
		}
		if p.Stock < l.Quantity {
			return conflict("products", "insufficient stock for product %s", p.Name)
		}
	}
	return nil
}

func (s *Service) CreateAppointment(ctx context.Context, in AppointmentInput) (models.Appointment, error) {
	if in.EmployeeID <= 0 {
		return models.Appointment{}, invalid("employee_id", "is required")
	}
	if in.ServiceID <= 0 {
		return models.Appointment{}, invalid("service_id", "is required")
	}
	if in.AppointmentDate.IsZero() {
		return models.Appointment{}, invalid("appointment_date", "is required")
	}
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if !in.Status.Valid() {
		return models.Appointment{}, invalid("status", "is not a valid status")
	}
	if err := s.checkNotPast(in.AppointmentDate); err != nil {
		return models.Appointment{}, err
	}
	lines, err := normalizeLines(in.Products)
	if err != nil {
		return models.Appointment{}, err
	}

	var (
		created models.Appointment
		alerts  []notify.LowStockAlert
	)
	err = s.store.WithTx(ctx, func(tx repo.Store) error {
		if err := s.checkEmployee(ctx, tx, in.EmployeeID); err != nil {
			return err
		}
		svc, err := s.loadService(ctx, tx, in.ServiceID, true)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		a := models.Appointment{
			EmployeeID:      in.EmployeeID,
			ServiceID:       in.ServiceID,
			AppointmentDate: in.AppointmentDate.UTC(),
			Status:          in.Status,
			Notes:           strings.TrimSpace(in.Notes),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.checkOverlap(ctx, tx, a, svc); err != nil {
			return err
		}
		if err := s.checkLines(ctx, tx, lines); err != nil {
			return err
		}

		a, err = tx.Appointments().Create(ctx, a)
		if err != nil {
			return err
		}
		if err := tx.Appointments().SetProducts(ctx, a.ID, lines); err != nil {
			return err
		}
		if a.Status.HoldsStock() {
			if alerts, err = s.deduct(ctx, tx, a.ID, lines); err != nil {
				return err
			}
		}

		created, err = tx.Appointments().GetByID(ctx, a.ID)
		return err
	})
	if err != nil {
		return models.Appointment{}, err
	}

	metrics.AppointmentCreated(string(created.Status))
	s.logger.InfoContext(ctx, "appointment created",
		slog.Int("appointment_id", created.ID),
		slog.Int("employee_id", created.EmployeeID),
		slog.Int("service_id", created.ServiceID),
		slog.String("status", string(created.Status)))
	s.dispatch(ctx, alerts)
	return created, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int, patch AppointmentPatch) (models.Appointment, error) {
	var newLines []models.AppointmentProduct
	if patch.Products != nil {
		var err error
		if newLines, err = normalizeLines(*patch.Products); err != nil {
			return models.Appointment{}, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Appointment{}, invalid("status", "is not a valid status")
	}

	var (
		updated models.Appointment
		alerts  []notify.LowStockAlert
	)
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		current, err := tx.Appointments().GetForUpdate(ctx, id)
		if errors.Is(err, repo.ErrAppointmentNotFound) {
			return notFound("id", "appointment not found")
		}
		if err != nil {
			return err
		}

		next := current
		if patch.EmployeeID != nil {
			next.EmployeeID = *patch.EmployeeID
		}
		if patch.ServiceID != nil {
			next.ServiceID = *patch.ServiceID
		}
		if patch.AppointmentDate != nil {
			next.AppointmentDate = patch.AppointmentDate.UTC()
		}
		if patch.Status != nil {
			next.Status = *patch.Status
		}
		if patch.Notes != nil {
			next.Notes = strings.TrimSpace(*patch.Notes)
		}
		next.UpdatedAt = s.now().UTC()

		if !next.AppointmentDate.Equal(current.AppointmentDate) {
			if err := s.checkNotPast(next.AppointmentDate); err != nil {
				return err
			}
		}
		if next.EmployeeID != current.EmployeeID {
			if err := s.checkEmployee(ctx, tx, next.EmployeeID); err != nil {
				return err
			}
		}
		svc, err := s.loadService(ctx, tx, next.ServiceID, next.ServiceID != current.ServiceID)
		if err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, tx, next, svc); err != nil {
			return err
		}

		linesChanged := patch.Products != nil && !sameLines(current.Products, newLines)
		if !linesChanged {
			newLines = current.Products
		}
		wasHolding, willHold := current.Status.HoldsStock(), next.Status.HoldsStock()

		if wasHolding && (!willHold || linesChanged) {
			if err := s.restore(ctx, tx, id, current.Products); err != nil {
				return err
			}
		}
		if linesChanged {
			if err := s.checkLines(ctx, tx, newLines); err != nil {
				return err
			}
		}
		if willHold && (!wasHolding || linesChanged) {
			if alerts, err = s.deduct(ctx, tx, id, newLines); err != nil {
				return err
			}
		}

		if _, err := tx.Appointments().Update(ctx, next); err != nil {
			return err
		}
		if linesChanged {
			if err := tx.Appointments().SetProducts(ctx, id, newLines); err != nil {
				return err
			}
		}

		updated, err = tx.Appointments().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return models.Appointment{}, err
	}

	s.logger.InfoContext(ctx, "appointment updated", slog.Int("appointment_id", id), slog.String("status", string(updated.Status)))
	s.dispatch(ctx, alerts)
	return updated, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int) error {
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		return s.deleteAppointment(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "appointment deleted", slog.Int("appointment_id", id))
	return nil
}

func (s *Service) deleteAppointment(ctx context.Context, tx repo.Store, id int) error {
	a, err := tx.Appointments().GetForUpdate(ctx, id)
	if errors.Is(err, repo.ErrAppointmentNotFound) {
		return notFound("id", "appointment not found")
	}
	if err != nil {
		return err
	}
	if a.Status.HoldsStock() {
		if err := s.restore(ctx, tx, id, a.Products); err != nil {
			return err
		}
	}
	return tx.Appointments().Delete(ctx, id)
}

// CheckAvailability reports whether the employee is free for the service at
// the given time. excludeID ignores one appointment, the one being edited.
func (s *Service) CheckAvailability(ctx context.Context, employeeID, serviceID int, at time.Time, excludeID int) (bool, error) {
	if _, err := s.store.Employees().GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, repo.ErrEmployeeNotFound) {
			return false, notFound("employee_id", "employee not found")
		}
		return false, err
	}
	svc, err := s.store.Services().GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repo.ErrServiceNotFound) {
			return false, notFound("service_id", "service not found")
		}
		return false, err
	}

	probe := models.Appointment{ID: excludeID, EmployeeID: employeeID, AppointmentDate: at.UTC(), Status: models.StatusPending}
	err = s.checkOverlap(ctx, s.store, probe, svc)
	if be, ok := AsError(err); ok && be.Kind == KindConflict {
		return false, nil
	}
	return err == nil, err
}

// DeleteServiceCascade deletes a service together with its appointments,
// giving back any stock those appointments held.
func (s *Service) DeleteServiceCascade(ctx context.Context, serviceID int) error {
	var removed int
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		if _, err := tx.Services().GetByID(ctx, serviceID); err != nil {
			if errors.Is(err, repo.ErrServiceNotFound) {
				return notFound("id", "service not found")
			}
			return err
		}
		ids, err := tx.Appointments().IDsByService(ctx, serviceID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := s.deleteAppointment(ctx, tx, id); err != nil {
				return err
			}
		}
		removed = len(ids)
		return tx.Services().Delete(ctx, serviceID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "service deleted", slog.Int("service_id", serviceID), slog.Int("appointments_removed", removed))
	return nil
}

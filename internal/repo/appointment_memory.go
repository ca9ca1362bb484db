package repo

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryAppointmentRepo struct {
	s *MemoryStore
}

func checkAppointment(d *memoryData, a models.Appointment) error {
	if _, ok := d.employees[a.EmployeeID]; !ok {
		return ErrInvalidReference
	}
	if _, ok := d.services[a.ServiceID]; !ok {
		return ErrInvalidReference
	}
	return nil
}

func (d *memoryData) withProducts(a models.Appointment) models.Appointment {
	a.Products = slices.Clone(d.lines[a.ID])
	if a.Products == nil {
		a.Products = []models.AppointmentProduct{}
	}
	return a
}

func (r *memoryAppointmentRepo) Create(_ context.Context, a models.Appointment) (models.Appointment, error) {
	err := r.s.update(func(d *memoryData) error {
		if err := checkAppointment(d, a); err != nil {
			return err
		}
		a.ID = d.next("appointments")
		a.Products = nil
		d.appointments[a.ID] = a
		return nil
	})
	if err != nil {
		return models.Appointment{}, err
	}
	a.Products = []models.AppointmentProduct{}
	return a, nil
}

func matchesAppointment(a models.Appointment, f AppointmentFilter) bool {
	if f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.ServiceID != nil && a.ServiceID != *f.ServiceID {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.From != nil && a.AppointmentDate.Before(*f.From) {
		return false
	}
	if f.To != nil && a.AppointmentDate.After(*f.To) {
		return false
	}
	return true
}

func (r *memoryAppointmentRepo) GetAll(_ context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	r.s.view(func(d *memoryData) {
		for _, a := range d.appointments {
			if matchesAppointment(a, f) {
				appointments = append(appointments, d.withProducts(a))
			}
		}
	})
	slices.SortFunc(appointments, func(a, b models.Appointment) int {
		return cmp.Or(a.AppointmentDate.Compare(b.AppointmentDate), cmp.Compare(a.ID, b.ID))
	})
	return appointments, nil
}

func (r *memoryAppointmentRepo) GetByID(_ context.Context, id int) (models.Appointment, error) {
	var (
		a  models.Appointment
		ok bool
	)
	r.s.view(func(d *memoryData) {
		if a, ok = d.appointments[id]; ok {
			a = d.withProducts(a)
		}
	})
	if !ok {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

// GetForUpdate is GetByID; memory transactions already run one at a time.
func (r *memoryAppointmentRepo) GetForUpdate(ctx context.Context, id int) (models.Appointment, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryAppointmentRepo) Products(_ context.Context, appointmentID int) ([]models.AppointmentProduct, error) {
	items := []models.AppointmentProduct{}
	r.s.view(func(d *memoryData) {
		items = append(items, d.lines[appointmentID]...)
	})
	return items, nil
}

func (r *memoryAppointmentRepo) Update(_ context.Context, a models.Appointment) (models.Appointment, error) {
	err := r.s.update(func(d *memoryData) error {
		if _, ok := d.appointments[a.ID]; !ok {
			return ErrAppointmentNotFound
		}
		if err := checkAppointment(d, a); err != nil {
			return err
		}
		stored := a
		stored.Products = nil
		d.appointments[a.ID] = stored
		return nil
	})
	if err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

// Delete removes the appointment and its lines; logs keep their rows with the
// appointment reference cleared.
func (r *memoryAppointmentRepo) Delete(_ context.Context, id int) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.appointments[id]; !ok {
			return ErrAppointmentNotFound
		}
		delete(d.appointments, id)
		delete(d.lines, id)
		for i, l := range d.logs {
			if l.AppointmentID != nil && *l.AppointmentID == id {
				d.logs[i].AppointmentID = nil
			}
		}
		return nil
	})
}

func (r *memoryAppointmentRepo) SetProducts(_ context.Context, appointmentID int, items []models.AppointmentProduct) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.appointments[appointmentID]; !ok {
			return ErrInvalidReference
		}
		lines := make([]models.AppointmentProduct, 0, len(items))
		for _, it := range items {
			if _, ok := d.products[it.ProductID]; !ok {
				return ErrInvalidReference
			}
			if slices.ContainsFunc(lines, func(ap models.AppointmentProduct) bool { return ap.ProductID == it.ProductID }) {
				return ErrDuplicatedValueUnique
			}
			it.AppointmentID = appointmentID
			lines = append(lines, it)
		}
		slices.SortFunc(lines, func(a, b models.AppointmentProduct) int { return cmp.Compare(a.ProductID, b.ProductID) })
		d.lines[appointmentID] = lines
		return nil
	})
}

func (r *memoryAppointmentRepo) HasConflict(_ context.Context, employeeID int, start, end time.Time, excludeID int) (bool, error) {
	conflict := false
	r.s.view(func(d *memoryData) {
		for _, a := range d.appointments {
			if a.EmployeeID != employeeID || a.ID == excludeID || a.Status == models.StatusCancelled {
				continue
			}
			svc, ok := d.services[a.ServiceID]
			if !ok {
				continue
			}
			if a.AppointmentDate.Before(end) && a.AppointmentDate.Add(svc.Length()).After(start) {
				conflict = true
				return
			}
		}
	})
	return conflict, nil
}

func (r *memoryAppointmentRepo) IDsByService(_ context.Context, serviceID int) ([]int, error) {
	var ids []int
	r.s.view(func(d *memoryData) {
		for _, a := range d.appointments {
			if a.ServiceID == serviceID {
				ids = append(ids, a.ID)
			}
		}
	})
	slices.Sort(ids)
	return ids, nil
}

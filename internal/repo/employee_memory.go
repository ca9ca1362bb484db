package repo

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryEmployeeRepo struct {
	s *MemoryStore
}

func checkEmployee(d *memoryData, e models.Employee) error {
	if _, ok := d.roles[e.RoleID]; !ok {
		return ErrInvalidReference
	}
	for _, other := range d.employees {
		if other.ID != e.ID && strings.EqualFold(other.Email, e.Email) {
			return ErrDuplicatedValueUnique
		}
	}
	return nil
}

func (r *memoryEmployeeRepo) Create(_ context.Context, e models.Employee) (models.Employee, error) {
	err := r.s.update(func(d *memoryData) error {
		if err := checkEmployee(d, e); err != nil {
			return err
		}
		e.ID = d.next("employees")
		d.employees[e.ID] = e
		return nil
	})
	if err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

func (r *memoryEmployeeRepo) GetAll(context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	r.s.view(func(d *memoryData) { employees = sortedValues(d.employees) })
	return employees, nil
}

func (r *memoryEmployeeRepo) GetByID(_ context.Context, id int) (models.Employee, error) {
	var (
		e  models.Employee
		ok bool
	)
	r.s.view(func(d *memoryData) { e, ok = d.employees[id] })
	if !ok {
		return models.Employee{}, ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memoryEmployeeRepo) GetByEmail(_ context.Context, email string) (models.Employee, error) {
	var (
		e  models.Employee
		ok bool
	)
	r.s.view(func(d *memoryData) {
		for _, candidate := range d.employees {
			if strings.EqualFold(candidate.Email, email) {
				e, ok = candidate, true
				return
			}
		}
	})
	if !ok {
		return models.Employee{}, ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memoryEmployeeRepo) Update(_ context.Context, e models.Employee) (models.Employee, error) {
	err := r.s.update(func(d *memoryData) error {
		if _, ok := d.employees[e.ID]; !ok {
			return ErrEmployeeNotFound
		}
		if err := checkEmployee(d, e); err != nil {
			return err
		}
		d.employees[e.ID] = e
		return nil
	})
	if err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

func (r *memoryEmployeeRepo) Delete(_ context.Context, id int) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.employees[id]; !ok {
			return ErrEmployeeNotFound
		}
		for _, a := range d.appointments {
			if a.EmployeeID == id {
				return ErrInUse
			}
		}
		delete(d.employees, id)
		return nil
	})
}

func (r *memoryEmployeeRepo) AdminPushTokens(context.Context) ([]string, error) {
	var tokens []string
	r.s.view(func(d *memoryData) {
		for _, e := range sortedValues(d.employees) {
			role, ok := d.roles[e.RoleID]
			if !ok || !strings.EqualFold(role.Name, models.AdminRole) || !e.Active {
				continue
			}
			if e.PushToken != nil && *e.PushToken != "" {
				tokens = append(tokens, *e.PushToken)
			}
		}
	})
	return tokens, nil
}

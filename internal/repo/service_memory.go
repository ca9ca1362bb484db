package repo

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryServiceRepo struct {
	s *MemoryStore
}

func checkService(d *memoryData, s models.Service) error {
	if _, ok := d.categories[s.CategoryID]; !ok {
		return ErrInvalidReference
	}
	for _, other := range d.services {
		if other.ID != s.ID && strings.EqualFold(other.Name, s.Name) {
			return ErrDuplicatedValueUnique
		}
	}
	return nil
}

func (r *memoryServiceRepo) Create(_ context.Context, s models.Service) (models.Service, error) {
	err := r.s.update(func(d *memoryData) error {
		if err := checkService(d, s); err != nil {
			return err
		}
		s.ID = d.next("services")
		d.services[s.ID] = s
		return nil
	})
	if err != nil {
		return models.Service{}, err
	}
	return s, nil
}

func (r *memoryServiceRepo) GetAll(_ context.Context, activeOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	r.s.view(func(d *memoryData) {
		for _, s := range sortedValues(d.services) {
			if !activeOnly || s.Active {
				services = append(services, s)
			}
		}
	})
	return services, nil
}

func (r *memoryServiceRepo) GetByID(_ context.Context, id int) (models.Service, error) {
	var (
		s  models.Service
		ok bool
	)
	r.s.view(func(d *memoryData) { s, ok = d.services[id] })
	if !ok {
		return models.Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (r *memoryServiceRepo) Update(_ context.Context, s models.Service) (models.Service, error) {
	err := r.s.update(func(d *memoryData) error {
		if _, ok := d.services[s.ID]; !ok {
			return ErrServiceNotFound
		}
		if err := checkService(d, s); err != nil {
			return err
		}
		d.services[s.ID] = s
		return nil
	})
	if err != nil {
		return models.Service{}, err
	}
	return s, nil
}

func (r *memoryServiceRepo) Delete(_ context.Context, id int) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.services[id]; !ok {
			return ErrServiceNotFound
		}
		for _, a := range d.appointments {
			if a.ServiceID == id {
				return ErrInUse
			}
		}
		delete(d.services, id)
		return nil
	})
}

package repo

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryRoleRepo struct {
	s *MemoryStore
}

func roleNameTaken(d *memoryData, name string, exceptID int) bool {
	for _, r := range d.roles {
		if r.ID != exceptID && strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

func (r *memoryRoleRepo) Create(_ context.Context, role models.Role) (models.Role, error) {
	err := r.s.update(func(d *memoryData) error {
		if roleNameTaken(d, role.Name, 0) {
			return ErrDuplicatedValueUnique
		}
		role.ID = d.next("roles")
		d.roles[role.ID] = role
		return nil
	})
	if err != nil {
		return models.Role{}, err
	}
	return role, nil
}

func (r *memoryRoleRepo) GetAll(context.Context) ([]models.Role, error) {
	var roles []models.Role
	r.s.view(func(d *memoryData) { roles = sortedValues(d.roles) })
	return roles, nil
}

func (r *memoryRoleRepo) GetByID(_ context.Context, id int) (models.Role, error) {
	var (
		role models.Role
		ok   bool
	)
	r.s.view(func(d *memoryData) { role, ok = d.roles[id] })
	if !ok {
		return models.Role{}, ErrRoleNotFound
	}
	return role, nil
}

func (r *memoryRoleRepo) GetByName(_ context.Context, name string) (models.Role, error) {
	var (
		role models.Role
		ok   bool
	)
	r.s.view(func(d *memoryData) {
		for _, candidate := range d.roles {
			if strings.EqualFold(candidate.Name, name) {
				role, ok = candidate, true
				return
			}
		}
	})
	if !ok {
		return models.Role{}, ErrRoleNotFound
	}
	return role, nil
}

func (r *memoryRoleRepo) Update(_ context.Context, role models.Role) (models.Role, error) {
	err := r.s.update(func(d *memoryData) error {
		if _, ok := d.roles[role.ID]; !ok {
			return ErrRoleNotFound
		}
		if roleNameTaken(d, role.Name, role.ID) {
			return ErrDuplicatedValueUnique
		}
		d.roles[role.ID] = role
		return nil
	})
	if err != nil {
		return models.Role{}, err
	}
	return role, nil
}

func (r *memoryRoleRepo) Delete(_ context.Context, id int) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.roles[id]; !ok {
			return ErrRoleNotFound
		}
		for _, e := range d.employees {
			if e.RoleID == id {
				return ErrInUse
			}
		}
		delete(d.roles, id)
		return nil
	})
}

package repo

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryCategoryRepo struct {
	s *MemoryStore
}

func categoryNameTaken(d *memoryData, name string, exceptID int) bool {
	for _, c := range d.categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *memoryCategoryRepo) Create(_ context.Context, c models.Category) (models.Category, error) {
	err := r.s.update(func(d *memoryData) error {
		if categoryNameTaken(d, c.Name, 0) {
			return ErrDuplicatedValueUnique
		}
		c.ID = d.next("categories")
		d.categories[c.ID] = c
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (r *memoryCategoryRepo) GetAll(context.Context) ([]models.Category, error) {
	var categories []models.Category
	r.s.view(func(d *memoryData) { categories = sortedValues(d.categories) })
	return categories, nil
}

func (r *memoryCategoryRepo) GetByID(_ context.Context, id int) (models.Category, error) {
	var (
		c  models.Category
		ok bool
	)
	r.s.view(func(d *memoryData) { c, ok = d.categories[id] })
	if !ok {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (r *memoryCategoryRepo) GetByName(_ context.Context, name string) (models.Category, error) {
	var (
		c  models.Category
		ok bool
	)
	r.s.view(func(d *memoryData) {
		for _, candidate := range d.categories {
			if strings.EqualFold(candidate.Name, name) {
				c, ok = candidate, true
				return
			}
		}
	})
	if !ok {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (r *memoryCategoryRepo) Update(_ context.Context, c models.Category) (models.Category, error) {
	err := r.s.update(func(d *memoryData) error {
		if _, ok := d.categories[c.ID]; !ok {
			return ErrCategoryNotFound
		}
		if categoryNameTaken(d, c.Name, c.ID) {
			return ErrDuplicatedValueUnique
		}
		d.categories[c.ID] = c
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (r *memoryCategoryRepo) Delete(_ context.Context, id int) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.categories[id]; !ok {
			return ErrCategoryNotFound
		}
		for _, p := range d.products {
			if p.CategoryID == id {
				return ErrInUse
			}
		}
		for _, s := range d.services {
			if s.CategoryID == id {
				return ErrInUse
			}
		}
		delete(d.categories, id)
		return nil
	})
}

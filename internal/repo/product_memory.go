package repo

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryProductRepo struct {
	s *MemoryStore
}

func checkProduct(d *memoryData, p models.Product) error {
	if _, ok := d.categories[p.CategoryID]; !ok {
		return ErrInvalidReference
	}
	for _, other := range d.products {
		if other.ID != p.ID && strings.EqualFold(other.Name, p.Name) {
			return ErrDuplicatedValueUnique
		}
	}
	return nil
}

func (r *memoryProductRepo) Create(_ context.Context, p models.Product) (models.Product, error) {
	err := r.s.update(func(d *memoryData) error {
		if err := checkProduct(d, p); err != nil {
			return err
		}
		p.ID = d.next("products")
		d.products[p.ID] = p
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *memoryProductRepo) GetAll(_ context.Context, activeOnly bool) ([]models.Product, error) {
	products := []models.Product{}
	r.s.view(func(d *memoryData) {
		for _, p := range sortedValues(d.products) {
			if !activeOnly || p.Active {
				products = append(products, p)
			}
		}
	})
	return products, nil
}

func (r *memoryProductRepo) GetByID(_ context.Context, id int) (models.Product, error) {
	var (
		p  models.Product
		ok bool
	)
	r.s.view(func(d *memoryData) { p, ok = d.products[id] })
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *memoryProductRepo) GetByName(_ context.Context, name string) (models.Product, error) {
	var (
		p  models.Product
		ok bool
	)
	r.s.view(func(d *memoryData) {
		for _, candidate := range d.products {
			if strings.EqualFold(candidate.Name, name) {
				p, ok = candidate, true
				return
			}
		}
	})
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Update leaves stock untouched; it only moves through AdjustStock.
func (r *memoryProductRepo) Update(_ context.Context, p models.Product) (models.Product, error) {
	err := r.s.update(func(d *memoryData) error {
		current, ok := d.products[p.ID]
		if !ok {
			return ErrProductNotFound
		}
		if err := checkProduct(d, p); err != nil {
			return err
		}
		p.Stock = current.Stock
		d.products[p.ID] = p
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes the product together with its appointment lines and logs.
func (r *memoryProductRepo) Delete(_ context.Context, id int) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.products[id]; !ok {
			return ErrProductNotFound
		}
		delete(d.products, id)
		for apptID, items := range d.lines {
			d.lines[apptID] = slices.DeleteFunc(slices.Clone(items), func(ap models.AppointmentProduct) bool {
				return ap.ProductID == id
			})
		}
		d.logs = slices.DeleteFunc(d.logs, func(l models.InventoryLog) bool { return l.ProductID == id })
		return nil
	})
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.CategoryID != nil && p.CategoryID != *pf.CategoryID {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	if pf.MinStock != nil && p.Stock < *pf.MinStock {
		return false
	}
	if pf.MaxStock != nil && p.Stock > *pf.MaxStock {
		return false
	}
	if pf.LowStock != nil && p.IsLowStock() != *pf.LowStock {
		return false
	}
	if pf.ActiveOnly && !p.Active {
		return false
	}
	return true
}

func (r *memoryProductRepo) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	var filtered []models.Product
	r.s.view(func(d *memoryData) {
		for _, p := range sortedValues(d.products) {
			if matchesFilter(p, pf) {
				filtered = append(filtered, p)
			}
		}
	})

	start, end := page(len(filtered), pf.Offset, pf.Limit)
	result := make([]models.Product, end-start)
	copy(result, filtered[start:end])
	return result, len(filtered), nil
}

func (r *memoryProductRepo) AdjustStock(_ context.Context, id, delta int) (models.Product, error) {
	var p models.Product
	err := r.s.update(func(d *memoryData) error {
		current, ok := d.products[id]
		if !ok {
			return ErrProductNotFound
		}
		if current.Stock+delta < 0 {
			return ErrInvalidQuantityChange
		}
		current.Stock += delta
		current.UpdatedAt = time.Now().UTC()
		d.products[id] = current
		p = current
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *memoryProductRepo) LowStock(context.Context) ([]models.Product, error) {
	low := []models.Product{}
	r.s.view(func(d *memoryData) {
		for _, p := range d.products {
			if p.Active && p.IsLowStock() {
				low = append(low, p)
			}
		}
	})
	slices.SortFunc(low, func(a, b models.Product) int {
		return cmp.Or(cmp.Compare(a.Stock, b.Stock), cmp.Compare(a.ID, b.ID))
	})
	return low, nil
}

func (r *memoryProductRepo) CountLowStock(ctx context.Context) (int, error) {
	low, err := r.LowStock(ctx)
	return len(low), err
}

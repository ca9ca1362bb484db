package repo

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryInventoryLogRepo struct {
	s *MemoryStore
}

func (r *memoryInventoryLogRepo) Log(_ context.Context, l models.InventoryLog) error {
	return r.s.update(func(d *memoryData) error {
		if _, ok := d.products[l.ProductID]; !ok {
			return fmt.Errorf("failed to insert inventory log: %w", ErrInvalidReference)
		}
		l.ID = d.next("inventory_logs")
		if l.CreatedAt.IsZero() {
			l.CreatedAt = time.Now().UTC()
		}
		d.logs = append(d.logs, l)
		return nil
	})
}

func (r *memoryInventoryLogRepo) GetByProductID(_ context.Context, productID int, mf MovementFilter) ([]models.InventoryLog, int, error) {
	if mf.Offset != nil && *mf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	matched := []models.InventoryLog{}
	r.s.view(func(d *memoryData) {
		for _, l := range d.logs {
			if l.ProductID != productID {
				continue
			}
			if mf.Since != nil && l.CreatedAt.Before(*mf.Since) {
				continue
			}
			if mf.Until != nil && l.CreatedAt.After(*mf.Until) {
				continue
			}
			matched = append(matched, l)
		}
	})
	slices.SortFunc(matched, func(a, b models.InventoryLog) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})

	total := len(matched)
	if mf.Limit != nil && *mf.Limit == 0 {
		return []models.InventoryLog{}, total, nil
	}
	start, end := page(total, mf.Offset, mf.Limit)
	return slices.Clone(matched[start:end]), total, nil
}

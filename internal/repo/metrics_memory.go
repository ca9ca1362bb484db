package repo

import (
	"cmp"
	"context"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type memoryMetricsRepo struct {
	s *MemoryStore
}

func (r *memoryMetricsRepo) GetDashboardMetrics(context.Context) (Metrics, error) {
	m := Metrics{AppointmentsByStatus: map[string]int{}}
	now := time.Now().UTC()

	r.s.view(func(d *memoryData) {
		m.TotalProducts = len(d.products)
		m.TotalServices = len(d.services)
		m.TotalEmployees = len(d.employees)
		m.TotalInventoryMoves = len(d.logs)

		for _, p := range d.products {
			if p.Active && p.IsLowStock() {
				m.LowStockCount++
			}
		}
		for _, a := range d.appointments {
			m.AppointmentsByStatus[string(a.Status)]++
			if !a.AppointmentDate.Before(now) && a.Status != models.StatusCancelled {
				m.UpcomingAppointments++
			}
		}

		used := map[string]int{}
		for _, items := range d.lines {
			for _, it := range items {
				if p, ok := d.products[it.ProductID]; ok {
					used[p.Name] += it.Quantity
				}
			}
		}
		for name, total := range used {
			best := m.MostUsedProduct
			if total > best.QuantityTotal || (total == best.QuantityTotal && cmp.Less(name, best.Name)) {
				m.MostUsedProduct = MostUsedProduct{Name: name, QuantityTotal: total}
			}
		}
	})

	return m, nil
}

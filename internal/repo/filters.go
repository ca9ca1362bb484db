package repo

import (
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type ProductFilter struct {
	Name       string
	CategoryID *int
	MinPrice   *float64
	MaxPrice   *float64
	MinStock   *int
	MaxStock   *int
	LowStock   *bool
	ActiveOnly bool
	Offset     *int
	Limit      *int
}

type MovementFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

type AppointmentFilter struct {
	EmployeeID *int
	ServiceID  *int
	Status     *models.Status
	From       *time.Time
	To         *time.Time
}

const defaultLimit = 100

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// page applies offset and limit to n items and returns the slice bounds.
// The limit defaults to, and is capped at, defaultLimit.
func page(n int, offset, limit *int) (int, int) {
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, n)
	}
	size := defaultLimit
	if limit != nil && *limit > 0 {
		size = min(*limit, defaultLimit)
	}
	return start, min(start+size, n)
}

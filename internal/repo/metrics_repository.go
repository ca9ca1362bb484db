package repo

import "context"

type MostUsedProduct struct {
	Name          string `json:"name"`
	QuantityTotal int    `json:"quantity_total"`
}

type Metrics struct {
	TotalProducts        int             `json:"total_products"`
	LowStockCount        int             `json:"low_stock_count"`
	TotalServices        int             `json:"total_services"`
	TotalEmployees       int             `json:"total_employees"`
	AppointmentsByStatus map[string]int  `json:"appointments_by_status"`
	UpcomingAppointments int             `json:"upcoming_appointments"`
	TotalInventoryMoves  int             `json:"total_inventory_movements"`
	MostUsedProduct      MostUsedProduct `json:"most_used_product"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}

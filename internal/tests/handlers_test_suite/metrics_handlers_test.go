package handlers_test_suite

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

func TestGetDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	f := newBookingFixture(t)

	createAppointment(r, map[string]any{
		"employee_id":      staffID,
		"service_id":       f.serviceID,
		"appointment_date": tomorrowAt(10, 0).Format(time.RFC3339),
		"status":           "confirmed",
		"products":         []map[string]any{{"product_id": f.shampooID, "quantity": 2}},
	})
	createAppointment(r, map[string]any{
		"employee_id":      staffID,
		"service_id":       f.serviceID,
		"appointment_date": tomorrowAt(11, 0).Format(time.RFC3339),
		"status":           "cancelled",
		"product_ids":      []int{f.waxID},
	})

	w := doRequest(r, http.MethodGet, "/metrics/dashboard", staffToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	m, err := decode[repo.Metrics](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if m.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", m.TotalProducts)
	}
	if m.LowStockCount != 1 {
		t.Errorf("expected 1 low-stock product, got %d", m.LowStockCount)
	}
	if m.TotalServices != 1 || m.TotalEmployees != 2 {
		t.Errorf("expected 1 service and 2 employees, got %d and %d", m.TotalServices, m.TotalEmployees)
	}
	if m.AppointmentsByStatus["confirmed"] != 1 || m.AppointmentsByStatus["cancelled"] != 1 {
		t.Errorf("unexpected status counts %v", m.AppointmentsByStatus)
	}
	if m.UpcomingAppointments != 1 {
		t.Errorf("expected 1 upcoming appointment, got %d", m.UpcomingAppointments)
	}
	if m.MostUsedProduct.Name != "Shampoo" || m.MostUsedProduct.QuantityTotal != 2 {
		t.Errorf("expected Shampoo x2 as most used, got %+v", m.MostUsedProduct)
	}
}

func TestPublicEndpoints(t *testing.T) {
	w := doRequest(r, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "appointment_tracker_http_requests_total") {
		t.Error("expected the request counter in the exposition")
	}
}

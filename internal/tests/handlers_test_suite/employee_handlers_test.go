package handlers_test_suite

import (
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

func newEmployeePayload() map[string]any {
	return map[string]any{
		"first_name":            "Luis",
		"last_name":             "Gómez",
		"email":                 "Luis@Example.com",
		"password":              "secret789",
		"password_confirmation": "secret789",
		"role":                  "stylist",
		"phone_number":          "5598765432",
	}
}

func TestCreateEmployeeHandler(t *testing.T) {
	t.Cleanup(clearAll)

	w := doRequest(r, http.MethodPost, "/employees", token, newEmployeePayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("response must not carry the password")
	}
	resp, _ := decode[handler.EmployeeResponse](w)
	if resp.Email != "luis@example.com" || resp.FullName != "Luis Gómez" || !resp.Active {
		t.Errorf("unexpected employee %+v", resp)
	}

	if w := doRequest(r, http.MethodPost, "/sessions", "", map[string]any{"email": "luis@example.com", "password": "secret789"}); w.Code != http.StatusOK {
		t.Errorf("expected the new employee to log in, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/employees", token, newEmployeePayload()); w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict for a duplicated email, got %d", w.Code)
	}
}

func TestCreateEmployeeHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)

	tests := []struct {
		name   string
		change func(p map[string]any)
		field  string
	}{
		{"Missing password", func(p map[string]any) { delete(p, "password") }, "password"},
		{"Short password", func(p map[string]any) { p["password"], p["password_confirmation"] = "abc", "abc" }, "password"},
		{"Confirmation mismatch", func(p map[string]any) { p["password_confirmation"] = "other123" }, "password_confirmation"},
		{"Bad email", func(p map[string]any) { p["email"] = "luis" }, "email"},
		{"Bad phone", func(p map[string]any) { p["phone_number"] = "12-34" }, "phone_number"},
		{"Unknown role", func(p map[string]any) { p["role"] = "wizard" }, "role"},
		{"No role", func(p map[string]any) { delete(p, "role") }, "role_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newEmployeePayload()
			tt.change(p)
			w := doRequest(r, http.MethodPost, "/employees", token, p)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
			}
			resp, _ := decode[handler.ValidationErrors](w)
			if len(resp.Errors) == 0 || resp.Errors[0].Field != tt.field {
				t.Errorf("expected an error on %q, got %+v", tt.field, resp.Errors)
			}
		})
	}
}

func TestEmployeeHandlers_AdminOnlyWrites(t *testing.T) {
	if w := doRequest(r, http.MethodGet, "/employees", staffToken, nil); w.Code != http.StatusOK {
		t.Errorf("expected staff to list employees, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/employees", staffToken, newEmployeePayload()); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/employees/"+itoa(adminID), staffToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden, got %d", w.Code)
	}
}

func TestDeleteEmployeeHandler_WithAppointments(t *testing.T) {
	t.Cleanup(clearAll)

	svc, _ := decode[models.Service](createService(r, "Shave", 20))
	w := createAppointment(r, map[string]any{
		"employee_id":      staffID,
		"service_id":       svc.ID,
		"appointment_date": tomorrowAt(16, 0),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	if w := doRequest(r, http.MethodDelete, "/employees/"+itoa(staffID), token, nil); w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/employees/9999", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestRoleAndCategoryHandlers(t *testing.T) {
	t.Cleanup(clearAll)

	for _, resource := range []string{"roles", "categories"} {
		t.Run(resource, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/"+resource, token, map[string]any{"name": "Spa"})
			if w.Code != http.StatusCreated {
				t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
			}
			created, _ := decode[models.Category](w)
			path := "/" + resource + "/" + itoa(created.ID)

			if w := doRequest(r, http.MethodPost, "/"+resource, token, map[string]any{"name": "spa"}); w.Code != http.StatusConflict {
				t.Errorf("expected 409 Conflict for a duplicated name, got %d", w.Code)
			}
			if w := doRequest(r, http.MethodPost, "/"+resource, token, map[string]any{"name": ""}); w.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected 422 for an empty name, got %d", w.Code)
			}
			if w := doRequest(r, http.MethodPost, "/"+resource, staffToken, map[string]any{"name": "Nails"}); w.Code != http.StatusForbidden {
				t.Errorf("expected 403 Forbidden for staff, got %d", w.Code)
			}

			w = doRequest(r, http.MethodPut, path, token, map[string]any{"name": "Wellness"})
			updated, _ := decode[models.Category](w)
			if w.Code != http.StatusOK || updated.Name != "Wellness" {
				t.Errorf("expected rename to succeed, got %d %+v", w.Code, updated)
			}

			if w := doRequest(r, http.MethodGet, "/"+resource+".json", staffToken, nil); w.Code != http.StatusOK {
				t.Errorf("expected staff to list, got %d", w.Code)
			}
			if w := doRequest(r, http.MethodDelete, path, token, nil); w.Code != http.StatusNoContent {
				t.Errorf("expected 204 No Content, got %d", w.Code)
			}
		})
	}

	if w := doRequest(r, http.MethodDelete, "/categories/"+itoa(categoryID), token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected an unused category to be deleted, got %d", w.Code)
	}
}

func TestDeleteCategoryHandler_InUse(t *testing.T) {
	t.Cleanup(clearAll)

	createProduct(r, map[string]any{"name": "Shampoo", "price": 10, "stock": 1})
	if w := doRequest(r, http.MethodDelete, "/categories/"+itoa(categoryID), token, nil); w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict, got %d", w.Code)
	}
}

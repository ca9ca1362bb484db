package handlers_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
)

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		payload    any
		expectCode int
	}{
		{"Valid credentials", map[string]any{"email": staffEmail, "password": staffPassword}, http.StatusOK},
		{"Wrapped in session key", map[string]any{"session": map[string]any{"email": staffEmail, "password": staffPassword}}, http.StatusOK},
		{"Wrong password", map[string]any{"email": staffEmail, "password": "nope"}, http.StatusUnauthorized},
		{"Unknown email", map[string]any{"email": "ghost@example.com", "password": "nope"}, http.StatusUnauthorized},
		{"Missing password", map[string]any{"email": staffEmail}, http.StatusUnprocessableEntity},
		{"Malformed body", "{not json", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/sessions.json", "", tt.payload)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
			if tt.expectCode != http.StatusOK {
				return
			}
			resp, err := decode[handler.SessionResponse](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Token == "" || resp.RefreshToken == "" {
				t.Error("expected both tokens")
			}
			if resp.Employee == nil || resp.Employee.FullName != "Ana Pérez" {
				t.Errorf("expected the employee in the response, got %+v", resp.Employee)
			}
		})
	}
}

func TestLoginHandler_InactiveEmployee(t *testing.T) {
	t.Cleanup(clearAll)

	w := doRequest(r, http.MethodPut, "/employees/"+itoa(staffID), token, map[string]any{"active": false})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	w = doRequest(r, http.MethodPost, "/sessions", "", map[string]any{"email": staffEmail, "password": staffPassword})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestRefreshAndLogoutHandlers(t *testing.T) {
	w := doRequest(r, http.MethodPost, "/sessions", "", map[string]any{"email": staffEmail, "password": staffPassword})
	login, _ := decode[handler.SessionResponse](w)

	w = doRequest(r, http.MethodPost, "/sessions/refresh", "", map[string]any{"refresh_token": login.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	refreshed, _ := decode[handler.SessionResponse](w)
	if refreshed.Token == "" || refreshed.RefreshToken == login.RefreshToken {
		t.Fatalf("expected a rotated token pair, got %+v", refreshed)
	}

	w = doRequest(r, http.MethodPost, "/sessions/refresh", "", map[string]any{"refresh_token": login.RefreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected a used refresh token to be rejected, got %d", w.Code)
	}

	w = doRequest(r, http.MethodDelete, "/sessions", "", map[string]any{"refresh_token": refreshed.RefreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected logout without bearer to be rejected, got %d", w.Code)
	}
	w = doRequest(r, http.MethodDelete, "/sessions", refreshed.Token, map[string]any{"refresh_token": refreshed.RefreshToken})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}
	w = doRequest(r, http.MethodPost, "/sessions/refresh", "", map[string]any{"refresh_token": refreshed.RefreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected a revoked refresh token to be rejected, got %d", w.Code)
	}
}

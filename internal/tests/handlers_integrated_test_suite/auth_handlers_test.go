//go:build integration

package handlers_integrated_test_suite

import (
	"net/http"
	"strconv"
	"testing"
)

func TestAdminOnlyRoutes(t *testing.T) {
	t.Cleanup(clearAll)

	tests := []struct {
		name       string
		bearer     string
		expectCode int
	}{
		{"Admin", token, http.StatusCreated},
		{"Staff", staffToken, http.StatusForbidden},
		{"Anonymous", "", http.StatusUnauthorized},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/roles", tt.bearer, map[string]any{"name": "receptionist" + string(rune('a'+i))})
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}

func TestDeleteRoleInUse(t *testing.T) {
	t.Cleanup(clearAll)

	roles, _ := decode[[]struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}](doRequest(r, http.MethodGet, "/roles", staffToken, nil))
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	for _, role := range roles {
		w := doRequest(r, http.MethodDelete, "/roles/"+strconv.Itoa(role.ID), token, nil)
		if w.Code != http.StatusConflict {
			t.Errorf("role %s: expected 409 Conflict, got %d", role.Name, w.Code)
		}
	}
}

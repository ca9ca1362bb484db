package handlers_test_suite

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

func TestAdjustQuantityHandler(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Dye", "price": 10, "stock": 10}))

	t.Run("Increase stock", func(t *testing.T) {
		w := adjustProduct(r, created.ID, 5)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}
		resp, _ := decode[handler.ProductResponse](w)
		if resp.Stock != 15 {
			t.Errorf("expected stock 15, got %v", resp.Stock)
		}
	})

	t.Run("Decrease stock", func(t *testing.T) {
		w := adjustProduct(r, created.ID, -3)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		resp, _ := decode[handler.ProductResponse](w)
		if resp.Stock != 12 {
			t.Errorf("expected stock 12, got %v", resp.Stock)
		}
	})

	t.Run("Too much decrease", func(t *testing.T) {
		w := adjustProduct(r, created.ID, -100)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409 Conflict, got %d", w.Code)
		}
	})

	t.Run("Zero delta", func(t *testing.T) {
		w := adjustProduct(r, created.ID, 0)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("Unknown product", func(t *testing.T) {
		w := adjustProduct(r, 9999, 1)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 Not Found, got %d", w.Code)
		}
	})
}

func TestGetMovementsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Dye", "price": 10, "stock": 10}))
	for _, d := range []int{5, -2, 3} {
		if w := adjustProduct(r, created.ID, d); w.Code != http.StatusOK {
			t.Fatalf("adjust %d failed with %d", d, w.Code)
		}
	}
	path := fmt.Sprintf("/products/%d/movements", created.ID)

	w := doRequest(r, http.MethodGet, path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decode[handler.MovementsSearchResult](w)
	if resp.Meta.TotalCount != 3 || len(resp.Data) != 3 {
		t.Fatalf("expected 3 movements, got total %d and %d rows", resp.Meta.TotalCount, len(resp.Data))
	}
	if resp.Data[0].Change != 3 {
		t.Errorf("expected newest movement first, got change %d", resp.Data[0].Change)
	}
	if resp.Data[0].Reason != models.ReasonManualAdjustment {
		t.Errorf("expected reason %q, got %q", models.ReasonManualAdjustment, resp.Data[0].Reason)
	}

	w = doRequest(r, http.MethodGet, path+"?limit=1&offset=1", token, nil)
	page, _ := decode[handler.MovementsSearchResult](w)
	if page.Meta.TotalCount != 3 || len(page.Data) != 1 || page.Data[0].Change != -2 {
		t.Errorf("unexpected page: %+v", page)
	}

	w = doRequest(r, http.MethodGet, path+"?since=2000-01-01T00:00:00Z&until=2000-12-31T00:00:00Z", token, nil)
	none, _ := decode[handler.MovementsSearchResult](w)
	if none.Meta.TotalCount != 0 {
		t.Errorf("expected no movements in 2000, got %d", none.Meta.TotalCount)
	}

	for _, q := range []string{"?since=yesterday", "?limit=-1"} {
		if w := doRequest(r, http.MethodGet, path+q, token, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 Bad Request, got %d", q, w.Code)
		}
	}
	if w := doRequest(r, http.MethodGet, "/products/9999/movements", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestExportMovementsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Dye", "price": 10, "stock": 10}))
	adjustProduct(r, created.ID, 4)
	adjustProduct(r, created.ID, -1)
	path := fmt.Sprintf("/products/%d/movements/export", created.ID)

	t.Run("CSV", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, path+"?format=csv", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected text/csv, got %q", ct)
		}
		records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
		if err != nil {
			t.Fatalf("invalid csv: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d records", len(records))
		}
		if strings.Join(records[0], ",") != "id,product_id,appointment_id,change,reason,created_at" {
			t.Errorf("unexpected header %v", records[0])
		}
	})

	t.Run("JSON", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, path+"?format=json", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		logs, err := decode[[]models.InventoryLog](w)
		if err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(logs) != 2 {
			t.Errorf("expected 2 movements, got %d", len(logs))
		}
	})

	t.Run("Unknown format", func(t *testing.T) {
		if w := doRequest(r, http.MethodGet, path+"?format=xml", token, nil); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}

package handlers_test_suite

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)

	w := createProduct(r, map[string]any{"name": "Shampoo", "price": 120.5, "stock": 10})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	resp, err := decode[handler.ProductResponse](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Shampoo" {
		t.Errorf("expected name 'Shampoo', got %v", resp.Name)
	}
	if resp.Price != 120.5 {
		t.Errorf("expected price 120.5, got %v", resp.Price)
	}
	if resp.Stock != 10 {
		t.Errorf("expected stock 10, got %v", resp.Stock)
	}
	if resp.LowStockThreshold != 5 {
		t.Errorf("expected default threshold 5, got %v", resp.LowStockThreshold)
	}
	if !resp.Active {
		t.Error("expected new product to be active")
	}
}

func TestCreateProductHandler_RailsStyleBody(t *testing.T) {
	t.Cleanup(clearAll)

	body := fmt.Sprintf(`{"product":{"name":"Wax","description":"strong","price":"80","stock":"3","category_id":"%d"}}`, categoryID)
	w := doRequest(r, http.MethodPost, "/products.json", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	resp, _ := decode[handler.ProductResponse](w)
	if resp.Price != 80 || resp.Stock != 3 {
		t.Errorf("expected price 80 and stock 3, got %v and %v", resp.Price, resp.Stock)
	}
	if !resp.LowStock {
		t.Error("expected stock 3 to be flagged as low")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)

	tests := []struct {
		name           string
		payload        map[string]any
		expectCode     int
		expectedFields []string
	}{
		{
			name:           "Empty name and price",
			payload:        map[string]any{"name": "", "stock": 1},
			expectCode:     http.StatusUnprocessableEntity,
			expectedFields: []string{"name", "price"},
		},
		{
			name:           "Negative price",
			payload:        map[string]any{"name": "Gel", "price": -5, "stock": 1},
			expectCode:     http.StatusUnprocessableEntity,
			expectedFields: []string{"price"},
		},
		{
			name:           "Negative stock",
			payload:        map[string]any{"name": "Gel", "price": 5, "stock": -1},
			expectCode:     http.StatusUnprocessableEntity,
			expectedFields: []string{"stock"},
		},
		{
			name:           "Unknown category",
			payload:        map[string]any{"name": "Gel", "price": 5, "stock": 1, "category_id": 999},
			expectCode:     http.StatusUnprocessableEntity,
			expectedFields: []string{"category_id"},
		},
		{
			name:       "Price is not a number",
			payload:    map[string]any{"name": "Gel", "price": "cheap", "stock": 1},
			expectCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
			if len(tt.expectedFields) == 0 {
				return
			}

			resp, err := decode[handler.ValidationErrors](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			var fields []string
			for _, e := range resp.Errors {
				fields = append(fields, e.Field)
			}
			for _, f := range tt.expectedFields {
				if !slices.Contains(fields, f) {
					t.Errorf("expected error for field %q, got %v", f, fields)
				}
			}
		})
	}
}

func TestCreateProductHandler_Duplicated(t *testing.T) {
	t.Cleanup(clearAll)

	if w := createProduct(r, map[string]any{"name": "Comb", "price": 10, "stock": 1}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	if w := createProduct(r, map[string]any{"name": "Comb", "price": 12, "stock": 1}); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestProductHandlers_RequireToken(t *testing.T) {
	w := doRequest(r, http.MethodGet, "/products", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/products", "garbage", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestGetProductsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	createProduct(r, map[string]any{"name": "Shampoo", "price": 10, "stock": 10})
	createProduct(r, map[string]any{"name": "Old dye", "price": 10, "stock": 10, "active": false})

	w := doRequest(r, http.MethodGet, "/products.json", staffToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	all, _ := decode[[]handler.ProductResponse](w)
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	w = doRequest(r, http.MethodGet, "/products?active=true", staffToken, nil)
	active, _ := decode[[]handler.ProductResponse](w)
	if len(active) != 1 || active[0].Name != "Shampoo" {
		t.Fatalf("expected only Shampoo, got %+v", active)
	}

	w = doRequest(r, http.MethodGet, "/products?active=maybe", staffToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Brush", "price": 10, "stock": 2}))

	tests := []struct {
		name       string
		path       string
		expectCode int
	}{
		{"Existing", fmt.Sprintf("/products/%d", created.ID), http.StatusOK},
		{"Existing with suffix", fmt.Sprintf("/products/%d.json", created.ID), http.StatusOK},
		{"Unknown", "/products/9999", http.StatusNotFound},
		{"Bad id", "/products/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tt.path, token, nil)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}

func TestUpdateProductHandler_Partial(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Brush", "price": 10, "stock": 2}))

	w := doRequest(r, http.MethodPut, fmt.Sprintf("/products/%d", created.ID), token, map[string]any{"price": 15})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	updated, _ := decode[handler.ProductResponse](w)
	if updated.Price != 15 {
		t.Errorf("expected price 15, got %v", updated.Price)
	}
	if updated.Name != "Brush" || updated.Stock != 2 {
		t.Errorf("expected untouched fields to keep their values, got %+v", updated)
	}

	w = doRequest(r, http.MethodPut, "/products/9999", token, map[string]any{"price": 15})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestUpdateProductHandler_StockChangeIsLogged(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Brush", "price": 10, "stock": 10}))
	path := fmt.Sprintf("/products/%d", created.ID)
	movementsPath := path + "/movements"

	w := doRequest(r, http.MethodGet, movementsPath, token, nil)
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Fatalf("expected an empty data list, got %s", w.Body.String())
	}

	w = doRequest(r, http.MethodPut, path, token, map[string]any{"stock": 100})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	updated, _ := decode[handler.ProductResponse](w)
	if updated.Stock != 100 {
		t.Errorf("expected stock 100, got %d", updated.Stock)
	}

	w = doRequest(r, http.MethodPut, path, token, map[string]any{"description": "Round brush"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	logs, _ := decode[handler.MovementsSearchResult](doRequest(r, http.MethodGet, movementsPath, token, nil))
	if logs.Meta.TotalCount != 1 || len(logs.Data) != 1 {
		t.Fatalf("expected 1 movement, got %+v", logs)
	}
	if logs.Data[0].Change != 90 || logs.Data[0].Reason != models.ReasonManualAdjustment {
		t.Errorf("expected +90 manual adjustment, got %+v", logs.Data[0])
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Brush", "price": 10, "stock": 2}))
	path := fmt.Sprintf("/products/%d", created.ID)

	if w := doRequest(r, http.MethodDelete, path, token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, path, token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestFilterProductsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	createProduct(r, map[string]any{"name": "Shampoo", "price": 100, "stock": 20})
	createProduct(r, map[string]any{"name": "Dry shampoo", "price": 60, "stock": 2})
	createProduct(r, map[string]any{"name": "Wax", "price": 40, "stock": 8})

	tests := []struct {
		name          string
		query         string
		expectCode    int
		expectedTotal int
		expectedLen   int
	}{
		{"By name", "?name=shampoo", http.StatusOK, 2, 2},
		{"By price range", "?minPrice=50&maxPrice=100", http.StatusOK, 2, 2},
		{"By stock range", "?minStock=5&maxStock=10", http.StatusOK, 1, 1},
		{"Low stock only", "?lowStock=true", http.StatusOK, 1, 1},
		{"Paginated", "?limit=1&offset=1", http.StatusOK, 3, 1},
		{"Offset past the end", "?offset=10", http.StatusOK, 3, 0},
		{"Zero limit", "?limit=0", http.StatusBadRequest, 0, 0},
		{"Negative offset", "?offset=-1", http.StatusBadRequest, 0, 0},
		{"Bad price", "?minPrice=abc", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/products/search"+tt.query, token, nil)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
			if tt.expectCode != http.StatusOK {
				return
			}
			resp, err := decode[handler.ProductsSearchResult](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Meta.TotalCount != tt.expectedTotal {
				t.Errorf("expected total %d, got %d", tt.expectedTotal, resp.Meta.TotalCount)
			}
			if len(resp.Data) != tt.expectedLen {
				t.Errorf("expected %d products, got %d", tt.expectedLen, len(resp.Data))
			}
		})
	}
}

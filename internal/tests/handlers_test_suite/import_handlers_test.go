package handlers_test_suite

import (
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
)

func importCSV(bearer, csvContent, query string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, "products.csv")
	req := httptest.NewRequest(http.MethodPost, "/products/import"+query, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+bearer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	t.Cleanup(clearAll)

	csvContent := "name,description,price,stock,low_stock_threshold,category\n" +
		"Shampoo,Daily use,120,10,3,Hair\n" +
		"Wax,Strong hold,abc,2,,Hair\n" +
		"Gel,Light hold,50,4,,Nails\n" +
		"Conditioner,Soft,90,-1,,Hair\n" +
		"Mousse,Volume,70,6,,hair\n"

	w := importCSV(token, csvContent, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	resp, err := decode[handler.ImportProductsResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported products, got %d", resp.ImportedProductsCount)
	}

	expected := map[int]string{
		3: "invalid price",
		4: "category 'Nails' does not exist",
		5: "invalid stock",
	}
	if len(resp.Errors) != len(expected) {
		t.Fatalf("expected %d errors, got %+v", len(expected), resp.Errors)
	}
	for i, e := range resp.Errors {
		if expected[e.Row] != e.Description {
			t.Errorf("row %d: expected %q, got %q", e.Row, expected[e.Row], e.Description)
		}
		if i > 0 && resp.Errors[i-1].Row > e.Row {
			t.Errorf("expected errors sorted by row")
		}
	}
}

func TestImportProductsHandler_Modes(t *testing.T) {
	t.Cleanup(clearAll)

	created, _ := decode[handler.ProductResponse](createProduct(r, map[string]any{"name": "Shampoo", "price": 100, "stock": 10}))
	csvContent := "name,description,price,stock,category\nShampoo,New formula,130,14,Hair\n"

	w := importCSV(token, csvContent, "?mode=skip")
	skipped, _ := decode[handler.ImportProductsResult](w)
	if skipped.ImportedProductsCount != 0 || len(skipped.Errors) != 1 {
		t.Fatalf("expected the existing product to be skipped, got %+v", skipped)
	}

	w = importCSV(token, csvContent, "?mode=update")
	updated, _ := decode[handler.ImportProductsResult](w)
	if updated.ImportedProductsCount != 1 || len(updated.Errors) != 0 {
		t.Fatalf("expected the existing product to be updated, got %+v", updated)
	}

	got, _ := decode[handler.ProductResponse](doRequest(r, http.MethodGet, "/products/"+itoa(created.ID), token, nil))
	if got.Price != 130 || got.Stock != 14 || got.Description != "New formula" {
		t.Errorf("unexpected product after update: %+v", got)
	}

	movements, _ := decode[handler.MovementsSearchResult](doRequest(r, http.MethodGet, "/products/"+itoa(created.ID)+"/movements", token, nil))
	if movements.Meta.TotalCount != 1 || movements.Data[0].Change != 4 || movements.Data[0].Reason != "import" {
		t.Errorf("expected an import movement of +4, got %+v", movements.Data)
	}
}

func TestImportProductsHandler_Rejected(t *testing.T) {
	t.Cleanup(clearAll)

	if w := importCSV(staffToken, "name,description,price,stock,category\n", ""); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden for a non-admin, got %d", w.Code)
	}
	if w := importCSV(token, "name,price\nShampoo,1\n", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request for missing columns, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/products/import", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request without a file, got %d", w.Code)
	}
}

//go:build integration

package handlers_integrated_test_suite

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
)

func TestImportProductsHandler_UpdateMode(t *testing.T) {
	t.Cleanup(clearAll)

	existing := createProduct(r, "Shampoo", 10, 5)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "products.csv")
	part.Write([]byte("name,description,price,stock,category\nshampoo,New,12.5,7,Hair\nGel,Light,8,3,hair\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/products/import?mode=update", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	resp, _ := decode[handler.ImportProductsResult](w)
	if resp.ImportedProductsCount != 2 || len(resp.Errors) != 0 {
		t.Fatalf("unexpected result %+v", resp)
	}
	if got := productStock(r, existing.ID); got != 7 {
		t.Errorf("expected stock 7, got %d", got)
	}

	search, _ := decode[handler.ProductsSearchResult](doRequest(r, http.MethodGet, "/products/search?lowStock=true", token, nil))
	if search.Meta.TotalCount != 1 || search.Data[0].Name != "Gel" {
		t.Errorf("expected only Gel to be low on stock, got %+v", search.Data)
	}
}

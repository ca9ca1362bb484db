package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

func productRequestFrom(p models.Product) ProductRequest {
	price := FlexFloat(p.Price)
	stock := FlexInt(p.Stock)
	threshold := FlexInt(p.LowStockThreshold)
	active := FlexBool(p.Active)
	return ProductRequest{
		Name:              p.Name,
		Description:       p.Description,
		Price:             &price,
		Stock:             &stock,
		LowStockThreshold: &threshold,
		CategoryID:        FlexInt(p.CategoryID),
		Active:            &active,
	}
}

// checkCategory writes a 422 and returns false when the category is unknown.
func (s *Server) checkCategory(w http.ResponseWriter, r *http.Request, id int) bool {
	_, err := s.store.Categories().GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrCategoryNotFound) {
		s.writeValidation(w, r, []validator.FieldError{{Field: "category_id", Description: "category does not exist"}})
		return false
	}
	if err != nil {
		s.writeError(w, r, err, "category")
		return false
	}
	return true
}

func (s *Server) threshold(req ProductRequest) int {
	if req.LowStockThreshold == nil {
		return s.defaultThreshold
	}
	return int(*req.LowStockThreshold)
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Router /products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, "product", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if !s.validate(w, r, req) {
		return
	}
	if !s.checkCategory(w, r, int(req.CategoryID)) {
		return
	}

	now := time.Now().UTC()
	product := models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             float64(*req.Price),
		Stock:             int(*req.Stock),
		LowStockThreshold: s.threshold(req),
		CategoryID:        int(req.CategoryID),
		Active:            req.Active.value(true),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	created, err := s.store.Products().Create(r.Context(), product)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Param active query bool false "Only active products"
// @Success 200 {array} ProductResponse
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
// @Security BearerAuth
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r.URL.Query(), "active")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	products, err := s.store.Products().GetAll(r.Context(), active != nil && *active)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	s.writeJSON(w, r, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
// @Security BearerAuth
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := s.store.Products().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}
	s.writeJSON(w, r, http.StatusOK, toProductResponse(product))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Also removes the product from every appointment.
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if err := s.store.Products().Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Fields left out of the body keep their value. A changed stock is applied as a logged manual adjustment.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	product, err := s.store.Products().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}

	req := productRequestFrom(product)
	if err := readJSON(w, r, "product", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if !s.validate(w, r, req) {
		return
	}
	if int(req.CategoryID) != product.CategoryID && !s.checkCategory(w, r, int(req.CategoryID)) {
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = float64(*req.Price)
	delta := int(*req.Stock) - product.Stock
	product.LowStockThreshold = s.threshold(req)
	product.CategoryID = int(req.CategoryID)
	product.Active = req.Active.value(product.Active)
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.store.Products().Update(r.Context(), product)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}
	if delta != 0 {
		if updated, err = s.booking.AdjustStock(r.Context(), id, delta, models.ReasonManualAdjustment); err != nil {
			s.writeError(w, r, err, "product")
			return
		}
	}
	s.writeJSON(w, r, http.StatusOK, toProductResponse(updated))
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags products
// @Produce json
// @Param name query string false "Filter by name"
// @Param category_id query int false "Filter by category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minStock query int false "Minimum stock"
// @Param maxStock query int false "Maximum stock"
// @Param lowStock query bool false "Only products below their threshold"
// @Param active query bool false "Only active products"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
// @Security BearerAuth
func (s *Server) FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, total, err := s.store.Products().Filter(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err, "product")
		return
	}

	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range products {
		resp.Data[i] = toProductResponse(p)
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func productFilter(r *http.Request) (repo.ProductFilter, error) {
	q := r.URL.Query()
	f := repo.ProductFilter{Name: strings.TrimSpace(q.Get("name"))}

	var err error
	if f.CategoryID, err = queryInt(q, "category_id"); err != nil {
		return f, err
	}
	if f.MinPrice, err = queryFloat(q, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(q, "maxPrice"); err != nil {
		return f, err
	}
	if f.MinStock, err = queryInt(q, "minStock"); err != nil {
		return f, err
	}
	if f.MaxStock, err = queryInt(q, "maxStock"); err != nil {
		return f, err
	}
	if f.LowStock, err = queryBool(q, "lowStock"); err != nil {
		return f, err
	}
	active, err := queryBool(q, "active")
	if err != nil {
		return f, err
	}
	f.ActiveOnly = active != nil && *active
	if f.Offset, f.Limit, err = pagination(q); err != nil {
		return f, err
	}
	return f, nil
}

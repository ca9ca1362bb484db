package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

// GetCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {string} string "Internal error"
// @Router /categories [get]
// @Security BearerAuth
func (s *Server) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories().GetAll(r.Context())
	if err != nil {
		s.writeError(w, r, err, "category")
		return
	}
	s.writeJSON(w, r, http.StatusOK, categories)
}

// GetCategoryByIDHandler godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /categories/{id} [get]
// @Security BearerAuth
func (s *Server) GetCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}
	category, err := s.store.Categories().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "category")
		return
	}
	s.writeJSON(w, r, http.StatusOK, category)
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} models.Category
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Router /categories [post]
// @Security BearerAuth
func (s *Server) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := readJSON(w, r, "category", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if !s.validate(w, r, req) {
		return
	}

	now := time.Now().UTC()
	created, err := s.store.Categories().Create(r.Context(), models.Category{Name: req.Name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		s.writeError(w, r, err, "category")
		return
	}
	s.writeJSON(w, r, http.StatusCreated, created)
}

// UpdateCategoryHandler godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body CategoryRequest true "Updated category"
// @Success 200 {object} models.Category
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Router /categories/{id} [put]
// @Security BearerAuth
func (s *Server) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}
	category, err := s.store.Categories().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "category")
		return
	}

	req := CategoryRequest{Name: category.Name}
	if err := readJSON(w, r, "category", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if !s.validate(w, r, req) {
		return
	}

	category.Name = req.Name
	category.UpdatedAt = time.Now().UTC()
	updated, err := s.store.Categories().Update(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err, "category")
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

// DeleteCategoryHandler godoc
// @Summary Delete a category
// @Tags categories
// @Param id path int true "Category ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Category in use"
// @Router /categories/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}
	if err := s.store.Categories().Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

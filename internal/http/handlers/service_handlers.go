package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

func serviceRequestFrom(svc models.Service) ServiceRequest {
	price := FlexFloat(svc.Price)
	duration := FlexInt(svc.Duration)
	active := FlexBool(svc.Active)
	return ServiceRequest{
		Name:        svc.Name,
		Description: svc.Description,
		Price:       &price,
		Duration:    &duration,
		CategoryID:  FlexInt(svc.CategoryID),
		Active:      &active,
	}
}

// GetServicesHandler godoc
// @Summary List services
// @Tags services
// @Produce json
// @Param active query bool false "Only active services"
// @Success 200 {array} models.Service
// @Failure 400 {string} string "Invalid query"
// @Router /services [get]
// @Security BearerAuth
func (s *Server) GetServicesHandler(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r.URL.Query(), "active")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	services, err := s.store.Services().GetAll(r.Context(), active != nil && *active)
	if err != nil {
		s.writeError(w, r, err, "service")
		return
	}
	s.writeJSON(w, r, http.StatusOK, services)
}

// GetServiceByIDHandler godoc
// @Summary Get service by ID
// @Tags services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} models.Service
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /services/{id} [get]
// @Security BearerAuth
func (s *Server) GetServiceByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid service ID", http.StatusBadRequest)
		return
	}
	svc, err := s.store.Services().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "service")
		return
	}
	s.writeJSON(w, r, http.StatusOK, svc)
}

// CreateServiceHandler godoc
// @Summary Create a service
// @Tags services
// @Accept json
// @Produce json
// @Param service body ServiceRequest true "Service to add"
// @Success 201 {object} models.Service
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Router /services [post]
// @Security BearerAuth
func (s *Server) CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := readJSON(w, r, "service", &req); err != nil {
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
	created, err := s.store.Services().Create(r.Context(), models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       float64(*req.Price),
		Duration:    int(*req.Duration),
		CategoryID:  int(req.CategoryID),
		Active:      req.Active.value(true),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.writeError(w, r, err, "service")
		return
	}
	s.writeJSON(w, r, http.StatusCreated, created)
}

// UpdateServiceHandler godoc
// @Summary Update a service
// @Description Fields left out of the body keep their value.
// @Tags services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param service body ServiceRequest true "Updated service"
// @Success 200 {object} models.Service
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Router /services/{id} [put]
// @Security BearerAuth
func (s *Server) UpdateServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid service ID", http.StatusBadRequest)
		return
	}
	svc, err := s.store.Services().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "service")
		return
	}

	req := serviceRequestFrom(svc)
	if err := readJSON(w, r, "service", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if !s.validate(w, r, req) {
		return
	}
	if int(req.CategoryID) != svc.CategoryID && !s.checkCategory(w, r, int(req.CategoryID)) {
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = float64(*req.Price)
	svc.Duration = int(*req.Duration)
	svc.CategoryID = int(req.CategoryID)
	svc.Active = req.Active.value(svc.Active)
	svc.UpdatedAt = time.Now().UTC()

	updated, err := s.store.Services().Update(r.Context(), svc)
	if err != nil {
		s.writeError(w, r, err, "service")
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

// DeleteServiceHandler godoc
// @Summary Delete a service
// @Description Deletes the service and its appointments, giving back the stock they held.
// @Tags services
// @Param id path int true "Service ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /services/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid service ID", http.StatusBadRequest)
		return
	}
	if err := s.booking.DeleteServiceCascade(r.Context(), id); err != nil {
		s.writeError(w, r, err, "service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

// GetRolesHandler godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {array} models.Role
// @Failure 500 {string} string "Internal error"
// @Router /roles [get]
// @Security BearerAuth
func (s *Server) GetRolesHandler(w http.ResponseWriter, r *http.Request) {
	roles, err := s.store.Roles().GetAll(r.Context())
	if err != nil {
		s.writeError(w, r, err, "role")
		return
	}
	s.writeJSON(w, r, http.StatusOK, roles)
}

// GetRoleByIDHandler godoc
// @Summary Get role by ID
// @Tags roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} models.Role
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /roles/{id} [get]
// @Security BearerAuth
func (s *Server) GetRoleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid role ID", http.StatusBadRequest)
		return
	}
	role, err := s.store.Roles().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "role")
		return
	}
	s.writeJSON(w, r, http.StatusOK, role)
}

// CreateRoleHandler godoc
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body RoleRequest true "Role to add"
// @Success 201 {object} models.Role
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Router /roles [post]
// @Security BearerAuth
func (s *Server) CreateRoleHandler(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := readJSON(w, r, "role", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if !s.validate(w, r, req) {
		return
	}

	now := time.Now().UTC()
	created, err := s.store.Roles().Create(r.Context(), models.Role{Name: req.Name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		s.writeError(w, r, err, "role")
		return
	}
	s.writeJSON(w, r, http.StatusCreated, created)
}

// UpdateRoleHandler godoc
// @Summary Rename a role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param role body RoleRequest true "Updated role"
// @Success 200 {object} models.Role
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicated name"
// @Failure 422 {object} ValidationErrors
// @Router /roles/{id} [put]
// @Security BearerAuth
func (s *Server) UpdateRoleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid role ID", http.StatusBadRequest)
		return
	}
	role, err := s.store.Roles().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "role")
		return
	}

	req := RoleRequest{Name: role.Name}
	if err := readJSON(w, r, "role", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if !s.validate(w, r, req) {
		return
	}

	role.Name = req.Name
	role.UpdatedAt = time.Now().UTC()
	updated, err := s.store.Roles().Update(r.Context(), role)
	if err != nil {
		s.writeError(w, r, err, "role")
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

// DeleteRoleHandler godoc
// @Summary Delete a role
// @Tags roles
// @Param id path int true "Role ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Role in use"
// @Router /roles/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteRoleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid role ID", http.StatusBadRequest)
		return
	}
	if err := s.store.Roles().Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

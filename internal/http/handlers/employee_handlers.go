package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

func employeeRequestFrom(e models.Employee) EmployeeRequest {
	active := FlexBool(e.Active)
	return EmployeeRequest{
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		RoleID:      FlexInt(e.RoleID),
		PhoneNumber: e.PhoneNumber,
		Active:      &active,
		PushToken:   e.PushToken,
	}
}

func (req *EmployeeRequest) normalize() {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Role = strings.TrimSpace(req.Role)
}

// resolveRole returns the role id named by role_id or, failing that, by role.
func (s *Server) resolveRole(ctx context.Context, req EmployeeRequest) (int, *validator.FieldError, error) {
	if req.Role != "" {
		role, err := s.store.Roles().GetByName(ctx, req.Role)
		if errors.Is(err, repo.ErrRoleNotFound) {
			return 0, &validator.FieldError{Field: "role", Description: "role does not exist"}, nil
		}
		if err != nil {
			return 0, nil, err
		}
		return role.ID, nil, nil
	}
	if req.RoleID == 0 {
		return 0, &validator.FieldError{Field: "role_id", Description: "field is required"}, nil
	}
	_, err := s.store.Roles().GetByID(ctx, int(req.RoleID))
	if errors.Is(err, repo.ErrRoleNotFound) {
		return 0, &validator.FieldError{Field: "role_id", Description: "role does not exist"}, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return int(req.RoleID), nil, nil
}

// GetEmployeesHandler godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Success 200 {array} EmployeeResponse
// @Failure 500 {string} string "Internal error"
// @Router /employees [get]
// @Security BearerAuth
func (s *Server) GetEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.Employees().GetAll(r.Context())
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = toEmployeeResponse(e)
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// GetEmployeeByIDHandler godoc
// @Summary Get employee by ID
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} EmployeeResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /employees/{id} [get]
// @Security BearerAuth
func (s *Server) GetEmployeeByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid employee ID", http.StatusBadRequest)
		return
	}
	e, err := s.store.Employees().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}
	s.writeJSON(w, r, http.StatusOK, toEmployeeResponse(e))
}

// CreateEmployeeHandler godoc
// @Summary Create an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body EmployeeRequest true "Employee to add"
// @Success 201 {object} EmployeeResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {string} string "Duplicated email"
// @Failure 422 {object} ValidationErrors
// @Router /employees [post]
// @Security BearerAuth
func (s *Server) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := readJSON(w, r, "employee", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.normalize()
	if req.Password == "" {
		s.writeValidation(w, r, []validator.FieldError{{Field: "password", Description: "field is required"}})
		return
	}
	if !s.validate(w, r, req) {
		return
	}
	roleID, fieldErr, err := s.resolveRole(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}
	if fieldErr != nil {
		s.writeValidation(w, r, []validator.FieldError{*fieldErr})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}

	now := time.Now().UTC()
	created, err := s.store.Employees().Create(r.Context(), models.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       roleID,
		PhoneNumber:  req.PhoneNumber,
		Active:       req.Active.value(true),
		PushToken:    req.PushToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toEmployeeResponse(created))
}

// UpdateEmployeeHandler godoc
// @Summary Update an employee
// @Description Fields left out of the body keep their value. The password changes only when sent.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param employee body EmployeeRequest true "Updated employee"
// @Success 200 {object} EmployeeResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicated email"
// @Failure 422 {object} ValidationErrors
// @Router /employees/{id} [put]
// @Security BearerAuth
func (s *Server) UpdateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid employee ID", http.StatusBadRequest)
		return
	}
	e, err := s.store.Employees().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}

	req := employeeRequestFrom(e)
	if err := readJSON(w, r, "employee", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.normalize()
	if !s.validate(w, r, req) {
		return
	}
	roleID, fieldErr, err := s.resolveRole(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}
	if fieldErr != nil {
		s.writeValidation(w, r, []validator.FieldError{*fieldErr})
		return
	}

	if req.Password != "" {
		if e.PasswordHash, err = auth.HashPassword(req.Password); err != nil {
			s.writeError(w, r, err, "employee")
			return
		}
	}
	e.FirstName = req.FirstName
	e.LastName = req.LastName
	e.Email = req.Email
	e.RoleID = roleID
	e.PhoneNumber = req.PhoneNumber
	e.Active = req.Active.value(e.Active)
	e.PushToken = req.PushToken
	e.UpdatedAt = time.Now().UTC()

	updated, err := s.store.Employees().Update(r.Context(), e)
	if err != nil {
		s.writeError(w, r, err, "employee")
		return
	}
	s.writeJSON(w, r, http.StatusOK, toEmployeeResponse(updated))
}

// DeleteEmployeeHandler godoc
// @Summary Delete an employee
// @Tags employees
// @Param id path int true "Employee ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Employee has appointments"
// @Router /employees/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid employee ID", http.StatusBadRequest)
		return
	}
	if err := s.store.Employees().Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "employee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/appointment-tracker/internal/booking"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

var errInvalidStatus = errors.New("invalid status")

func (s *Server) parseStatus(w http.ResponseWriter, r *http.Request, raw *string) (*models.Status, error) {
	if raw == nil {
		return nil, nil
	}
	st, err := models.ParseStatus(*raw)
	if err != nil {
		s.writeValidation(w, r, []validator.FieldError{{Field: "status", Description: err.Error()}})
		return nil, errInvalidStatus
	}
	return &st, nil
}

func appointmentFilter(r *http.Request) (repo.AppointmentFilter, error) {
	q := r.URL.Query()
	var (
		f   repo.AppointmentFilter
		err error
	)
	if f.EmployeeID, err = queryInt(q, "employee_id"); err != nil {
		return f, err
	}
	if f.ServiceID, err = queryInt(q, "service_id"); err != nil {
		return f, err
	}
	if raw := q.Get("status"); raw != "" {
		st, err := models.ParseStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}
	if f.From, err = queryTime(q, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryTime(q, "to"); err != nil {
		return f, err
	}
	return f, nil
}

// GetAppointmentsHandler godoc
// @Summary List appointments
// @Tags appointments
// @Produce json
// @Param employee_id query int false "Filter by employee"
// @Param service_id query int false "Filter by service"
// @Param status query string false "Filter by status"
// @Param from query string false "Appointments at or after this time (RFC3339)"
// @Param to query string false "Appointments at or before this time (RFC3339)"
// @Success 200 {array} models.Appointment
// @Failure 400 {string} string "Invalid query"
// @Router /appointments [get]
// @Security BearerAuth
func (s *Server) GetAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	f, err := appointmentFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	appointments, err := s.store.Appointments().GetAll(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err, "appointment")
		return
	}
	s.writeJSON(w, r, http.StatusOK, appointments)
}

// GetAppointmentByIDHandler godoc
// @Summary Get appointment by ID
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /appointments/{id} [get]
// @Security BearerAuth
func (s *Server) GetAppointmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid appointment ID", http.StatusBadRequest)
		return
	}
	a, err := s.store.Appointments().GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "appointment")
		return
	}
	s.writeJSON(w, r, http.StatusOK, a)
}

// CreateAppointmentHandler godoc
// @Summary Book an appointment
// @Description Confirmed or completed appointments take their products out of stock.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body AppointmentRequest true "Appointment to book"
// @Success 201 {object} models.Appointment
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Employee busy or insufficient stock"
// @Failure 422 {object} ValidationErrors
// @Router /appointments [post]
// @Security BearerAuth
func (s *Server) CreateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if err := readJSON(w, r, "appointment", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	status, err := s.parseStatus(w, r, req.Status)
	if err != nil {
		return
	}

	in := booking.AppointmentInput{}
	if req.EmployeeID != nil {
		in.EmployeeID = int(*req.EmployeeID)
	}
	if req.ServiceID != nil {
		in.ServiceID = int(*req.ServiceID)
	}
	if req.AppointmentDate != nil {
		in.AppointmentDate = req.AppointmentDate.Time
	}
	if status != nil {
		in.Status = *status
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}
	if lines := req.lines(); lines != nil {
		in.Products = *lines
	}

	created, err := s.booking.CreateAppointment(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, "appointment")
		return
	}
	s.writeJSON(w, r, http.StatusCreated, created)
}

// UpdateAppointmentHandler godoc
// @Summary Update an appointment
// @Description Fields left out of the body keep their value. Sending product_ids or products replaces the product list. Status changes move stock in or out.
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param appointment body AppointmentRequest true "Changes"
// @Success 200 {object} models.Appointment
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Employee busy or insufficient stock"
// @Failure 422 {object} ValidationErrors
// @Router /appointments/{id} [put]
// @Security BearerAuth
func (s *Server) UpdateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid appointment ID", http.StatusBadRequest)
		return
	}
	var req AppointmentRequest
	if err := readJSON(w, r, "appointment", &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	// A blank status from an edit form leaves the current one alone.
	if req.Status != nil && strings.TrimSpace(*req.Status) == "" {
		req.Status = nil
	}
	status, err := s.parseStatus(w, r, req.Status)
	if err != nil {
		return
	}

	patch := booking.AppointmentPatch{
		Status:   status,
		Notes:    req.Notes,
		Products: req.lines(),
	}
	if req.EmployeeID != nil {
		v := int(*req.EmployeeID)
		patch.EmployeeID = &v
	}
	if req.ServiceID != nil {
		v := int(*req.ServiceID)
		patch.ServiceID = &v
	}
	if req.AppointmentDate != nil {
		v := req.AppointmentDate.Time
		patch.AppointmentDate = &v
	}

	updated, err := s.booking.UpdateAppointment(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err, "appointment")
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

// DeleteAppointmentHandler godoc
// @Summary Delete an appointment
// @Description Stock held by a confirmed or completed appointment is given back.
// @Tags appointments
// @Param id path int true "Appointment ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /appointments/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid appointment ID", http.StatusBadRequest)
		return
	}
	if err := s.booking.DeleteAppointment(r.Context(), id); err != nil {
		s.writeError(w, r, err, "appointment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AvailabilityHandler godoc
// @Summary Check whether an employee is free
// @Tags appointments
// @Produce json
// @Param employee_id query int true "Employee ID"
// @Param service_id query int true "Service ID"
// @Param appointment_date query string true "Start time (RFC3339)"
// @Param exclude_id query int false "Appointment to ignore, the one being edited"
// @Success 200 {object} AvailabilityResponse
// @Failure 400 {string} string "Invalid query"
// @Failure 404 {string} string "Employee or service not found"
// @Router /appointments/availability [get]
// @Security BearerAuth
func (s *Server) AvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeID, err := queryInt(q, "employee_id")
	if err != nil || employeeID == nil {
		http.Error(w, "employee_id is required", http.StatusBadRequest)
		return
	}
	serviceID, err := queryInt(q, "service_id")
	if err != nil || serviceID == nil {
		http.Error(w, "service_id is required", http.StatusBadRequest)
		return
	}
	at, err := queryTime(q, "appointment_date")
	if err != nil || at == nil {
		http.Error(w, "appointment_date is required", http.StatusBadRequest)
		return
	}
	excludeID, err := queryInt(q, "exclude_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	exclude := 0
	if excludeID != nil {
		exclude = *excludeID
	}

	available, err := s.booking.CheckAvailability(r.Context(), *employeeID, *serviceID, at.UTC(), exclude)
	if err != nil {
		s.writeError(w, r, err, "appointment")
		return
	}
	s.writeJSON(w, r, http.StatusOK, AvailabilityResponse{Available: available})
}


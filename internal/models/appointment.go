package models

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var statusAliases = map[string]Status{
	"pending":    StatusPending,
	"pendiente":  StatusPending,
	"confirmed":  StatusConfirmed,
	"confirmada": StatusConfirmed,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
	"cancelada":  StatusCancelled,
	"completed":  StatusCompleted,
	"completada": StatusCompleted,
}

// ParseStatus accepts the English status names and the Spanish values used by
// the mobile client. An empty string yields StatusPending.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusPending, nil
	}
	if st, ok := statusAliases[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// HoldsStock reports whether products attached to an appointment in this
// status are deducted from inventory.
func (s Status) HoldsStock() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Appointment struct {
	ID              int                  `json:"id"`
	EmployeeID      int                  `json:"employee_id"`
	ServiceID       int                  `json:"service_id"`
	AppointmentDate time.Time            `json:"appointment_date"`
	Status          Status               `json:"status"`
	Notes           string               `json:"notes"`
	Products        []AppointmentProduct `json:"products"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// AppointmentProduct records how many units of a product an appointment uses.
type AppointmentProduct struct {
	AppointmentID int `json:"appointment_id"`
	ProductID     int `json:"product_id"`
	Quantity      int `json:"quantity"`
}

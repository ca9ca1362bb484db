package models

import "time"

const (
	ReasonAppointmentUsage  = "appointment usage"
	ReasonAppointmentCancel = "appointment cancellation"
	ReasonManualAdjustment  = "manual adjustment"
	ReasonImport            = "import"
)

// InventoryLog is an append-only record of a stock change.
type InventoryLog struct {
	ID            int       `json:"id"`
	ProductID     int       `json:"product_id"`
	AppointmentID *int      `json:"appointment_id,omitempty"`
	Change        int       `json:"change"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

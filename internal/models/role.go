package models

import "time"

// Role groups employees by permission level. The "admin" role may manage
// employees and roles.
type Role struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const AdminRole = "admin"

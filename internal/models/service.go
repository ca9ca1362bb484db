package models

import "time"

// Service is a bookable offering. Duration is expressed in minutes.
type Service struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	CategoryID  int       `json:"category_id"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Service) Length() time.Duration {
	return time.Duration(s.Duration) * time.Minute
}

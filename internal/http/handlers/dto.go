package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

// FlexInt decodes from a JSON number or a numeric string; the mobile client
// posts form values as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	v := gjson.ParseBytes(data)
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		if v.Num != float64(int64(v.Num)) {
			return fmt.Errorf("%s is not an integer", v.Raw)
		}
		*f = FlexInt(v.Int())
		return nil
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not an integer", v.Str)
		}
		*f = FlexInt(n)
		return nil
	}
	return fmt.Errorf("cannot use %s as an integer", v.Raw)
}

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v := gjson.ParseBytes(data)
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		*f = FlexFloat(v.Num)
		return nil
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", v.Str)
		}
		*f = FlexFloat(n)
		return nil
	}
	return fmt.Errorf("cannot use %s as a number", v.Raw)
}

// FlexBool accepts true/false, 1/0 and the strings a checkbox sends.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	v := gjson.ParseBytes(data)
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.True, gjson.False:
		*f = FlexBool(v.Bool())
		return nil
	case gjson.Number:
		*f = v.Num != 0
		return nil
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "1", "on", "yes":
			*f = true
			return nil
		case "false", "0", "off", "no", "":
			*f = false
			return nil
		}
	}
	return fmt.Errorf("cannot use %s as a boolean", v.Raw)
}

func (f *FlexBool) value(fallback bool) bool {
	if f == nil {
		return fallback
	}
	return bool(*f)
}

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// A '+' in an unescaped query string arrives as a space.
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a valid date", s)
}

type FlexTime struct {
	time.Time
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	v := gjson.ParseBytes(data)
	if v.Type == gjson.Null {
		return nil
	}
	if v.Type != gjson.String {
		return fmt.Errorf("cannot use %s as a date", v.Raw)
	}
	t, err := parseTime(v.Str)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type SessionResponse struct {
	Token        string            `json:"token"`
	RefreshToken string            `json:"refresh_token"`
	ExpiresAt    time.Time         `json:"expires_at"`
	Employee     *EmployeeResponse `json:"employee,omitempty"`
}

type RoleRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type EmployeeRequest struct {
	FirstName            string    `json:"first_name" validate:"required,max=100"`
	LastName             string    `json:"last_name" validate:"required,max=100"`
	Email                string    `json:"email" validate:"required,email"`
	Password             string    `json:"password" validate:"omitempty,min=6"`
	PasswordConfirmation string    `json:"password_confirmation" validate:"omitempty,eqfield=Password"`
	RoleID               FlexInt   `json:"role_id" validate:"gte=0"`
	Role                 string    `json:"role"`
	PhoneNumber          string    `json:"phone_number" validate:"required,phone"`
	Active               *FlexBool `json:"active"`
	PushToken            *string   `json:"push_token"`
}

type EmployeeResponse struct {
	models.Employee
	FullName string `json:"full_name"`
}

func toEmployeeResponse(e models.Employee) EmployeeResponse {
	return EmployeeResponse{Employee: e, FullName: e.FullName()}
}

type ProductRequest struct {
	Name              string     `json:"name" validate:"required,max=255"`
	Description       string     `json:"description" validate:"required"`
	Price             *FlexFloat `json:"price" validate:"required,gte=0"`
	Stock             *FlexInt   `json:"stock" validate:"required,gte=0"`
	LowStockThreshold *FlexInt   `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	CategoryID        FlexInt    `json:"category_id" validate:"required,gt=0"`
	Active            *FlexBool  `json:"active"`
}

type ProductResponse struct {
	models.Product
	LowStock bool `json:"low_stock"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.IsLowStock()}
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

type QuantityAdjustmentRequest struct {
	Delta  FlexInt `json:"delta" validate:"required"` // positive or negative
	Reason string  `json:"reason" validate:"max=255"`
}

type MovementsSearchResult struct {
	Data []models.InventoryLog `json:"data"`
	Meta Meta                  `json:"meta"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                     `json:"imported"`
	Errors                []ImportValidationError `json:"errors"`
}

type ImportValidationError struct {
	Row         int    `json:"row"`
	Description string `json:"description"`
}

type ServiceRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description" validate:"required"`
	Price       *FlexFloat `json:"price" validate:"required,gte=0"`
	Duration    *FlexInt   `json:"duration" validate:"required,gte=0"`
	CategoryID  FlexInt    `json:"category_id" validate:"required,gt=0"`
	Active      *FlexBool  `json:"active"`
}

type AppointmentLine struct {
	ProductID FlexInt `json:"product_id"`
	Quantity  FlexInt `json:"quantity"`
}

// AppointmentRequest serves create and update. On update only the fields
// present in the body change; product_ids or products replace the list.
type AppointmentRequest struct {
	EmployeeID      *FlexInt           `json:"employee_id"`
	ServiceID       *FlexInt           `json:"service_id"`
	AppointmentDate *FlexTime          `json:"appointment_date"`
	Status          *string            `json:"status"`
	Notes           *string            `json:"notes"`
	ProductIDs      *[]FlexInt         `json:"product_ids"`
	Products        *[]AppointmentLine `json:"products"`
}

// lines merges product_ids (one unit each) and products. It returns nil when
// the request names neither.
func (a AppointmentRequest) lines() *[]models.AppointmentProduct {
	if a.ProductIDs == nil && a.Products == nil {
		return nil
	}
	out := []models.AppointmentProduct{}
	if a.ProductIDs != nil {
		for _, id := range *a.ProductIDs {
			// Rails forms send a blank entry ahead of the checked ids.
			if id == 0 {
				continue
			}
			out = append(out, models.AppointmentProduct{ProductID: int(id), Quantity: 1})
		}
	}
	if a.Products != nil {
		for _, l := range *a.Products {
			out = append(out, models.AppointmentProduct{ProductID: int(l.ProductID), Quantity: int(l.Quantity)})
		}
	}
	return &out
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

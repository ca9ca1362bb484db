package repo

import "errors"

var (
	ErrRoleNotFound        = errors.New("role not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrDuplicatedValueUnique is returned when a unique column (name, email)
	// already holds the value.
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")

	// ErrInUse is returned when deleting a record other records still reference.
	ErrInUse = errors.New("record is still referenced")

	// ErrInvalidReference is returned when a write references a missing parent.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrInvalidQuantityChange is returned when an adjustment would make stock negative.
	ErrInvalidQuantityChange = errors.New("stock cannot be negative")
)

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound) ||
		errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrAppointmentNotFound)
}

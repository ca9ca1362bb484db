package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
)

type employeeForm struct {
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"omitempty,min=6"`
	Phone    string        `json:"phone_number" validate:"omitempty,phone"`
	Status   models.Status `json:"status" validate:"omitempty,status"`
	Internal string        `json:"-"`
}

func TestValidateReportsJSONNames(t *testing.T) {
	v := MustNew()

	err := v.Validate(employeeForm{Email: "nope", Password: "123", Phone: "55-1234", Status: "later"})
	require.Error(t, err)

	fields := Fields(err)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Description
	}
	assert.Equal(t, map[string]string{
		"email":        "must be a valid email address",
		"password":     "must be at least 6 characters long",
		"phone_number": "must be exactly 10 digits",
		"status":       "invalid status: later",
	}, got)
}

func TestValidateAcceptsValidForm(t *testing.T) {
	v := MustNew()
	assert.NoError(t, v.Validate(employeeForm{Email: "ana@example.com", Phone: "5512345678", Status: models.StatusConfirmed}))
	assert.Nil(t, Fields(assert.AnError))
}

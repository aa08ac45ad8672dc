package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Mode  string `json:"mode" validate:"omitempty,oneof=email call meeting"`
	Bio   string `json:"bio" validate:"omitempty,min=10"`
}

func TestFirst_ValidInputIsEmpty(t *testing.T) {
	assert.Empty(t, First(&sample{Name: "ok"}))
}

func TestFirst_ReturnsFirstViolationInDeclarationOrder(t *testing.T) {
	// Name and Email are both invalid; only the earlier field surfaces.
	msg := First(&sample{Name: "", Email: "not-an-email"})
	assert.Equal(t, "name is required", msg)
}

func TestMessages_PerRule(t *testing.T) {
	assert.Equal(t, "email must be a valid email address",
		First(&sample{Name: "ok", Email: "nope"}))
	assert.Equal(t, "mode must be one of: email, call, meeting",
		First(&sample{Name: "ok", Mode: "fax"}))
	assert.Equal(t, "bio must be at least 10 characters",
		First(&sample{Name: "ok", Bio: "short"}))
}

func TestValidate_NonStructDoesNotPanic(t *testing.T) {
	var msgs []string
	require.NotPanics(t, func() {
		msgs = Validate(42)
	})
	assert.NotEmpty(t, msgs)
}

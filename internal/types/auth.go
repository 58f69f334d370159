package types

import (
	"github.com/go-playground/validator/v10"
)

// Identity holds the attributes of an authenticated user. A nil *Identity
// means the session is in guest mode; the two states are mutually exclusive.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RegisterRequest represents the request to create a new account with password authentication.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login/register response with identity,
// session token, and whether guest data was migrated into the account scope.
type LoginResponse struct {
	Identity          *Identity `json:"identity"`
	Token             string    `json:"token"`
	GuestDataMigrated bool      `json:"guest_data_migrated"`
}

// UpdateProfileRequest represents an identity attribute update from the profile editor.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email" validate:"required,email"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/identity"
	"github.com/jonathan/resume-builder/internal/schema"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var emailExists *identity.ErrEmailAlreadyExists
	var invalidCreds *identity.ErrInvalidCredentials
	var notAuth *identity.ErrNotAuthenticated
	var notReady *export.ErrNotReady
	var validation *schema.ValidationError

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &notAuth):
		return http.StatusUnauthorized
	case errors.As(err, &notReady):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// bearerToken extracts the bearer token from the Authorization header, or
// returns "" when absent or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: RegisterRequest{
				Name:     "Ada Lovelace",
				Email:    "ada@example.com",
				Password: "s3cure-password",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			request: RegisterRequest{
				Email:    "ada@example.com",
				Password: "s3cure-password",
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			request: RegisterRequest{
				Name:     "Ada",
				Email:    "not-an-email",
				Password: "s3cure-password",
			},
			wantErr: true,
		},
		{
			name: "password too short",
			request: RegisterRequest{
				Name:     "Ada",
				Email:    "ada@example.com",
				Password: "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: LoginRequest{Email: "ada@example.com", Password: "pw"},
			wantErr: false,
		},
		{
			name:    "missing email",
			request: LoginRequest{Password: "pw"},
			wantErr: true,
		},
		{
			name:    "missing password",
			request: LoginRequest{Email: "ada@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request UpdateProfileRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: UpdateProfileRequest{Name: "Countess", Email: "ada@example.com"},
			wantErr: false,
		},
		{
			name:    "missing name",
			request: UpdateProfileRequest{Email: "ada@example.com"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			request: UpdateProfileRequest{Name: "Countess", Email: "nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

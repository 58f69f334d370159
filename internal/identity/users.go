package identity

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// UserService is the authentication provider: it accepts credentials and
// returns the matching identity, or fails. The document lifecycle never
// interprets its failures beyond "transition not taken".
type UserService struct {
	creds          store.CredentialStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(creds store.CredentialStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		creds:          creds,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account and returns its identity.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.Identity, error) {
	exists, err := s.creds.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.creds.CreateUser(ctx, req.Name, req.Email, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &types.Identity{Email: req.Email, Name: req.Name}, nil
}

// Login authenticates credentials and returns the matching identity.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.Identity, error) {
	rec, err := s.creds.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: generic error whether the user is missing or the password is wrong
	if rec == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, rec.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return &types.Identity{Email: rec.Email, Name: rec.Name}, nil
}

// UpdateProfile replaces the name and email on the stored credential record.
func (s *UserService) UpdateProfile(ctx context.Context, currentEmail string, req *types.UpdateProfileRequest) (*types.Identity, error) {
	if req.Email != currentEmail {
		exists, err := s.creds.CheckEmailExists(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
	}

	if err := s.creds.UpdateUserProfile(ctx, currentEmail, req.Name, req.Email); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &types.Identity{Email: req.Email, Name: req.Name}, nil
}

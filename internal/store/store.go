// Package store provides identity-scoped key-value persistence for documents,
// template selections, and the global authentication slots.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// Scope is the storage namespace selected by the current identity state.
type Scope string

// The two storage scopes. Each owns independent copies of its slots.
const (
	ScopeGuest   Scope = "guest"
	ScopeAccount Scope = "account"
)

// Kind is the resource kind within a scope.
type Kind string

// Resource kinds persisted per scope.
const (
	KindDocument Kind = "document"
	KindTemplate Kind = "template"
)

// ScopeOf maps identity state to its storage scope.
func ScopeOf(authenticated bool) Scope {
	if authenticated {
		return ScopeAccount
	}
	return ScopeGuest
}

// Global slot keys, independent of scope namespacing.
const (
	keyAuthenticated   = "auth.authenticated"
	keyIdentity        = "auth.identity"
	keyBannerDismissed = "ui.guest_banner_dismissed"
)

// Store is the durable identity-scoped persistence interface. Load returns
// (nil, nil) for an absent slot; Save overwrites unconditionally with
// last-writer-wins semantics.
type Store interface {
	Load(ctx context.Context, scope Scope, kind Kind) ([]byte, error)
	Save(ctx context.Context, scope Scope, kind Kind, value []byte) error
	Clear(ctx context.Context, scope Scope, kind Kind) error

	// Identity slots live under fixed global keys. LoadIdentity returns nil
	// for a guest session; a corrupted slot is cleared and reads as guest
	// rather than failing on every load.
	LoadIdentity(ctx context.Context) (*types.Identity, error)
	SaveIdentity(ctx context.Context, identity *types.Identity) error
	ClearIdentity(ctx context.Context) error

	LoadBannerDismissed(ctx context.Context) (bool, error)
	SaveBannerDismissed(ctx context.Context, dismissed bool) error
}

// UserRecord is a stored account credential record.
type UserRecord struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CredentialStore persists account credentials for the authentication
// provider. Kept separate from Store: document persistence never needs it.
type CredentialStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserProfile(ctx context.Context, email, newName, newEmail string) error
}

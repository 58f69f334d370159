package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// MemoryStore is an in-memory Store and CredentialStore used in tests and as
// an ephemeral session backend. Values are copied on the way in and out so
// callers can never alias the stored bytes.
type MemoryStore struct {
	mu      sync.Mutex
	slots   map[string][]byte
	globals map[string][]byte
	users   map[string]UserRecord // keyed by email

	// FailNextSave makes the next Save return an error. Lets tests exercise
	// the abort-on-store-failure paths of the transition controller.
	FailNextSave bool
}

var _ Store = (*MemoryStore)(nil)
var _ CredentialStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:   make(map[string][]byte),
		globals: make(map[string][]byte),
		users:   make(map[string]UserRecord),
	}
}

func slotKey(scope Scope, kind Kind) string {
	return string(scope) + "/" + string(kind)
}

// Load returns the value of a (scope, kind) slot, or (nil, nil) when absent.
func (s *MemoryStore) Load(_ context.Context, scope Scope, kind Kind) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.slots[slotKey(scope, kind)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

// Save overwrites a (scope, kind) slot unconditionally.
func (s *MemoryStore) Save(_ context.Context, scope Scope, kind Kind, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNextSave {
		s.FailNextSave = false
		return fmt.Errorf("save %s/%s: injected store failure", scope, kind)
	}
	s.slots[slotKey(scope, kind)] = append([]byte(nil), value...)
	return nil
}

// Clear removes a (scope, kind) slot.
func (s *MemoryStore) Clear(_ context.Context, scope Scope, kind Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slotKey(scope, kind))
	return nil
}

// LoadIdentity reads the authenticated identity, clearing a corrupt slot.
func (s *MemoryStore) LoadIdentity(_ context.Context) (*types.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flagRaw, ok := s.globals[keyAuthenticated]
	if !ok {
		return nil, nil
	}
	var authenticated bool
	if err := json.Unmarshal(flagRaw, &authenticated); err != nil {
		log.Printf("[store] clearing corrupted auth flag: %v", err)
		delete(s.globals, keyAuthenticated)
		delete(s.globals, keyIdentity)
		return nil, nil
	}
	if !authenticated {
		return nil, nil
	}

	identRaw := s.globals[keyIdentity]
	var identity types.Identity
	if identRaw == nil || json.Unmarshal(identRaw, &identity) != nil || identity.Email == "" {
		log.Printf("[store] clearing corrupted identity record")
		delete(s.globals, keyAuthenticated)
		delete(s.globals, keyIdentity)
		return nil, nil
	}
	return &identity, nil
}

// SaveIdentity persists the identity record and sets the authentication flag.
func (s *MemoryStore) SaveIdentity(_ context.Context, identity *types.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globals[keyIdentity] = raw
	s.globals[keyAuthenticated] = []byte("true")
	return nil
}

// ClearIdentity removes both identity slots.
func (s *MemoryStore) ClearIdentity(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.globals, keyAuthenticated)
	delete(s.globals, keyIdentity)
	return nil
}

// LoadBannerDismissed reads the guest-banner-dismissed flag.
func (s *MemoryStore) LoadBannerDismissed(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.globals[keyBannerDismissed]
	if !ok {
		return false, nil
	}
	var dismissed bool
	if err := json.Unmarshal(raw, &dismissed); err != nil {
		return false, nil
	}
	return dismissed, nil
}

// SaveBannerDismissed persists the guest-banner-dismissed flag.
func (s *MemoryStore) SaveBannerDismissed(_ context.Context, dismissed bool) error {
	raw, _ := json.Marshal(dismissed)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globals[keyBannerDismissed] = raw
	return nil
}

// SetCorruptIdentity writes garbage into the identity slots. Test helper for
// the corrupted-slot recovery path.
func (s *MemoryStore) SetCorruptIdentity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globals[keyAuthenticated] = []byte("true")
	s.globals[keyIdentity] = []byte(`{"email": truncated`)
}

// CreateUser inserts a new credential record and returns its ID.
func (s *MemoryStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return uuid.Nil, fmt.Errorf("failed to create user: email already exists")
	}
	rec := UserRecord{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[email] = rec
	return rec.ID, nil
}

// GetUserByEmail returns the credential record for email, or nil when absent.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

// CheckEmailExists reports whether a credential record exists for email.
func (s *MemoryStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok, nil
}

// UpdateUserProfile replaces the name and email of an existing record.
func (s *MemoryStore) UpdateUserProfile(_ context.Context, email, newName, newEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[email]
	if !ok {
		return fmt.Errorf("user not found: %s", email)
	}
	delete(s.users, email)
	rec.Name = newName
	rec.Email = newEmail
	s.users[newEmail] = rec
	return nil
}

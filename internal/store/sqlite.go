package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jonathan/resume-builder/internal/types"
)

// SQLiteStore is the durable Store backed by a local SQLite file. All access
// is synchronous; the connection pool is capped at one writer.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)
var _ CredentialStore = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS slots (
	scope      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (scope, kind)
);

CREATE TABLE IF NOT EXISTS globals (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (creating if needed) the SQLite store at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}

	// SQLite supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the value of a (scope, kind) slot, or (nil, nil) when absent.
func (s *SQLiteStore) Load(ctx context.Context, scope Scope, kind Kind) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM slots WHERE scope = ? AND kind = ?`,
		string(scope), string(kind),
	).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s/%s: %w", scope, kind, err)
	}
	return value, nil
}

// Save overwrites a (scope, kind) slot unconditionally.
func (s *SQLiteStore) Save(ctx context.Context, scope Scope, kind Kind, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (scope, kind, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(scope, kind) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		string(scope), string(kind), value,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", scope, kind, err)
	}
	return nil
}

// Clear removes a (scope, kind) slot. Clearing an absent slot is a no-op.
func (s *SQLiteStore) Clear(ctx context.Context, scope Scope, kind Kind) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM slots WHERE scope = ? AND kind = ?`,
		string(scope), string(kind),
	)
	if err != nil {
		return fmt.Errorf("failed to clear %s/%s: %w", scope, kind, err)
	}
	return nil
}

func (s *SQLiteStore) loadGlobal(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM globals WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load global %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) saveGlobal(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO globals (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save global %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) clearGlobal(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM globals WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear global %s: %w", key, err)
	}
	return nil
}

// LoadIdentity reads the authenticated identity. A corrupted flag or record
// is cleared on first read and the session proceeds as guest.
func (s *SQLiteStore) LoadIdentity(ctx context.Context) (*types.Identity, error) {
	flagRaw, err := s.loadGlobal(ctx, keyAuthenticated)
	if err != nil {
		return nil, err
	}
	if flagRaw == nil {
		return nil, nil
	}

	var authenticated bool
	if err := json.Unmarshal(flagRaw, &authenticated); err != nil {
		log.Printf("[store] clearing corrupted auth flag: %v", err)
		_ = s.ClearIdentity(ctx)
		return nil, nil
	}
	if !authenticated {
		return nil, nil
	}

	identRaw, err := s.loadGlobal(ctx, keyIdentity)
	if err != nil {
		return nil, err
	}
	var identity types.Identity
	if identRaw == nil || json.Unmarshal(identRaw, &identity) != nil || identity.Email == "" {
		log.Printf("[store] clearing corrupted identity record")
		_ = s.ClearIdentity(ctx)
		return nil, nil
	}
	return &identity, nil
}

// SaveIdentity persists the identity record and sets the authentication flag.
func (s *SQLiteStore) SaveIdentity(ctx context.Context, identity *types.Identity) error {
	identRaw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	if err := s.saveGlobal(ctx, keyIdentity, identRaw); err != nil {
		return err
	}
	return s.saveGlobal(ctx, keyAuthenticated, []byte("true"))
}

// ClearIdentity removes both the authentication flag and the identity record.
func (s *SQLiteStore) ClearIdentity(ctx context.Context) error {
	if err := s.clearGlobal(ctx, keyAuthenticated); err != nil {
		return err
	}
	return s.clearGlobal(ctx, keyIdentity)
}

// LoadBannerDismissed reads the guest-banner-dismissed flag. A malformed
// value reads as false.
func (s *SQLiteStore) LoadBannerDismissed(ctx context.Context) (bool, error) {
	raw, err := s.loadGlobal(ctx, keyBannerDismissed)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	var dismissed bool
	if err := json.Unmarshal(raw, &dismissed); err != nil {
		return false, nil
	}
	return dismissed, nil
}

// SaveBannerDismissed persists the guest-banner-dismissed flag.
func (s *SQLiteStore) SaveBannerDismissed(ctx context.Context, dismissed bool) error {
	raw, err := json.Marshal(dismissed)
	if err != nil {
		return fmt.Errorf("failed to marshal banner flag: %w", err)
	}
	return s.saveGlobal(ctx, keyBannerDismissed, raw)
}

// CreateUser inserts a new credential record and returns its ID.
func (s *SQLiteStore) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES (?, ?, ?, ?)`,
		id.String(), name, email, passwordHash,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUserByEmail returns the credential record for email, or nil when absent.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var rec UserRecord
	var idStr string
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`,
		email,
	).Scan(&idStr, &rec.Name, &rec.Email, &rec.PasswordHash, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}
	rec.ID = id
	rec.CreatedAt = createdAt
	return &rec, nil
}

// CheckEmailExists reports whether a credential record exists for email.
func (s *SQLiteStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// UpdateUserProfile replaces the name and email of an existing record.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, email, newName, newEmail string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ? WHERE email = ?`,
		newName, newEmail, email,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %s", email)
	}
	return nil
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestScopeOf(t *testing.T) {
	assert.Equal(t, ScopeAccount, ScopeOf(true))
	assert.Equal(t, ScopeGuest, ScopeOf(false))
}

func TestMemoryStore_SlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	loaded, err := s.Load(ctx, ScopeGuest, KindDocument)
	require.NoError(t, err)
	assert.Nil(t, loaded, "absent slot loads as nil")

	require.NoError(t, s.Save(ctx, ScopeGuest, KindDocument, []byte(`{"a":1}`)))
	loaded, err = s.Load(ctx, ScopeGuest, KindDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), loaded)

	// Last writer wins.
	require.NoError(t, s.Save(ctx, ScopeGuest, KindDocument, []byte(`{"a":2}`)))
	loaded, err = s.Load(ctx, ScopeGuest, KindDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), loaded)

	require.NoError(t, s.Clear(ctx, ScopeGuest, KindDocument))
	loaded, err = s.Load(ctx, ScopeGuest, KindDocument)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStore_ScopeIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, ScopeGuest, KindDocument, []byte("guest-doc")))
	require.NoError(t, s.Save(ctx, ScopeAccount, KindDocument, []byte("account-doc")))
	require.NoError(t, s.Save(ctx, ScopeGuest, KindTemplate, []byte("modern")))

	guestDoc, err := s.Load(ctx, ScopeGuest, KindDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte("guest-doc"), guestDoc)

	accountDoc, err := s.Load(ctx, ScopeAccount, KindDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte("account-doc"), accountDoc)

	// Clearing guest leaves account untouched.
	require.NoError(t, s.Clear(ctx, ScopeGuest, KindDocument))
	accountDoc, err = s.Load(ctx, ScopeAccount, KindDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte("account-doc"), accountDoc)

	accountTmpl, err := s.Load(ctx, ScopeAccount, KindTemplate)
	require.NoError(t, err)
	assert.Nil(t, accountTmpl, "template slots are scoped too")
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, ScopeGuest, KindDocument, []byte("abc")))

	loaded, err := s.Load(ctx, ScopeGuest, KindDocument)
	require.NoError(t, err)
	loaded[0] = 'X'

	again, err := s.Load(ctx, ScopeGuest, KindDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryStore_Identity(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := NewMemoryStore()
		ident, err := s.LoadIdentity(ctx)
		require.NoError(t, err)
		assert.Nil(t, ident)

		require.NoError(t, s.SaveIdentity(ctx, &types.Identity{Email: "a@b.com", Name: "A"}))
		ident, err = s.LoadIdentity(ctx)
		require.NoError(t, err)
		require.NotNil(t, ident)
		assert.Equal(t, "a@b.com", ident.Email)

		require.NoError(t, s.ClearIdentity(ctx))
		ident, err = s.LoadIdentity(ctx)
		require.NoError(t, err)
		assert.Nil(t, ident)
	})

	t.Run("corrupted slot clears itself and reads as guest", func(t *testing.T) {
		s := NewMemoryStore()
		s.SetCorruptIdentity()

		ident, err := s.LoadIdentity(ctx)
		require.NoError(t, err)
		assert.Nil(t, ident)

		// The slot was cleared, not left to fail again on the next load.
		ident, err = s.LoadIdentity(ctx)
		require.NoError(t, err)
		assert.Nil(t, ident)
	})
}

func TestMemoryStore_BannerFlag(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	dismissed, err := s.LoadBannerDismissed(ctx)
	require.NoError(t, err)
	assert.False(t, dismissed)

	require.NoError(t, s.SaveBannerDismissed(ctx, true))
	dismissed, err = s.LoadBannerDismissed(ctx)
	require.NoError(t, err)
	assert.True(t, dismissed)
}

func TestMemoryStore_Credentials(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	exists, err := s.CheckEmailExists(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, exists)

	id, err := s.CreateUser(ctx, "A", "a@b.com", "hash")
	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())

	_, err = s.CreateUser(ctx, "A2", "a@b.com", "hash2")
	assert.Error(t, err, "duplicate email rejected")

	rec, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "A", rec.Name)
	assert.Equal(t, "hash", rec.PasswordHash)

	require.NoError(t, s.UpdateUserProfile(ctx, "a@b.com", "B", "b@c.com"))
	rec, err = s.GetUserByEmail(ctx, "b@c.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "B", rec.Name)

	rec, err = s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

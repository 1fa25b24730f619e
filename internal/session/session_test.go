package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-api/internal/model"
)

func TestAdminSessionCarriesCredential(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	id, err := m.Create(ctx, model.Session{
		Email:      "boss@example.com",
		Role:       model.RoleAdmin,
		Credential: "write-token",
	})
	require.NoError(t, err)

	sess, err := m.Current(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", sess.Email)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, "write-token", sess.Credential)
}

func TestPreviewSessionNeverCarriesCredential(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	// Even if a credential is handed in, non-admin sessions must not
	// persist it.
	id, err := m.Create(ctx, model.Session{
		Email:      "intern@example.com",
		Role:       model.RolePreview,
		Credential: "write-token",
	})
	require.NoError(t, err)

	sess, err := m.Current(ctx, id)
	require.NoError(t, err)
	assert.False(t, sess.IsAdmin())
	assert.Empty(t, sess.Credential)
}

func TestStoredCredentialIsNotPlaintext(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Minute)
	ctx := context.Background()

	id, err := m.Create(ctx, model.Session{
		Email:      "boss@example.com",
		Role:       model.RoleAdmin,
		Credential: "super-secret-write-token",
	})
	require.NoError(t, err)

	raw, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-write-token")
}

func TestDestroyEndsSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	id, err := m.Create(ctx, model.Session{Email: "boss@example.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	require.NoError(t, m.Destroy(ctx, id))

	_, err = m.Current(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)

	// Destroying an unknown id is not an error.
	assert.NoError(t, m.Destroy(ctx, "nope"))
}

func TestSessionExpires(t *testing.T) {
	m := NewManager(NewMemoryStore(), 10*time.Millisecond)
	ctx := context.Background()

	id, err := m.Create(ctx, model.Session{Email: "boss@example.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)

	_, err = m.Current(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionIDsAreUnique(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Minute)
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := m.Create(ctx, model.Session{Email: "a@b.c", Role: model.RolePreview})
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestCredentialEncodingRoundTrip(t *testing.T) {
	enc := EncodeCredential("tok-123")
	assert.NotEqual(t, "tok-123", enc)
	assert.False(t, strings.Contains(enc, "tok-123"))

	dec, err := DecodeCredential(enc)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", dec)
}

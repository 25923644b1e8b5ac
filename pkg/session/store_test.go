package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// mockAuthenticator implements Authenticator for testing
type mockAuthenticator struct {
	identity *model.Identity
	err      error
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.identity, nil
}

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.yaml")
}

func TestStore_LoginPersistsAcrossRestart(t *testing.T) {
	path := sessionPath(t)
	auth := &mockAuthenticator{identity: &model.Identity{
		Token: "tok-123", Role: model.RoleAdmin, Email: "amy@example.com",
	}}

	store, err := NewStore(path, auth, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, store.Current())

	ok := store.Login(context.Background(), "amy@example.com", "hunter2")
	require.True(t, ok)

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, "tok-123", current.Token)
	assert.Equal(t, model.RoleAdmin, current.Role)

	// A fresh store over the same file sees the saved identity
	reloaded, err := NewStore(path, auth, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, reloaded.Current())
	assert.Equal(t, "amy@example.com", reloaded.Current().Email)
}

func TestStore_LoginFailureReturnsFalse(t *testing.T) {
	store, err := NewStore(sessionPath(t), &mockAuthenticator{err: errors.New("401")}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, store.Login(context.Background(), "amy@example.com", "wrong"))
	assert.Nil(t, store.Current())
}

func TestStore_LogoutClearsMemoryAndDisk(t *testing.T) {
	path := sessionPath(t)
	auth := &mockAuthenticator{identity: &model.Identity{Token: "tok", Role: model.RoleUser, Email: "a@b.c"}}

	store, err := NewStore(path, auth, zap.NewNop())
	require.NoError(t, err)
	require.True(t, store.Login(context.Background(), "a@b.c", "pw"))

	store.Logout()
	assert.Nil(t, store.Current())

	reloaded, err := NewStore(path, auth, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, reloaded.Current())
}

func TestStore_CurrentReturnsSnapshot(t *testing.T) {
	auth := &mockAuthenticator{identity: &model.Identity{Token: "tok", Role: model.RoleUser, Email: "a@b.c"}}
	store, err := NewStore(sessionPath(t), auth, zap.NewNop())
	require.NoError(t, err)
	require.True(t, store.Login(context.Background(), "a@b.c", "pw"))

	snapshot := store.Current()
	snapshot.Role = "mutated"
	assert.Equal(t, model.RoleUser, store.Current().Role)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "amy@example.com",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStore_Expired(t *testing.T) {
	t.Run("expired jwt", func(t *testing.T) {
		auth := &mockAuthenticator{identity: &model.Identity{
			Token: signedToken(t, time.Now().Add(-time.Hour)), Role: model.RoleUser, Email: "a@b.c",
		}}
		store, err := NewStore(sessionPath(t), auth, zap.NewNop())
		require.NoError(t, err)
		require.True(t, store.Login(context.Background(), "a@b.c", "pw"))
		assert.True(t, store.Expired())
	})

	t.Run("valid jwt", func(t *testing.T) {
		auth := &mockAuthenticator{identity: &model.Identity{
			Token: signedToken(t, time.Now().Add(time.Hour)), Role: model.RoleUser, Email: "a@b.c",
		}}
		store, err := NewStore(sessionPath(t), auth, zap.NewNop())
		require.NoError(t, err)
		require.True(t, store.Login(context.Background(), "a@b.c", "pw"))
		assert.False(t, store.Expired())
	})

	t.Run("opaque token is not treated as expired", func(t *testing.T) {
		auth := &mockAuthenticator{identity: &model.Identity{
			Token: "not-a-jwt", Role: model.RoleUser, Email: "a@b.c",
		}}
		store, err := NewStore(sessionPath(t), auth, zap.NewNop())
		require.NoError(t, err)
		require.True(t, store.Login(context.Background(), "a@b.c", "pw"))
		assert.False(t, store.Expired())
	})

	t.Run("logged out", func(t *testing.T) {
		store, err := NewStore(sessionPath(t), &mockAuthenticator{}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, store.Expired())
	})
}

package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techikansh/blogging-platform/internal/types"
)

func newTestStorage(t *testing.T) *FileStorage {
	t.Helper()
	return NewFileStorage(filepath.Join(t.TempDir(), "auth", "token"))
}

func TestSetAuthState_PersistsAcrossReload(t *testing.T) {
	storage := newTestStorage(t)

	store := NewStore(storage)
	assert.Empty(t, store.Token())
	assert.False(t, store.Authenticated())

	user := &types.User{ID: "1", Username: "ada", Email: "ada@example.com"}
	store.SetAuthState(user, "abc")
	assert.Equal(t, "abc", store.Token())
	assert.Equal(t, user, store.User())
	assert.True(t, store.Authenticated())

	// Simulated reload: a fresh store over the same storage seeds the
	// token without re-calling login. The user is not persisted.
	reloaded := NewStore(storage)
	assert.Equal(t, "abc", reloaded.Token())
	assert.Nil(t, reloaded.User())
}

func TestLogout_ClearsStateAndStorage(t *testing.T) {
	storage := newTestStorage(t)

	store := NewStore(storage)
	store.SetAuthState(&types.User{ID: "1"}, "abc")
	store.Logout()

	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.False(t, store.Authenticated())

	reloaded := NewStore(storage)
	assert.Empty(t, reloaded.Token())
}

func TestSetAuthState_EmptyTokenNotPersisted(t *testing.T) {
	storage := newTestStorage(t)

	store := NewStore(storage)
	store.SetAuthState(&types.User{ID: "1"}, "abc")
	store.SetAuthState(nil, "")

	assert.Empty(t, store.Token())

	// The previously persisted token is left untouched, matching the
	// original behavior of only writing on a non-empty token.
	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", persisted)
}

func TestFileStorage_LoadMissingFile(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "nope", "token"))
	token, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, storage.Clear())
}

func TestFileStorage_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0o600))

	token, err := NewFileStorage(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestPeekClaims(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "ada",
		"email": "ada@example.com",
		"roles": []string{"USER", "AUTHOR"},
	}).SignedString([]byte("server-only-secret"))
	require.NoError(t, err)

	claims, err := PeekClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, []string{"USER", "AUTHOR"}, claims.Roles)
}

func TestPeekClaims_Garbage(t *testing.T) {
	_, err := PeekClaims("not-a-jwt")
	assert.Error(t, err)
}

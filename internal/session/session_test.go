package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	tok := token(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})

	require.NoError(t, s.Save(Session{
		Token: tok,
		User:  api.User{ID: "u1", Email: "a@b.co", Name: "Ada"},
	}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, tok, got.Token)
	assert.Equal(t, "Ada", got.User.Name)
}

func TestSaveOwnerOnlyPermissions(t *testing.T) {
	s := newTestStore(t)
	tok := token(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, s.Save(Session{Token: tok, User: api.User{ID: "u1"}}))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadRejectsGroupReadableFile(t *testing.T) {
	s := newTestStore(t)
	tok := token(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, s.Save(Session{Token: tok, User: api.User{ID: "u1"}}))
	require.NoError(t, os.Chmod(s.Path(), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure session file permissions")
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveRefusesPartialSession(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Save(Session{Token: "tok"}))
	assert.Error(t, s.Save(Session{User: api.User{ID: "u1"}}))
}

func TestLoadTreatsPartialFileAsNoSession(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"token":"","user":{"_id":"u1"}}`), 0o600))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadExpiredTokenClearsFile(t *testing.T) {
	s := newTestStore(t)
	tok := token(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, s.Save(Session{Token: tok, User: api.User{ID: "u1"}}))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrExpired)

	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestClearMissingFileIsFine(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Clear())
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	tok := token(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

	got, err := ExpiresAt(tok)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}

func TestExpiredWithoutExpClaim(t *testing.T) {
	tok := token(t, jwt.MapClaims{"sub": "u1"})
	expired, err := Expired(tok, time.Now())
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestExpiredGarbageToken(t *testing.T) {
	expired, err := Expired("not-a-jwt", time.Now())
	assert.Error(t, err)
	assert.True(t, expired)
}

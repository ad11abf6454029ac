// Package session persists the authenticated session (bearer token
// plus user record) between invocations.
//
// Token and user travel together: both are written on login and both
// removed on logout or invalidation, never one without the other. The
// token's exp claim is parsed (unverified; the client holds no signing
// key) so a dead session is dropped locally instead of burning a 401.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

var (
	// ErrNoSession indicates no session is persisted.
	ErrNoSession = errors.New("no session")

	// ErrExpired indicates the persisted token's exp claim has passed.
	ErrExpired = errors.New("session expired")
)

// Session is the persisted record.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// DefaultPath returns ~/.config/shelfstream/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "shelfstream", "session.json"), nil
}

// NewStore creates a store for the given path; empty means the
// default location.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

// Path returns the session file location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted session. Returns ErrNoSession when none
// exists and ErrExpired when the token's exp claim has passed; an
// expired session is removed as a side effect.
func (s *Store) Load() (*Session, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	// The file holds a bearer token; refuse to use it if anyone else
	// can read it.
	if runtime.GOOS != "windows" {
		if perm := info.Mode().Perm(); perm&0o077 != 0 {
			return nil, fmt.Errorf("insecure session file permissions: %v (expected 0600)", perm)
		}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decoding session file: %w", err)
	}
	if sess.Token == "" || sess.User.ID == "" {
		// Half a session is no session.
		return nil, ErrNoSession
	}

	if expired, _ := Expired(sess.Token, time.Now()); expired {
		_ = s.Clear()
		return nil, ErrExpired
	}

	return &sess, nil
}

// Save persists the session with owner-only permissions. The parent
// directory is created if missing.
func (s *Store) Save(sess Session) error {
	if sess.Token == "" || sess.User.ID == "" {
		return fmt.Errorf("refusing to persist partial session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// ExpiresAt extracts the token's exp claim without verifying the
// signature. Tokens without an exp claim report a zero time and no
// error.
func ExpiresAt(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing token: %w", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("reading exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// Expired reports whether the token's exp claim has passed at the
// given instant. An unparseable token counts as expired.
func Expired(token string, now time.Time) (bool, error) {
	exp, err := ExpiresAt(token)
	if err != nil {
		return true, err
	}
	if exp.IsZero() {
		return false, nil
	}
	return !exp.After(now), nil
}

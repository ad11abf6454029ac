package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

func TestWatcherSeesLoginAndLogout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "session.json"))
	require.NoError(t, err)

	w, err := NewWatcher(s)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	tok := token(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, s.Save(Session{Token: tok, User: api.User{ID: "u1", Name: "Ada"}}))

	// The create event can race the content write; wait for the event
	// that carries the loaded session.
	loginDeadline := time.After(3 * time.Second)
loginWait:
	for {
		select {
		case ev := <-w.Events():
			if ev.Session != nil {
				require.Equal(t, "Ada", ev.Session.User.Name)
				break loginWait
			}
		case <-loginDeadline:
			t.Fatal("no event after session write")
		}
	}

	require.NoError(t, s.Clear())

	// A single save can surface as create plus write; drain until the
	// removal shows up.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Session == nil {
				return
			}
		case <-deadline:
			t.Fatal("no event after session removal")
		}
	}
}

package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

func env(s string) *api.Envelope {
	return &api.Envelope{Success: true, Data: json.RawMessage(s)}
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New(time.Minute, 4)
	c.Set("/books?page=1", env(`{"books":[]}`))

	got, ok := c.Get("/books?page=1")
	require.True(t, ok)
	assert.JSONEq(t, `{"books":[]}`, string(got.Data))

	_, ok = c.Get("/books?page=2")
	assert.False(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	c := New(10*time.Millisecond, 4)
	c.Set("/genres", env(`[]`))

	_, ok := c.Get("/genres")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)
	_, ok = c.Get("/genres")
	assert.False(t, ok)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(time.Minute, 2)
	c.Set("a", env(`1`))
	c.Set("b", env(`2`))

	// Touch a so b becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", env(`3`))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestFlush(t *testing.T) {
	c := New(time.Minute, 4)
	c.Set("a", env(`1`))
	c.Set("b", env(`2`))
	require.Equal(t, 2, c.Len())

	c.Flush()
	assert.Zero(t, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestZeroMaxEntriesUsesDefault(t *testing.T) {
	c := New(time.Minute, 0)
	for i := 0; i < 10; i++ {
		c.Set(string(rune('a'+i)), env(`1`))
	}
	assert.Equal(t, 10, c.Len())
}

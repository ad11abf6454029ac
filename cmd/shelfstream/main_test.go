package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/store"
)

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"browse", "login", "register", "logout", "whoami",
		"books", "reviews", "favorites", "recommend", "profile", "health",
	} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestBooksSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range booksCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["search"])
	assert.True(t, names["show"])
	assert.True(t, names["genres"])
}

func TestFailureFormatsActionError(t *testing.T) {
	assert.NoError(t, failure(store.Action{Type: store.GetBooksSuccess}))

	err := failure(store.Action{
		Type: store.GetBooksFailure,
		Err:  &api.Error{StatusCode: 503, Message: "try later"},
	})
	require.Error(t, err)
	assert.Equal(t, "try later", err.Error())

	err = failure(store.Action{
		Type: store.GetBooksFailure,
		Err:  &api.Error{Code: api.CodeNetworkError},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), api.CodeNetworkError)
}

func TestStarBar(t *testing.T) {
	assert.Equal(t, "★★★☆☆", starBar(3))
	assert.Equal(t, "★★★★★", starBar(9))
	assert.Equal(t, "☆☆☆☆☆", starBar(-2))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "very long…", truncate("very long string", 10))
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/books", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"books":[{"_id":"b1","title":"Dune","author":"Frank Herbert"}]},"meta":{"pagination":{"currentPage":1,"totalPages":1,"totalItems":1,"itemsPerPage":12}}}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	env, err := client.Get(context.Background(), BooksURL)
	require.NoError(t, err)
	require.True(t, env.Success)

	data, err := Decode[BooksData](env)
	require.NoError(t, err)
	require.Len(t, data.Books, 1)
	assert.Equal(t, "Dune", data.Books[0].Title)
	require.NotNil(t, env.Meta)
	require.NotNil(t, env.Meta.Pagination)
	assert.Equal(t, 1, env.Meta.Pagination.TotalItems)
}

func TestClientBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	t.Run("token present", func(t *testing.T) {
		client := NewClient(Options{BaseURL: srv.URL, Tokens: TokenFunc(func() string { return "tok-123" })})
		_, err := client.Get(context.Background(), FavoritesURL)
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("empty token omits header", func(t *testing.T) {
		client := NewClient(Options{BaseURL: srv.URL, Tokens: TokenFunc(func() string { return "" })})
		_, err := client.Get(context.Background(), BooksURL)
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestClientErrorNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"Invalid email or password","path":"/v1/auth/login","method":"POST"}}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := client.Post(context.Background(), LoginURL, LoginRequest{Email: "a@b.co", Password: "wrongpass"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestClientSessionInvalidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"TOKEN_EXPIRED","message":"token expired"}}`))
	}))
	defer srv.Close()

	t.Run("auth-scoped 401 invalidates session", func(t *testing.T) {
		invalidated := false
		client := NewClient(Options{BaseURL: srv.URL, OnSessionInvalid: func() { invalidated = true }})
		_, err := client.Get(context.Background(), FavoritesURL)
		require.Error(t, err)
		assert.True(t, invalidated)
	})

	t.Run("login 401 leaves session alone", func(t *testing.T) {
		invalidated := false
		client := NewClient(Options{BaseURL: srv.URL, OnSessionInvalid: func() { invalidated = true }})
		_, err := client.Post(context.Background(), LoginURL, LoginRequest{Email: "a@b.co", Password: "nope"})
		require.Error(t, err)
		assert.False(t, invalidated)
	})
}

func TestClientNetworkError(t *testing.T) {
	// Port 1 is never listening.
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond})
	_, err := client.Get(context.Background(), BooksURL)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, CodeNetworkError, apiErr.Code)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.True(t, apiErr.Transient())
}

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestClientDecodeErrorOnGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := client.Get(context.Background(), BooksURL)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, CodeDecodeError, apiErr.Code)
}

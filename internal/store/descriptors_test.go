package store

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

func TestGetBooksPath(t *testing.T) {
	call := GetBooks(BooksQuery{
		Page:   api.PageByNumber(2, 12),
		Search: "dune",
		Genre:  "Sci-Fi",
		Sort:   "rating",
	}, false)

	u, err := url.Parse(call.Path)
	require.NoError(t, err)
	assert.Equal(t, "/books", u.Path)
	q := u.Query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "12", q.Get("limit"))
	assert.Equal(t, "dune", q.Get("search"))
	assert.Equal(t, "Sci-Fi", q.Get("genre"))
	assert.Equal(t, "rating", q.Get("sort"))
	assert.Equal(t, http.MethodGet, call.Method)
	assert.True(t, call.Cacheable)
	assert.False(t, call.RequiresAuth)
}

func TestSearchBooksTrimsQueryMeta(t *testing.T) {
	call := SearchBooks("  dune  ", api.PageByNumber(1, 12))
	assert.Equal(t, "dune", call.Meta.Query)
	assert.Equal(t, [3]ActionType{SearchBooksRequest, SearchBooksSuccess, SearchBooksFailure}, call.Types)
}

func TestPathParametersAreEscaped(t *testing.T) {
	call := GetBook("id with/slash")
	assert.Equal(t, "/books/id%20with%2Fslash", call.Path)
}

func TestMutationsCarryIdentifiers(t *testing.T) {
	add := AddFavorite("b1", 7)
	assert.Equal(t, http.MethodPost, add.Method)
	assert.Equal(t, "b1", add.Meta.BookID)
	assert.Equal(t, uint64(7), add.Meta.Seq)
	assert.True(t, add.RequiresAuth)

	rm := RemoveFavorite("b1", 8)
	assert.Equal(t, http.MethodDelete, rm.Method)
	assert.Equal(t, "/favorites/b1", rm.Path)
	assert.Equal(t, uint64(8), rm.Meta.Seq)

	del := DeleteReview("r9")
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/reviews/r9", del.Path)
	assert.Equal(t, "r9", del.Meta.ReviewID)
}

func TestAuthDescriptorsArePublic(t *testing.T) {
	assert.False(t, Login("a@b.co", "pw").RequiresAuth)
	assert.False(t, Register("Ada", "a@b.co", "pw").RequiresAuth)
	assert.True(t, GetUserReviews("u1").RequiresAuth)
	assert.True(t, GetRecommendations().RequiresAuth)
	assert.True(t, UpdateProfile("Ada", "a@b.co").RequiresAuth)
}

func TestLifecycleAccessors(t *testing.T) {
	call := CreateReview("b1", 4, "tight pacing")
	assert.Equal(t, CreateReviewRequest, call.Request())
	assert.Equal(t, CreateReviewSuccess, call.Success())
	assert.Equal(t, CreateReviewFailure, call.Failure())

	body, ok := call.Body.(api.ReviewRequest)
	require.True(t, ok)
	assert.Equal(t, 4, body.Rating)
	assert.Equal(t, "tight pacing", body.Text)
}

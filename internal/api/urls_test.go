package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		pairs    []string
		want     string
	}{
		{
			name:     "single param",
			template: BookDetailsURL,
			pairs:    []string{"id", "abc123"},
			want:     "/books/abc123",
		},
		{
			name:     "book reviews",
			template: BookReviewsURL,
			pairs:    []string{"bookId", "64f1"},
			want:     "/reviews/book/64f1",
		},
		{
			name:     "escapes path characters",
			template: BookDetailsURL,
			pairs:    []string{"id", "a/b c"},
			want:     "/books/a%2Fb%20c",
		},
		{
			name:     "unmatched marker left in place",
			template: FavoriteCheckURL,
			pairs:    []string{"id", "x"},
			want:     "/favorites/check/{bookId}",
		},
		{
			name:     "no params",
			template: BooksURL,
			want:     "/books",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.template, tt.pairs...))
		})
	}
}

func TestExpandDeterministic(t *testing.T) {
	a := Expand(UserReviewsURL, "userId", "u-1")
	b := Expand(UserReviewsURL, "userId", "u-1")
	assert.Equal(t, a, b)
}

func TestPageQuery(t *testing.T) {
	t.Run("page based", func(t *testing.T) {
		q := PageByNumber(3, 12).Query()
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "12", q.Get("limit"))
		assert.Empty(t, q.Get("skip"))
	})

	t.Run("skip based", func(t *testing.T) {
		q := PageBySkip(24, 12).Query()
		assert.Equal(t, "24", q.Get("skip"))
		assert.Equal(t, "12", q.Get("limit"))
		assert.Empty(t, q.Get("page"))
	})

	t.Run("page floor is one", func(t *testing.T) {
		q := PageByNumber(0, 10).Query()
		assert.Equal(t, "1", q.Get("page"))
	})

	t.Run("negative skip clamped", func(t *testing.T) {
		q := PageBySkip(-5, 10).Query()
		assert.Equal(t, "0", q.Get("skip"))
	})

	t.Run("zero limit omitted", func(t *testing.T) {
		q := PageByNumber(1, 0).Query()
		assert.Empty(t, q.Get("limit"))
	})
}

func TestWithQuery(t *testing.T) {
	q := PageByNumber(2, 12).Query()
	q.Set("search", "dune")
	got := WithQuery(BooksURL, q)
	assert.Equal(t, "/books?limit=12&page=2&search=dune", got)

	assert.Equal(t, "/books", WithQuery(BooksURL, nil))
}

package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Endpoint paths, relative to the /v1 prefix. Templated segments use
// {param} markers filled in by Expand.
const (
	LoginURL    = "/auth/login"
	RegisterURL = "/auth/register"

	BooksURL       = "/books"
	BookDetailsURL = "/books/{id}"
	BookGenresURL  = "/books/genres"

	ReviewsURL     = "/reviews"
	ReviewURL      = "/reviews/{id}"
	BookReviewsURL = "/reviews/book/{bookId}"
	UserReviewsURL = "/reviews/user/{userId}"
	ReviewCheckURL = "/reviews/check/{bookId}"

	FavoritesURL      = "/favorites"
	FavoriteCheckURL  = "/favorites/check/{bookId}"
	FavoriteRemoveURL = "/favorites/{bookId}"

	UserProfileURL = "/users/profile"

	RecommendationsURL = "/recommendations"
)

// Expand substitutes {param} markers with path-escaped values.
// Pairs are (name, value, name, value, ...); unmatched markers are
// left in place, which the server will reject.
func Expand(template string, pairs ...string) string {
	out := template
	for i := 0; i+1 < len(pairs); i += 2 {
		out = strings.ReplaceAll(out, "{"+pairs[i]+"}", url.PathEscape(pairs[i+1]))
	}
	return out
}

// Page is the single pagination value object used at the client
// boundary. The backend accepts both page/limit and skip/limit
// conventions; Page emits whichever the caller chose so the rest of
// the codebase never deals with the split.
type Page struct {
	number  int
	skip    int
	limit   int
	useSkip bool
}

// PageByNumber paginates with page/limit parameters.
func PageByNumber(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	return Page{number: number, limit: limit}
}

// PageBySkip paginates with skip/limit parameters.
func PageBySkip(skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	return Page{skip: skip, limit: limit, useSkip: true}
}

// Query emits the pagination query parameters.
func (p Page) Query() url.Values {
	v := url.Values{}
	if p.useSkip {
		v.Set("skip", strconv.Itoa(p.skip))
	} else {
		v.Set("page", strconv.Itoa(p.number))
	}
	if p.limit > 0 {
		v.Set("limit", strconv.Itoa(p.limit))
	}
	return v
}

// Limit returns the page size, or 0 when unset.
func (p Page) Limit() int { return p.limit }

// WithQuery appends query parameters to a path.
func WithQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

package store

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

// Descriptor builders. All of them are pure: domain parameters in,
// Call out, deterministic URLs, no side effects.

// BooksQuery names the catalogue listing parameters.
type BooksQuery struct {
	Page   api.Page
	Search string
	Genre  string
	Sort   string
}

func (q BooksQuery) values() url.Values {
	v := q.Page.Query()
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if q.Genre != "" {
		v.Set("genre", q.Genre)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// GetBooks lists the catalogue. Set append for incremental pagination.
func GetBooks(q BooksQuery, appendPage bool) *Call {
	return &Call{
		Types:     [3]ActionType{GetBooksRequest, GetBooksSuccess, GetBooksFailure},
		Method:    http.MethodGet,
		Path:      api.WithQuery(api.BooksURL, q.values()),
		Meta:      Meta{ErrorMessage: "Fetch Books Failed", Append: appendPage},
		Cacheable: true,
	}
}

// SearchBooks searches the catalogue. Gating (minimum length,
// debounce) is the caller's job; the builder just describes the call.
func SearchBooks(query string, page api.Page) *Call {
	return &Call{
		Types:  [3]ActionType{SearchBooksRequest, SearchBooksSuccess, SearchBooksFailure},
		Method: http.MethodGet,
		Path:   api.WithQuery(api.BooksURL, BooksQuery{Page: page, Search: query}.values()),
		Meta:   Meta{ErrorMessage: "Search Failed", Query: strings.TrimSpace(query)},
	}
}

// GetBook fetches one catalogue entry.
func GetBook(bookID string) *Call {
	return &Call{
		Types:  [3]ActionType{GetBookRequest, GetBookSuccess, GetBookFailure},
		Method: http.MethodGet,
		Path:   api.Expand(api.BookDetailsURL, "id", bookID),
		Meta:   Meta{ErrorMessage: "Fetch Book Failed", BookID: bookID},
	}
}

// GetGenres fetches the genre list.
func GetGenres() *Call {
	return &Call{
		Types:     [3]ActionType{GetGenresRequest, GetGenresSuccess, GetGenresFailure},
		Method:    http.MethodGet,
		Path:      api.BookGenresURL,
		Meta:      Meta{ErrorMessage: "Fetch Genres Failed"},
		Cacheable: true,
	}
}

// Login exchanges credentials for a session.
func Login(email, password string) *Call {
	return &Call{
		Types:  [3]ActionType{LoginRequest, LoginSuccess, LoginFailure},
		Method: http.MethodPost,
		Path:   api.LoginURL,
		Body:   api.LoginRequest{Email: email, Password: password},
		Meta:   Meta{ErrorMessage: "Login Failed"},
	}
}

// Register creates an account and a session.
func Register(name, email, password string) *Call {
	return &Call{
		Types:  [3]ActionType{RegisterRequest, RegisterSuccess, RegisterFailure},
		Method: http.MethodPost,
		Path:   api.RegisterURL,
		Body:   api.RegisterRequest{Name: name, Email: email, Password: password},
		Meta:   Meta{ErrorMessage: "Registration Failed"},
	}
}

// GetBookReviews lists reviews for one book.
func GetBookReviews(bookID string) *Call {
	return &Call{
		Types:  [3]ActionType{GetBookReviewsRequest, GetBookReviewsSuccess, GetBookReviewsFailure},
		Method: http.MethodGet,
		Path:   api.Expand(api.BookReviewsURL, "bookId", bookID),
		Meta:   Meta{ErrorMessage: "Fetch Reviews Failed", BookID: bookID},
	}
}

// GetUserReviews lists the given user's reviews.
func GetUserReviews(userID string) *Call {
	return &Call{
		Types:        [3]ActionType{GetUserReviewsRequest, GetUserReviewsSuccess, GetUserReviewsFailure},
		Method:       http.MethodGet,
		Path:         api.Expand(api.UserReviewsURL, "userId", userID),
		Meta:         Meta{ErrorMessage: "Fetch Your Reviews Failed"},
		RequiresAuth: true,
	}
}

// CheckReview asks whether the current user already reviewed a book.
func CheckReview(bookID string) *Call {
	return &Call{
		Types:        [3]ActionType{CheckReviewRequest, CheckReviewSuccess, CheckReviewFailure},
		Method:       http.MethodGet,
		Path:         api.Expand(api.ReviewCheckURL, "bookId", bookID),
		Meta:         Meta{ErrorMessage: "Review Check Failed", BookID: bookID},
		RequiresAuth: true,
	}
}

// CreateReview submits a new review.
func CreateReview(bookID string, rating int, text string) *Call {
	return &Call{
		Types:        [3]ActionType{CreateReviewRequest, CreateReviewSuccess, CreateReviewFailure},
		Method:       http.MethodPost,
		Path:         api.ReviewsURL,
		Body:         api.ReviewRequest{BookID: bookID, Rating: rating, Text: text},
		Meta:         Meta{ErrorMessage: "Submit Review Failed", BookID: bookID},
		RequiresAuth: true,
	}
}

// UpdateReview edits an existing review.
func UpdateReview(reviewID string, rating int, text string) *Call {
	return &Call{
		Types:        [3]ActionType{UpdateReviewRequest, UpdateReviewSuccess, UpdateReviewFailure},
		Method:       http.MethodPut,
		Path:         api.Expand(api.ReviewURL, "id", reviewID),
		Body:         api.ReviewRequest{Rating: rating, Text: text},
		Meta:         Meta{ErrorMessage: "Update Review Failed", ReviewID: reviewID},
		RequiresAuth: true,
	}
}

// DeleteReview removes a review.
func DeleteReview(reviewID string) *Call {
	return &Call{
		Types:        [3]ActionType{DeleteReviewRequest, DeleteReviewSuccess, DeleteReviewFailure},
		Method:       http.MethodDelete,
		Path:         api.Expand(api.ReviewURL, "id", reviewID),
		Meta:         Meta{ErrorMessage: "Delete Review Failed", ReviewID: reviewID},
		RequiresAuth: true,
	}
}

// GetFavorites lists the user's favorites.
func GetFavorites() *Call {
	return &Call{
		Types:        [3]ActionType{GetFavoritesRequest, GetFavoritesSuccess, GetFavoritesFailure},
		Method:       http.MethodGet,
		Path:         api.FavoritesURL,
		Meta:         Meta{ErrorMessage: "Fetch Favorites Failed"},
		RequiresAuth: true,
	}
}

// AddFavorite adds a book to the favorites set.
func AddFavorite(bookID string, seq uint64) *Call {
	return &Call{
		Types:        [3]ActionType{AddFavoriteRequest, AddFavoriteSuccess, AddFavoriteFailure},
		Method:       http.MethodPost,
		Path:         api.FavoritesURL,
		Body:         api.FavoriteRequest{BookID: bookID},
		Meta:         Meta{ErrorMessage: "Add to Favorites Failed", BookID: bookID, Seq: seq},
		RequiresAuth: true,
	}
}

// RemoveFavorite removes a book from the favorites set.
func RemoveFavorite(bookID string, seq uint64) *Call {
	return &Call{
		Types:        [3]ActionType{RemoveFavoriteRequest, RemoveFavoriteSuccess, RemoveFavoriteFailure},
		Method:       http.MethodDelete,
		Path:         api.Expand(api.FavoriteRemoveURL, "bookId", bookID),
		Meta:         Meta{ErrorMessage: "Remove from Favorites Failed", BookID: bookID, Seq: seq},
		RequiresAuth: true,
	}
}

// CheckFavorite asks whether one book is in the favorites set.
func CheckFavorite(bookID string) *Call {
	return &Call{
		Types:        [3]ActionType{CheckFavoriteRequest, CheckFavoriteSuccess, CheckFavoriteFailure},
		Method:       http.MethodGet,
		Path:         api.Expand(api.FavoriteCheckURL, "bookId", bookID),
		Meta:         Meta{ErrorMessage: "Favorite Check Failed", BookID: bookID},
		RequiresAuth: true,
	}
}

// GetRecommendations fetches AI-ranked suggestions.
func GetRecommendations() *Call {
	return &Call{
		Types:        [3]ActionType{GetRecommendationsRequest, GetRecommendationsSuccess, GetRecommendationsFailure},
		Method:       http.MethodGet,
		Path:         api.RecommendationsURL,
		Meta:         Meta{ErrorMessage: "Fetch Recommendations Failed"},
		RequiresAuth: true,
	}
}

// UpdateProfile edits the account's name and email.
func UpdateProfile(name, email string) *Call {
	return &Call{
		Types:        [3]ActionType{UpdateProfileRequest, UpdateProfileSuccess, UpdateProfileFailure},
		Method:       http.MethodPut,
		Path:         api.UserProfileURL,
		Body:         api.ProfileRequest{Name: name, Email: email},
		Meta:         Meta{ErrorMessage: "Update Profile Failed"},
		RequiresAuth: true,
	}
}

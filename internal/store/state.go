package store

import (
	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

// ErrorDetails is the normalized failure record a slice exposes to
// views.
type ErrorDetails struct {
	Message string
	Code    string
	Status  int
}

// Status is the lifecycle shape every slice shares.
type Status struct {
	Loading      bool
	Error        bool
	ErrorDetails ErrorDetails
}

func (s *Status) request() {
	s.Loading = true
	s.Error = false
	s.ErrorDetails = ErrorDetails{}
}

func (s *Status) success() {
	s.Loading = false
	s.Error = false
	s.ErrorDetails = ErrorDetails{}
}

func (s *Status) failure(a Action) {
	s.Loading = false
	s.Error = true
	s.ErrorDetails = details(a)
}

func details(a Action) ErrorDetails {
	d := ErrorDetails{Message: a.Meta.ErrorMessage}
	if a.Err != nil {
		if a.Err.Message != "" {
			d.Message = a.Err.Message
		}
		d.Code = a.Err.Code
		d.Status = a.Err.StatusCode
	}
	return d
}

// AuthState holds the session slice. Token presence and a non-nil user
// are paired: both set on login, both cleared on logout.
type AuthState struct {
	Status
	User            *api.User
	Token           string
	IsAuthenticated bool
}

// BooksState holds the paginated catalogue listing.
type BooksState struct {
	Status
	Books      []api.Book
	Pagination api.Pagination
}

// SearchState holds catalogue search results, kept apart from the
// unfiltered listing so clearing a search restores the browse view.
type SearchState struct {
	Status
	Query      string
	Results    []api.Book
	Pagination api.Pagination
}

// BookState holds the currently open book.
type BookState struct {
	Status
	Book *api.Book
}

// GenresState holds the genre filter list.
type GenresState struct {
	Status
	Genres []string
}

// BookReviewsState holds reviews for the currently open book.
type BookReviewsState struct {
	Status
	Reviews []api.Review
}

// UserReviewsState holds the signed-in user's reviews.
type UserReviewsState struct {
	Status
	Reviews []api.Review
}

// ReviewCheckState answers "has the current user reviewed this book".
type ReviewCheckState struct {
	Status
	BookID      string
	HasReviewed bool
	Review      *api.Review
}

// ReviewMutationState tracks the in-flight review write, shared by
// create, update and delete.
type ReviewMutationState struct {
	Status
	LastSaved *api.Review
	Deleted   bool
}

// PendingToggle records an optimistic favorite flip awaiting server
// confirmation.
type PendingToggle struct {
	Seq      uint64
	Previous bool
}

// FavoritesState holds the favorites set plus per-book optimistic
// bookkeeping. Flags is the membership view components read; Errors is
// keyed by book ID so simultaneous toggles on different books keep
// their own failure text.
type FavoritesState struct {
	Status
	Items   []api.Favorite
	Flags   map[string]bool
	Pending map[string]PendingToggle
	Errors  map[string]string
}

// RecommendationsState holds ephemeral AI suggestions.
type RecommendationsState struct {
	Status
	Items   []api.Recommendation
	Source  string
	Message string
}

// ProfileState tracks profile updates.
type ProfileState struct {
	Status
	User *api.User
}

// State is the full container snapshot handed to views. Slices are
// value types; treat a snapshot as read-only.
type State struct {
	Auth            AuthState
	Books           BooksState
	Search          SearchState
	Book            BookState
	Genres          GenresState
	BookReviews     BookReviewsState
	UserReviews     UserReviewsState
	ReviewCheck     ReviewCheckState
	ReviewMutation  ReviewMutationState
	Favorites       FavoritesState
	Recommendations RecommendationsState
	Profile         ProfileState
}

func newState() State {
	return State{
		Favorites: FavoritesState{
			Flags:   make(map[string]bool),
			Pending: make(map[string]PendingToggle),
			Errors:  make(map[string]string),
		},
	}
}

// clone deep-copies the map-bearing slices so a snapshot never aliases
// live state.
func (s State) clone() State {
	out := s
	out.Favorites.Flags = copyMap(s.Favorites.Flags)
	out.Favorites.Pending = copyMap(s.Favorites.Pending)
	out.Favorites.Errors = copyMap(s.Favorites.Errors)
	return out
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// IsFavorite reports the current membership view for a book,
// optimistic flips included.
func (s FavoritesState) IsFavorite(bookID string) bool {
	return s.Flags[bookID]
}

// ToggleError returns the failure text recorded for one book, if any.
func (s FavoritesState) ToggleError(bookID string) string {
	return s.Errors[bookID]
}

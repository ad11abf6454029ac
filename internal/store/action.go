package store

import (
	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

// ActionType names one concrete action flowing through the container.
type ActionType string

// Lifecycle action types, grouped request/success/failure.
const (
	LoginRequest ActionType = "LOGIN_REQUEST"
	LoginSuccess ActionType = "LOGIN_SUCCESS"
	LoginFailure ActionType = "LOGIN_FAILURE"

	RegisterRequest ActionType = "REGISTER_REQUEST"
	RegisterSuccess ActionType = "REGISTER_SUCCESS"
	RegisterFailure ActionType = "REGISTER_FAILURE"

	GetBooksRequest ActionType = "GET_BOOKS_REQUEST"
	GetBooksSuccess ActionType = "GET_BOOKS_SUCCESS"
	GetBooksFailure ActionType = "GET_BOOKS_FAILURE"

	SearchBooksRequest ActionType = "SEARCH_BOOKS_REQUEST"
	SearchBooksSuccess ActionType = "SEARCH_BOOKS_SUCCESS"
	SearchBooksFailure ActionType = "SEARCH_BOOKS_FAILURE"

	GetBookRequest ActionType = "GET_BOOK_REQUEST"
	GetBookSuccess ActionType = "GET_BOOK_SUCCESS"
	GetBookFailure ActionType = "GET_BOOK_FAILURE"

	GetGenresRequest ActionType = "GET_GENRES_REQUEST"
	GetGenresSuccess ActionType = "GET_GENRES_SUCCESS"
	GetGenresFailure ActionType = "GET_GENRES_FAILURE"

	GetBookReviewsRequest ActionType = "GET_BOOK_REVIEWS_REQUEST"
	GetBookReviewsSuccess ActionType = "GET_BOOK_REVIEWS_SUCCESS"
	GetBookReviewsFailure ActionType = "GET_BOOK_REVIEWS_FAILURE"

	GetUserReviewsRequest ActionType = "GET_USER_REVIEWS_REQUEST"
	GetUserReviewsSuccess ActionType = "GET_USER_REVIEWS_SUCCESS"
	GetUserReviewsFailure ActionType = "GET_USER_REVIEWS_FAILURE"

	CheckReviewRequest ActionType = "CHECK_REVIEW_REQUEST"
	CheckReviewSuccess ActionType = "CHECK_REVIEW_SUCCESS"
	CheckReviewFailure ActionType = "CHECK_REVIEW_FAILURE"

	CreateReviewRequest ActionType = "CREATE_REVIEW_REQUEST"
	CreateReviewSuccess ActionType = "CREATE_REVIEW_SUCCESS"
	CreateReviewFailure ActionType = "CREATE_REVIEW_FAILURE"

	UpdateReviewRequest ActionType = "UPDATE_REVIEW_REQUEST"
	UpdateReviewSuccess ActionType = "UPDATE_REVIEW_SUCCESS"
	UpdateReviewFailure ActionType = "UPDATE_REVIEW_FAILURE"

	DeleteReviewRequest ActionType = "DELETE_REVIEW_REQUEST"
	DeleteReviewSuccess ActionType = "DELETE_REVIEW_SUCCESS"
	DeleteReviewFailure ActionType = "DELETE_REVIEW_FAILURE"

	GetFavoritesRequest ActionType = "GET_FAVORITES_REQUEST"
	GetFavoritesSuccess ActionType = "GET_FAVORITES_SUCCESS"
	GetFavoritesFailure ActionType = "GET_FAVORITES_FAILURE"

	AddFavoriteRequest ActionType = "ADD_FAVORITE_REQUEST"
	AddFavoriteSuccess ActionType = "ADD_FAVORITE_SUCCESS"
	AddFavoriteFailure ActionType = "ADD_FAVORITE_FAILURE"

	RemoveFavoriteRequest ActionType = "REMOVE_FAVORITE_REQUEST"
	RemoveFavoriteSuccess ActionType = "REMOVE_FAVORITE_SUCCESS"
	RemoveFavoriteFailure ActionType = "REMOVE_FAVORITE_FAILURE"

	CheckFavoriteRequest ActionType = "CHECK_FAVORITE_REQUEST"
	CheckFavoriteSuccess ActionType = "CHECK_FAVORITE_SUCCESS"
	CheckFavoriteFailure ActionType = "CHECK_FAVORITE_FAILURE"

	GetRecommendationsRequest ActionType = "GET_RECOMMENDATIONS_REQUEST"
	GetRecommendationsSuccess ActionType = "GET_RECOMMENDATIONS_SUCCESS"
	GetRecommendationsFailure ActionType = "GET_RECOMMENDATIONS_FAILURE"

	UpdateProfileRequest ActionType = "UPDATE_PROFILE_REQUEST"
	UpdateProfileSuccess ActionType = "UPDATE_PROFILE_SUCCESS"
	UpdateProfileFailure ActionType = "UPDATE_PROFILE_FAILURE"
)

// Local, non-network action types.
const (
	Logout                   ActionType = "LOGOUT"
	SetAuthData              ActionType = "SET_AUTH_DATA"
	UpdateFavoriteOptimistic ActionType = "UPDATE_FAVORITE_OPTIMISTIC"
	ClearSearch              ActionType = "CLEAR_SEARCH"
)

// Meta carries per-action context alongside the lifecycle payloads.
type Meta struct {
	// ErrorMessage is the fallback shown when the server gives no
	// usable message.
	ErrorMessage string
	// BookID scopes favorite/review actions to one entity so failures
	// on different books never clobber each other.
	BookID string
	// ReviewID scopes review update/delete actions.
	ReviewID string
	// Seq is the per-entity sequence number; only the latest in-flight
	// toggle for an entity may commit its result.
	Seq uint64
	// Query is the search term that produced a search lifecycle.
	Query string
	// Append marks a books success as incremental pagination: results
	// concatenate instead of replacing the list.
	Append bool
	// CorrelationID ties the three lifecycle actions of one dispatch
	// together in logs.
	CorrelationID string
}

// Action is one concrete event folded into slice state.
type Action struct {
	Type     ActionType
	Response *api.Envelope
	Err      *api.Error
	Meta     Meta

	// Optimistic carries the local favorite flip for
	// UPDATE_FAVORITE_OPTIMISTIC actions.
	Optimistic *OptimisticFavorite

	// Auth carries the payload for SET_AUTH_DATA actions.
	Auth *api.AuthData
}

// OptimisticFavorite records a local favorite flip and the value to
// roll back to if the network confirmation fails.
type OptimisticFavorite struct {
	BookID     string
	IsFavorite bool
	Previous   bool
	Seq        uint64
}

// Call is a declarative action descriptor: the request to perform and
// the three lifecycle action types it produces. Builders construct
// these purely; construction cannot fail.
type Call struct {
	Types  [3]ActionType // request, success, failure
	Method string
	Path   string // relative to /v1
	Body   any
	Meta   Meta

	// RequiresAuth marks calls that are pointless without a live
	// session; the interceptor fails them locally when the auth slice
	// already holds an auth error.
	RequiresAuth bool

	// Cacheable marks read-mostly GETs served from the response cache
	// when a fresh entry exists.
	Cacheable bool
}

// Request, Success and Failure name the lifecycle action types.
func (c *Call) Request() ActionType { return c.Types[0] }
func (c *Call) Success() ActionType { return c.Types[1] }
func (c *Call) Failure() ActionType { return c.Types[2] }

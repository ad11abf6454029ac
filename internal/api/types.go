package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the response wrapper every /v1 endpoint returns.
// Data is left raw so each caller can decode into its own payload type.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Meta    *Meta           `json:"meta,omitempty"`
}

// Meta carries response metadata, currently only pagination.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination mirrors the server's pagination block.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	NextPage     *int `json:"nextPage,omitempty"`
}

// Decode unmarshals the envelope's data payload into T.
func Decode[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || len(env.Data) == 0 {
		return out, fmt.Errorf("envelope has no data")
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decoding response data: %w", err)
	}
	return out, nil
}

// User is the authenticated account record.
type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Book is a catalogue entry. Rating fields are recomputed server-side.
type Book struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	CoverImageURL string   `json:"coverImageUrl"`
	Genres        []string `json:"genres"`
	PublishedYear int      `json:"publishedYear"`
	AverageRating float64  `json:"averageRating"`
	TotalReviews  int      `json:"totalReviews"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// Review is a star review. The server enforces one per (user, book).
type Review struct {
	ID        string `json:"_id"`
	BookID    string `json:"bookId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	User      *User  `json:"user,omitempty"`
	Book      *Book  `json:"book,omitempty"`
}

// Favorite is a set-membership record; existence means favorited.
type Favorite struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId"`
	BookID    string `json:"bookId"`
	CreatedAt string `json:"createdAt,omitempty"`
	Book      *Book  `json:"book,omitempty"`
}

// Recommendation is ephemeral; it is never persisted client-side.
type Recommendation struct {
	ID         string  `json:"_id,omitempty"`
	Title      string  `json:"title,omitempty"`
	Author     string  `json:"author,omitempty"`
	Book       *Book   `json:"book,omitempty"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"` // "ai" or "fallback"
	CreatedAt  string  `json:"createdAt,omitempty"`
}

// AuthData is the payload of /auth/login and /auth/register responses.
type AuthData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// BooksData is the payload of GET /books.
type BooksData struct {
	Books []Book `json:"books"`
}

// ReviewsData is the payload of the review listing endpoints.
type ReviewsData struct {
	Reviews []Review `json:"reviews"`
}

// FavoritesData is the payload of GET /favorites.
type FavoritesData struct {
	Favorites []Favorite `json:"favorites"`
}

// FavoriteCheckData is the payload of GET /favorites/check/{bookId}.
type FavoriteCheckData struct {
	IsFavorite bool `json:"isFavorite"`
}

// ReviewCheckData is the payload of GET /reviews/check/{bookId}.
type ReviewCheckData struct {
	HasReviewed bool    `json:"hasReviewed"`
	Review      *Review `json:"review,omitempty"`
}

// RecommendationsData is the payload of GET /recommendations.
type RecommendationsData struct {
	Recommendations []Recommendation `json:"recommendations"`
	Source          string           `json:"source"`
	Message         string           `json:"message,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ReviewRequest is the body of review create/update calls.
type ReviewRequest struct {
	BookID string `json:"bookId,omitempty"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// ProfileRequest is the body of PUT /users/profile.
type ProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FavoriteRequest is the body of POST /favorites.
type FavoriteRequest struct {
	BookID string `json:"bookId"`
}

// HealthData is the payload of GET /health.
type HealthData struct {
	Status string `json:"status"`
}

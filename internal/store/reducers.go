package store

import (
	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

// reduce folds one action into the container state. It is pure: all
// side effects (persistence, cache flushes, logging) live in the
// dispatch interceptor.
func reduce(s State, a Action) State {
	s.Auth = reduceAuth(s.Auth, a)
	s.Books = reduceBooks(s.Books, a)
	s.Search = reduceSearch(s.Search, a)
	s.Book = reduceBook(s.Book, a)
	s.Genres = reduceGenres(s.Genres, a)
	s.BookReviews = reduceBookReviews(s.BookReviews, a)
	s.UserReviews = reduceUserReviews(s.UserReviews, a)
	s.ReviewCheck = reduceReviewCheck(s.ReviewCheck, a)
	s.ReviewMutation = reduceReviewMutation(s.ReviewMutation, a)
	s.Favorites = reduceFavorites(s.Favorites, a)
	s.Recommendations = reduceRecommendations(s.Recommendations, a)
	s.Profile = reduceProfile(s.Profile, a)
	return s
}

func reduceAuth(st AuthState, a Action) AuthState {
	switch a.Type {
	case LoginRequest, RegisterRequest:
		st.request()

	case LoginSuccess, RegisterSuccess:
		data, err := api.Decode[api.AuthData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		user := data.User
		st.User = &user
		st.Token = data.Token
		st.IsAuthenticated = true

	case LoginFailure, RegisterFailure:
		st.failure(a)
		st.User = nil
		st.Token = ""
		st.IsAuthenticated = false

	case Logout:
		st = AuthState{}

	case SetAuthData:
		if a.Auth != nil {
			st.success()
			user := a.Auth.User
			st.User = &user
			st.Token = a.Auth.Token
			st.IsAuthenticated = true
		}

	case UpdateProfileSuccess:
		// Keep the session's user record in step with profile edits.
		if st.IsAuthenticated {
			if user, err := api.Decode[api.User](a.Response); err == nil {
				st.User = &user
			}
		}
	}
	return st
}

func reduceBooks(st BooksState, a Action) BooksState {
	switch a.Type {
	case GetBooksRequest:
		st.request()

	case GetBooksSuccess:
		data, err := api.Decode[api.BooksData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		if a.Meta.Append {
			st.Books = append(st.Books, data.Books...)
		} else {
			st.Books = data.Books
		}
		if a.Response.Meta != nil && a.Response.Meta.Pagination != nil {
			st.Pagination = *a.Response.Meta.Pagination
		}

	case GetBooksFailure:
		st.failure(a)
	}
	return st
}

func reduceSearch(st SearchState, a Action) SearchState {
	switch a.Type {
	case SearchBooksRequest:
		st.request()
		st.Query = a.Meta.Query

	case SearchBooksSuccess:
		// A stale response for a query the user has since retyped past
		// must not overwrite the newer results.
		if a.Meta.Query != st.Query {
			return st
		}
		data, err := api.Decode[api.BooksData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.Results = data.Books
		if a.Response.Meta != nil && a.Response.Meta.Pagination != nil {
			st.Pagination = *a.Response.Meta.Pagination
		}

	case SearchBooksFailure:
		if a.Meta.Query != st.Query {
			return st
		}
		st.failure(a)

	case ClearSearch:
		st = SearchState{}
	}
	return st
}

func reduceBook(st BookState, a Action) BookState {
	switch a.Type {
	case GetBookRequest:
		st.request()

	case GetBookSuccess:
		book, err := api.Decode[api.Book](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.Book = &book

	case GetBookFailure:
		st.failure(a)
	}
	return st
}

func reduceGenres(st GenresState, a Action) GenresState {
	switch a.Type {
	case GetGenresRequest:
		st.request()

	case GetGenresSuccess:
		genres, err := api.Decode[[]string](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.Genres = genres

	case GetGenresFailure:
		st.failure(a)
	}
	return st
}

func reduceBookReviews(st BookReviewsState, a Action) BookReviewsState {
	switch a.Type {
	case GetBookReviewsRequest:
		st.request()

	case GetBookReviewsSuccess:
		data, err := api.Decode[api.ReviewsData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.Reviews = data.Reviews

	case GetBookReviewsFailure:
		st.failure(a)
	}
	return st
}

func reduceUserReviews(st UserReviewsState, a Action) UserReviewsState {
	switch a.Type {
	case GetUserReviewsRequest:
		st.request()

	case GetUserReviewsSuccess:
		data, err := api.Decode[api.ReviewsData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.Reviews = data.Reviews

	case GetUserReviewsFailure:
		st.failure(a)

	case Logout:
		st = UserReviewsState{}
	}
	return st
}

func reduceReviewCheck(st ReviewCheckState, a Action) ReviewCheckState {
	switch a.Type {
	case CheckReviewRequest:
		st.request()
		st.BookID = a.Meta.BookID

	case CheckReviewSuccess:
		data, err := api.Decode[api.ReviewCheckData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.HasReviewed = data.HasReviewed
		st.Review = data.Review

	case CheckReviewFailure:
		st.failure(a)
	}
	return st
}

func reduceReviewMutation(st ReviewMutationState, a Action) ReviewMutationState {
	switch a.Type {
	case CreateReviewRequest, UpdateReviewRequest, DeleteReviewRequest:
		st.request()
		st.Deleted = false

	case CreateReviewSuccess, UpdateReviewSuccess:
		review, err := api.Decode[api.Review](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.LastSaved = &review

	case DeleteReviewSuccess:
		st.success()
		st.LastSaved = nil
		st.Deleted = true

	case CreateReviewFailure, UpdateReviewFailure, DeleteReviewFailure:
		st.failure(a)
	}
	return st
}

func reduceFavorites(st FavoritesState, a Action) FavoritesState {
	ensureMaps := func() {
		if st.Flags == nil {
			st.Flags = make(map[string]bool)
		}
		if st.Pending == nil {
			st.Pending = make(map[string]PendingToggle)
		}
		if st.Errors == nil {
			st.Errors = make(map[string]string)
		}
	}

	switch a.Type {
	case GetFavoritesRequest:
		st.request()

	case GetFavoritesSuccess:
		data, err := api.Decode[api.FavoritesData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		ensureMaps()
		st.success()
		st.Items = data.Favorites
		flags := make(map[string]bool, len(data.Favorites))
		for _, f := range data.Favorites {
			flags[f.BookID] = true
		}
		// Optimistic flips still awaiting confirmation win over the
		// server listing.
		for id := range st.Pending {
			flags[id] = st.Flags[id]
		}
		st.Flags = flags

	case GetFavoritesFailure:
		st.failure(a)

	case UpdateFavoriteOptimistic:
		if a.Optimistic == nil {
			return st
		}
		ensureMaps()
		st.Flags[a.Optimistic.BookID] = a.Optimistic.IsFavorite
		st.Pending[a.Optimistic.BookID] = PendingToggle{Seq: a.Optimistic.Seq, Previous: a.Optimistic.Previous}
		delete(st.Errors, a.Optimistic.BookID)

	case AddFavoriteRequest, RemoveFavoriteRequest:
		ensureMaps()
		st.Loading = true
		delete(st.Errors, a.Meta.BookID)

	case AddFavoriteSuccess, RemoveFavoriteSuccess:
		ensureMaps()
		st.Loading = false
		p, ok := st.Pending[a.Meta.BookID]
		if !ok || p.Seq != a.Meta.Seq {
			// A newer toggle superseded this one; its result decides.
			return st
		}
		delete(st.Pending, a.Meta.BookID)
		st.Flags[a.Meta.BookID] = a.Type == AddFavoriteSuccess
		delete(st.Errors, a.Meta.BookID)

	case AddFavoriteFailure, RemoveFavoriteFailure:
		ensureMaps()
		st.Loading = false
		p, ok := st.Pending[a.Meta.BookID]
		if !ok || p.Seq != a.Meta.Seq {
			return st
		}
		delete(st.Pending, a.Meta.BookID)
		st.Flags[a.Meta.BookID] = p.Previous
		st.Errors[a.Meta.BookID] = details(a).Message

	case CheckFavoriteRequest:
		st.Loading = true

	case CheckFavoriteSuccess:
		ensureMaps()
		st.Loading = false
		if _, pending := st.Pending[a.Meta.BookID]; pending {
			return st
		}
		data, err := api.Decode[api.FavoriteCheckData](a.Response)
		if err != nil {
			return st
		}
		st.Flags[a.Meta.BookID] = data.IsFavorite

	case CheckFavoriteFailure:
		st.Loading = false

	case Logout:
		st = FavoritesState{
			Flags:   make(map[string]bool),
			Pending: make(map[string]PendingToggle),
			Errors:  make(map[string]string),
		}
	}
	return st
}

func reduceRecommendations(st RecommendationsState, a Action) RecommendationsState {
	switch a.Type {
	case GetRecommendationsRequest:
		st.request()

	case GetRecommendationsSuccess:
		data, err := api.Decode[api.RecommendationsData](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.Items = data.Recommendations
		st.Source = data.Source
		st.Message = data.Message

	case GetRecommendationsFailure:
		st.failure(a)

	case Logout:
		st = RecommendationsState{}
	}
	return st
}

func reduceProfile(st ProfileState, a Action) ProfileState {
	switch a.Type {
	case UpdateProfileRequest:
		st.request()

	case UpdateProfileSuccess:
		user, err := api.Decode[api.User](a.Response)
		if err != nil {
			st.failure(a)
			st.ErrorDetails.Code = api.CodeDecodeError
			return st
		}
		st.success()
		st.User = &user

	case UpdateProfileFailure:
		st.failure(a)
	}
	return st
}

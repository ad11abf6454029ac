package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/cache"
	"github.com/fyrsmithlabs/shelfstream/internal/session"
)

// MinSearchChars is the default minimum query length before a search
// call goes out.
const MinSearchChars = 3

// Doer performs one HTTP call. *api.Client satisfies it; tests swap in
// fakes.
type Doer interface {
	Do(ctx context.Context, method, path string, body any) (*api.Envelope, error)
}

// Options configures a Store.
type Options struct {
	Client Doer
	// Session persists auth state across invocations. May be nil.
	Session *session.Store
	// Cache serves cacheable GETs. May be nil.
	Cache *cache.Cache
	// MinSearchChars overrides the search gate; zero means the default.
	MinSearchChars int
	Logger         *zap.Logger
}

// Store is the state container plus its dispatch interceptor.
type Store struct {
	mu     sync.Mutex
	state  State
	client Doer
	sess   *session.Store
	cache  *cache.Cache
	logger *zap.Logger

	minSearch int

	seqMu sync.Mutex
	seqs  map[string]uint64

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a store and hydrates auth state from the persisted
// session when one is live.
func New(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MinSearchChars <= 0 {
		opts.MinSearchChars = MinSearchChars
	}
	s := &Store{
		state:     newState(),
		client:    opts.Client,
		sess:      opts.Session,
		cache:     opts.Cache,
		logger:    opts.Logger,
		minSearch: opts.MinSearchChars,
		seqs:      make(map[string]uint64),
		subs:      make(map[int]chan struct{}),
	}
	s.hydrate()
	return s
}

// hydrate restores auth state from disk.
func (s *Store) hydrate() {
	if s.sess == nil {
		return
	}
	sess, err := s.sess.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			s.logger.Debug("session not restored", zap.Error(err))
		}
		return
	}
	s.Apply(Action{Type: SetAuthData, Auth: &api.AuthData{User: sess.User, Token: sess.Token}})
}

// State returns a read-only snapshot of the container.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel signaled after every state change and a
// cancel func. The channel has capacity one; coalesced notifications
// are fine because consumers re-read a full snapshot.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Apply folds a plain (non-network) action into state.
func (s *Store) Apply(a Action) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	s.mu.Unlock()
	s.notify()
	s.sideEffects(a)
}

// Dispatch runs a call descriptor through its lifecycle: REQUEST is
// emitted synchronously before any network activity, then exactly one
// HTTP call, then SUCCESS or FAILURE. It never returns an error; the
// terminal action is returned for callers that want it.
func (s *Store) Dispatch(ctx context.Context, call *Call) Action {
	meta := call.Meta
	meta.CorrelationID = uuid.NewString()

	s.Apply(Action{Type: call.Request(), Meta: meta})
	s.logger.Debug("dispatch",
		zap.String("type", string(call.Request())),
		zap.String("method", call.Method),
		zap.String("path", call.Path),
		zap.String("correlation_id", meta.CorrelationID))

	// Defensive short-circuit: when the auth slice already records an
	// auth failure, calls that need a session are failed locally
	// instead of producing another doomed request.
	if call.RequiresAuth {
		if prior, blocked := s.authBlocked(); blocked {
			failure := Action{Type: call.Failure(), Err: prior, Meta: meta}
			s.Apply(failure)
			return failure
		}
	}

	if call.Cacheable && call.Method == http.MethodGet && s.cache != nil {
		if env, ok := s.cache.Get(call.Path); ok {
			success := Action{Type: call.Success(), Response: env, Meta: meta}
			s.Apply(success)
			return success
		}
	}

	env, err := s.client.Do(ctx, call.Method, call.Path, call.Body)
	if err != nil {
		apiErr := asAPIError(err)
		s.logger.Debug("dispatch failed",
			zap.String("type", string(call.Failure())),
			zap.String("code", apiErr.Code),
			zap.String("correlation_id", meta.CorrelationID))

		if call.Request() == GetRecommendationsRequest {
			if fallback, ok := s.recommendationsFallback(ctx); ok {
				success := Action{Type: call.Success(), Response: fallback, Meta: meta}
				s.Apply(success)
				return success
			}
		}

		failure := Action{Type: call.Failure(), Err: apiErr, Meta: meta}
		s.Apply(failure)
		return failure
	}

	if call.Method != http.MethodGet && s.cache != nil {
		s.cache.Flush()
	}
	if call.Cacheable && call.Method == http.MethodGet && s.cache != nil {
		s.cache.Set(call.Path, env)
	}

	success := Action{Type: call.Success(), Response: env, Meta: meta}
	s.Apply(success)
	return success
}

// Search gates and dispatches a catalogue search. Queries shorter than
// the minimum produce no network call and report issued=false; an
// empty query clears search state back to the browse view.
func (s *Store) Search(ctx context.Context, query string, page api.Page) (Action, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		clear := Action{Type: ClearSearch}
		s.Apply(clear)
		return clear, false
	}
	if len([]rune(trimmed)) < s.minSearch {
		return Action{}, false
	}
	return s.Dispatch(ctx, SearchBooks(trimmed, page)), true
}

// ToggleFavorite flips a book's favorite flag optimistically, then
// confirms with the server. Only the latest toggle per book may commit
// its result; stale responses are ignored by the reducer.
func (s *Store) ToggleFavorite(ctx context.Context, bookID string) Action {
	s.mu.Lock()
	previous := s.state.Favorites.IsFavorite(bookID)
	s.mu.Unlock()

	seq := s.nextSeq(bookID)
	target := !previous

	s.Apply(Action{
		Type: UpdateFavoriteOptimistic,
		Optimistic: &OptimisticFavorite{
			BookID:     bookID,
			IsFavorite: target,
			Previous:   previous,
			Seq:        seq,
		},
	})

	if target {
		return s.Dispatch(ctx, AddFavorite(bookID, seq))
	}
	return s.Dispatch(ctx, RemoveFavorite(bookID, seq))
}

// Logout clears auth state and the persisted session.
func (s *Store) Logout() {
	s.Apply(Action{Type: Logout})
}

func (s *Store) nextSeq(bookID string) uint64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.seqs[bookID]++
	return s.seqs[bookID]
}

// authBlocked reports whether the auth slice currently records an auth
// error, returning that error for the local failure.
func (s *Store) authBlocked() (*api.Error, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state.Auth
	if !st.Error {
		return nil, false
	}
	return &api.Error{
		StatusCode: st.ErrorDetails.Status,
		Code:       st.ErrorDetails.Code,
		Message:    st.ErrorDetails.Message,
	}, true
}

// sideEffects runs the interceptor-owned side effects for terminal
// actions: session persistence and cache hygiene. Reducers stay pure.
func (s *Store) sideEffects(a Action) {
	switch a.Type {
	case LoginSuccess, RegisterSuccess:
		if s.sess == nil {
			return
		}
		data, err := api.Decode[api.AuthData](a.Response)
		if err != nil {
			return
		}
		if err := s.sess.Save(session.Session{Token: data.Token, User: data.User}); err != nil {
			s.logger.Warn("session not persisted", zap.Error(err))
		}

	case UpdateProfileSuccess:
		if s.sess == nil {
			return
		}
		user, err := api.Decode[api.User](a.Response)
		if err != nil {
			return
		}
		if sess, err := s.sess.Load(); err == nil {
			sess.User = user
			if err := s.sess.Save(*sess); err != nil {
				s.logger.Warn("session not updated", zap.Error(err))
			}
		}

	case Logout:
		if s.sess != nil {
			if err := s.sess.Clear(); err != nil {
				s.logger.Warn("session not cleared", zap.Error(err))
			}
		}
		if s.cache != nil {
			s.cache.Flush()
		}
	}
}

// recommendationsFallback fetches top-rated books and dresses them as
// recommendations when the AI endpoint is down.
func (s *Store) recommendationsFallback(ctx context.Context) (*api.Envelope, bool) {
	values := api.PageByNumber(1, 10).Query()
	values.Set("sort", "rating")
	env, err := s.client.Do(ctx, http.MethodGet, api.WithQuery(api.BooksURL, values), nil)
	if err != nil {
		return nil, false
	}
	books, err := api.Decode[api.BooksData](env)
	if err != nil {
		return nil, false
	}

	recs := make([]api.Recommendation, 0, len(books.Books))
	for i, b := range books.Books {
		book := b
		recs = append(recs, api.Recommendation{
			Book:       &book,
			Title:      b.Title,
			Author:     b.Author,
			Reason:     fallbackReasons[i%len(fallbackReasons)],
			Confidence: 0.7,
			Source:     "fallback",
		})
	}

	data, err := json.Marshal(api.RecommendationsData{
		Recommendations: recs,
		Source:          "fallback",
		Message:         "Showing popular books while AI recommendations are unavailable",
	})
	if err != nil {
		return nil, false
	}
	return &api.Envelope{Success: true, Data: data}, true
}

var fallbackReasons = []string{
	"Highly rated by our community of readers",
	"A popular choice among book enthusiasts",
	"Consistently praised for its engaging storytelling",
	"Recommended by fellow readers with similar tastes",
	"A well-reviewed book that readers love",
	"Popular among readers who enjoy quality literature",
	"Highly recommended by the reading community",
	"A favorite among discerning readers",
	"Praised for its compelling narrative and characters",
	"A standout book that has captured readers' attention",
}

func asAPIError(err error) *api.Error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &api.Error{Code: api.CodeUnknownError, Message: err.Error()}
}


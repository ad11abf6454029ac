package tui

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/store"
)

type scriptedClient struct {
	mu    sync.Mutex
	calls []string
}

func (c *scriptedClient) Do(_ context.Context, method, path string, _ any) (*api.Envelope, error) {
	c.mu.Lock()
	c.calls = append(c.calls, method+" "+path)
	c.mu.Unlock()
	return &api.Envelope{Success: true, Data: json.RawMessage(`{}`)}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	st := store.New(store.Options{Client: &scriptedClient{}})
	return NewModel(Options{Store: st, PageSize: 12, SearchDebounce: 50 * time.Millisecond})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, viewBrowse, m.mode)
	assert.Equal(t, 1, m.page)
	assert.Equal(t, 12, m.pageSize)
	assert.False(t, m.quitting)
}

func TestInitReturnsCommands(t *testing.T) {
	m := newTestModel(t)
	assert.NotNil(t, m.Init())
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(keyMsg("q"))

	assert.True(t, updated.(Model).quitting)
	assert.NotNil(t, cmd)
}

func TestSlashFocusesSearch(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("/"))

	assert.True(t, updated.(Model).searching)
}

func TestSearchKeystrokeSchedulesDebounce(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("/"))
	m = updated.(Model)

	updated, cmd := m.Update(keyMsg("d"))
	m = updated.(Model)

	assert.Equal(t, "d", m.search.Value())
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.searchSeq)

	// A second keystroke restarts the window with a newer sequence.
	updated, _ = m.Update(keyMsg("u"))
	m = updated.(Model)
	assert.Equal(t, 2, m.searchSeq)
}

func TestStaleDebounceIgnored(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("/"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("d"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("u"))
	m = updated.(Model)

	// The first keystroke's timer firing now must not dispatch.
	_, cmd := m.Update(debounceMsg{seq: 1})
	assert.Nil(t, cmd)

	_, cmd = m.Update(debounceMsg{seq: 2})
	assert.NotNil(t, cmd)
}

func TestEscClearsSearch(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("/"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("d"))
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	assert.False(t, m.searching)
	assert.Empty(t, m.search.Value())
	assert.NotNil(t, cmd)
}

func TestRefreshRereadsSnapshot(t *testing.T) {
	client := &scriptedClient{}
	st := store.New(store.Options{Client: client})
	m := NewModel(Options{Store: st})

	st.Dispatch(context.Background(), store.Login("a@b.co", "hunter22"))

	updated, cmd := m.Update(refreshMsg{})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	// The snapshot now reflects whatever the container holds.
	assert.Equal(t, st.State().Auth.IsAuthenticated, m.state.Auth.IsAuthenticated)
}

func TestSignInOpensLoginForm(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("s"))
	m = updated.(Model)

	assert.Equal(t, viewLogin, m.mode)
	require.Len(t, m.inputs, 2)
}

func TestLoginFormValidatesBeforeDispatch(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("s"))
	m = updated.(Model)

	// Empty form: submit must not produce a network command.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, viewLogin, m.mode)
	assert.Equal(t, "Email is required", m.formErr)
}

func TestRegisterFormHasNameField(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("u"))
	m = updated.(Model)

	assert.Equal(t, viewRegister, m.mode)
	require.Len(t, m.inputs, 3)
}

func TestReviewFormRatingKeys(t *testing.T) {
	m := newTestModel(t)
	m.mode = viewReview
	m.selectedID = "b1"
	updated, _ := m.openReviewForm()
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("4"))
	m = updated.(Model)
	assert.Equal(t, 4, m.rating)
}

func TestReviewFormRejectsMissingRating(t *testing.T) {
	m := newTestModel(t)
	m.selectedID = "b1"
	updated, _ := m.openReviewForm()
	m = updated.(Model)

	m.inputs[0].SetValue("lovely")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, viewReview, m.mode)
	assert.Equal(t, "Please select a rating between 1 and 5", m.formErr)
}

func TestViewBrowse(t *testing.T) {
	m := newTestModel(t)
	m.state.Books.Books = []api.Book{
		{ID: "b1", Title: "Dune", Author: "Frank Herbert", AverageRating: 4.6, TotalReviews: 3},
	}

	view := m.View()
	assert.Contains(t, view, "ShelfStream")
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Frank Herbert")
	assert.Contains(t, view, "[q]")
	assert.Contains(t, view, "[/]")
}

func TestViewShowsSliceError(t *testing.T) {
	m := newTestModel(t)
	m.state.Books.Error = true
	m.state.Books.ErrorDetails = store.ErrorDetails{Message: "Network error - please check your connection", Status: 0}

	view := m.View()
	assert.Contains(t, view, "Network error - please check your connection")
}

func TestViewFavoriteMarker(t *testing.T) {
	m := newTestModel(t)
	m.state.Books.Books = []api.Book{{ID: "b1", Title: "Dune", Author: "Frank Herbert"}}
	m.state.Favorites.Flags = map[string]bool{"b1": true}

	assert.Contains(t, m.View(), "♥")
}

func TestViewRecommendationsFallbackNote(t *testing.T) {
	m := newTestModel(t)
	m.mode = viewRecommendations
	m.state.Recommendations.Source = "fallback"
	m.state.Recommendations.Message = "Showing popular books while AI recommendations are unavailable"
	m.state.Recommendations.Items = []api.Recommendation{
		{Title: "Dune", Author: "Frank Herbert", Reason: "Highly rated by our community of readers", Confidence: 0.7, Source: "fallback"},
	}

	view := m.View()
	assert.Contains(t, view, "Showing popular books")
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "70%")
}

func TestStarsRendering(t *testing.T) {
	assert.Equal(t, "★★★☆☆", stars(3))
	assert.Equal(t, "☆☆☆☆☆", stars(0))
	assert.Equal(t, "★★★★★", stars(7))
	assert.Equal(t, "★★★★★", averageStars(4.6))
	assert.Equal(t, "★★☆☆☆", averageStars(2.2))
}

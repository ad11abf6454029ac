// Package tui implements the interactive catalogue browser.
//
// The model is a thin view over the state container: every key that
// means "do something" turns into a dispatched call descriptor, and a
// subscription on the container feeds fresh snapshots back into the
// model. The TUI itself holds no domain state beyond cursor positions
// and form input.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/store"
	"github.com/fyrsmithlabs/shelfstream/internal/validate"
)

const dispatchTimeout = 30 * time.Second

type viewMode int

const (
	viewBrowse viewMode = iota
	viewDetail
	viewLogin
	viewRegister
	viewReview
	viewRecommendations
	viewFavorites
)

// Options configures the browser.
type Options struct {
	Store *store.Store
	// PageSize is the catalogue page length.
	PageSize int
	// MinSearchChars gates search dispatch; zero means the store default.
	MinSearchChars int
	// SearchDebounce is the pause after the last keystroke before a
	// search goes out.
	SearchDebounce time.Duration
}

// Model is the BubbleTea model for the catalogue browser.
type Model struct {
	store   *store.Store
	state   store.State
	updates <-chan struct{}
	unsub   func()

	mode     viewMode
	cursor   int
	page     int
	pageSize int

	search    textinput.Model
	searching bool
	debounce  time.Duration
	minChars  int
	searchSeq int

	spin spinner.Model

	inputs     []textinput.Model
	focusIndex int
	rating     int
	formErr    string

	selectedID string

	width    int
	height   int
	quitting bool
}

// Messages.
type (
	// refreshMsg signals the container changed; re-read the snapshot.
	refreshMsg struct{}
	// debounceMsg fires after the search debounce window. Only the
	// latest sequence number is honored.
	debounceMsg struct {
		seq int
	}
	// dispatchedMsg carries a terminal action; snapshots arrive via
	// refreshMsg, so it is informational.
	dispatchedMsg struct {
		action store.Action
	}
)

// NewModel creates the browser model over a store.
func NewModel(opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = 12
	}
	if opts.MinSearchChars <= 0 {
		opts.MinSearchChars = store.MinSearchChars
	}
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = 300 * time.Millisecond
	}

	search := textinput.New()
	search.Placeholder = "title or author"
	search.CharLimit = 80
	search.Width = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	updates, unsub := opts.Store.Subscribe()

	return Model{
		store:    opts.Store,
		state:    opts.Store.State(),
		updates:  updates,
		unsub:    unsub,
		page:     1,
		pageSize: opts.PageSize,
		search:   search,
		debounce: opts.SearchDebounce,
		minChars: opts.MinSearchChars,
		spin:     sp,
	}
}

// Init loads the first catalogue page and the genre list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		listen(m.updates),
		m.dispatch(store.GetBooks(store.BooksQuery{Page: api.PageByNumber(m.page, m.pageSize)}, false)),
		m.dispatch(store.GetGenres()),
	)
}

// listen blocks on the container's notification channel.
func listen(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return refreshMsg{}
	}
}

// dispatch runs a call descriptor off the UI goroutine.
func (m Model) dispatch(call *store.Call) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		return dispatchedMsg{action: s.Dispatch(ctx, call)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.state = m.store.State()
		m.clampCursor()
		return m, listen(m.updates)

	case dispatchedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case debounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m, m.searchCmd(m.search.Value())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, whatever has focus.
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		m.unsub()
		return m, tea.Quit
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	switch m.mode {
	case viewLogin, viewRegister:
		return m.updateAuthForm(msg)
	case viewReview:
		return m.updateReviewForm(msg)
	case viewDetail:
		return m.updateDetail(msg)
	case viewRecommendations, viewFavorites:
		return m.updateListView(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	books := m.visibleBooks()

	switch msg.String() {
	case "q":
		m.quitting = true
		m.unsub()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(books)-1 {
			m.cursor++
		}

	case "left", "h":
		if m.state.Books.Pagination.HasPrevPage && m.state.Search.Query == "" {
			m.page--
			m.cursor = 0
			return m, m.dispatch(store.GetBooks(store.BooksQuery{Page: api.PageByNumber(m.page, m.pageSize)}, false))
		}

	case "right", "l":
		if m.state.Books.Pagination.HasNextPage && m.state.Search.Query == "" {
			m.page++
			m.cursor = 0
			return m, m.dispatch(store.GetBooks(store.BooksQuery{Page: api.PageByNumber(m.page, m.pageSize)}, false))
		}

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "enter":
		if m.cursor < len(books) {
			return m.openDetail(books[m.cursor].ID)
		}

	case "f":
		if m.cursor < len(books) {
			return m, m.toggleFavoriteCmd(books[m.cursor].ID)
		}

	case "a":
		m.mode = viewRecommendations
		m.cursor = 0
		return m, m.dispatch(store.GetRecommendations())

	case "v":
		m.mode = viewFavorites
		m.cursor = 0
		return m, m.dispatch(store.GetFavorites())

	case "s":
		if !m.state.Auth.IsAuthenticated {
			return m.openAuthForm(viewLogin)
		}

	case "u":
		if !m.state.Auth.IsAuthenticated {
			return m.openAuthForm(viewRegister)
		}

	case "o":
		if m.state.Auth.IsAuthenticated {
			m.store.Logout()
		}

	case "r":
		return m, m.dispatch(store.GetBooks(store.BooksQuery{Page: api.PageByNumber(m.page, m.pageSize)}, false))
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.searchSeq++
		return m, m.searchCmd("")

	case "enter":
		m.searching = false
		m.search.Blur()
		m.searchSeq++
		return m, m.searchCmd(m.search.Value())
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	// Restart the debounce window on every edit; only the newest
	// sequence number survives to dispatch.
	m.searchSeq++
	seq := m.searchSeq
	debounce := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

// searchCmd runs the gated search. The store applies the minimum
// length rule and clears results on an empty query.
func (m Model) searchCmd(query string) tea.Cmd {
	s := m.store
	size := m.pageSize
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		action, _ := s.Search(ctx, query, api.PageByNumber(1, size))
		return dispatchedMsg{action: action}
	}
}

func (m Model) toggleFavoriteCmd(bookID string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		return dispatchedMsg{action: s.ToggleFavorite(ctx, bookID)}
	}
}

func (m Model) openDetail(bookID string) (tea.Model, tea.Cmd) {
	m.mode = viewDetail
	m.selectedID = bookID

	cmds := []tea.Cmd{
		m.dispatch(store.GetBook(bookID)),
		m.dispatch(store.GetBookReviews(bookID)),
	}
	if m.state.Auth.IsAuthenticated {
		cmds = append(cmds,
			m.dispatch(store.CheckFavorite(bookID)),
			m.dispatch(store.CheckReview(bookID)),
		)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		m.unsub()
		return m, tea.Quit

	case "esc", "b":
		m.mode = viewBrowse
		m.selectedID = ""

	case "f":
		if m.selectedID != "" {
			return m, m.toggleFavoriteCmd(m.selectedID)
		}

	case "w":
		if m.state.Auth.IsAuthenticated && m.selectedID != "" {
			return m.openReviewForm()
		}

	case "x":
		if check := m.state.ReviewCheck; check.HasReviewed && check.Review != nil {
			reviewID := check.Review.ID
			bookID := m.selectedID
			return m, tea.Sequence(
				m.dispatch(store.DeleteReview(reviewID)),
				m.dispatch(store.GetBookReviews(bookID)),
				m.dispatch(store.CheckReview(bookID)),
			)
		}

	case "r":
		if m.selectedID != "" {
			return m.openDetail(m.selectedID)
		}
	}

	return m, nil
}

func (m Model) openAuthForm(mode viewMode) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.formErr = ""
	m.focusIndex = 0

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 32

	if mode == viewRegister {
		name := textinput.New()
		name.Placeholder = "name"
		name.CharLimit = 120
		name.Width = 32
		m.inputs = []textinput.Model{name, email, password}
	} else {
		m.inputs = []textinput.Model{email, password}
	}
	m.inputs[0].Focus()
	return m, textinput.Blink
}

func (m Model) updateAuthForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = viewBrowse
		m.inputs = nil
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focusIndex--
		} else {
			m.focusIndex++
		}
		if m.focusIndex < 0 {
			m.focusIndex = len(m.inputs) - 1
		}
		if m.focusIndex >= len(m.inputs) {
			m.focusIndex = 0
		}
		for i := range m.inputs {
			if i == m.focusIndex {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, textinput.Blink

	case "enter":
		return m.submitAuthForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) submitAuthForm() (tea.Model, tea.Cmd) {
	if m.mode == viewRegister {
		name := strings.TrimSpace(m.inputs[0].Value())
		email := strings.TrimSpace(m.inputs[1].Value())
		password := m.inputs[2].Value()
		if err := validate.Registration(name, email, password); err != nil {
			m.formErr = firstMessage(err)
			return m, nil
		}
		m.mode = viewBrowse
		m.inputs = nil
		m.formErr = ""
		return m, m.dispatch(store.Register(name, email, password))
	}

	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	if err := validate.Login(email, password); err != nil {
		m.formErr = firstMessage(err)
		return m, nil
	}
	m.mode = viewBrowse
	m.inputs = nil
	m.formErr = ""
	return m, m.dispatch(store.Login(email, password))
}

func (m Model) openReviewForm() (tea.Model, tea.Cmd) {
	m.mode = viewReview
	m.formErr = ""
	m.rating = 0

	text := textinput.New()
	text.Placeholder = "your review"
	text.CharLimit = validate.MaxReviewChars
	text.Width = 60
	text.Focus()
	m.inputs = []textinput.Model{text}

	// Editing an existing review starts from its current content.
	if check := m.state.ReviewCheck; check.HasReviewed && check.Review != nil {
		m.rating = check.Review.Rating
		m.inputs[0].SetValue(check.Review.Text)
	}
	return m, textinput.Blink
}

func (m Model) updateReviewForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = viewDetail
		m.inputs = nil
		return m, nil

	case "1", "2", "3", "4", "5":
		m.rating = int(msg.String()[0] - '0')
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.inputs[0].Value())
		if err := validate.Review(m.rating, text); err != nil {
			m.formErr = firstMessage(err)
			return m, nil
		}

		bookID := m.selectedID
		var submit tea.Cmd
		if check := m.state.ReviewCheck; check.HasReviewed && check.Review != nil {
			submit = m.dispatch(store.UpdateReview(check.Review.ID, m.rating, text))
		} else {
			submit = m.dispatch(store.CreateReview(bookID, m.rating, text))
		}

		m.mode = viewDetail
		m.inputs = nil
		m.formErr = ""
		return m, tea.Sequence(
			submit,
			m.dispatch(store.GetBookReviews(bookID)),
			m.dispatch(store.CheckReview(bookID)),
			m.dispatch(store.GetBook(bookID)),
		)
	}

	var cmd tea.Cmd
	m.inputs[0], cmd = m.inputs[0].Update(msg)
	return m, cmd
}

func (m Model) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		m.unsub()
		return m, tea.Quit

	case "esc", "b":
		m.mode = viewBrowse
		m.cursor = 0

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}

	case "enter":
		if id := m.listBookID(m.cursor); id != "" {
			return m.openDetail(id)
		}

	case "f":
		if m.mode == viewFavorites {
			if id := m.listBookID(m.cursor); id != "" {
				return m, m.toggleFavoriteCmd(id)
			}
		}

	case "r":
		if m.mode == viewRecommendations {
			return m, m.dispatch(store.GetRecommendations())
		}
		return m, m.dispatch(store.GetFavorites())
	}

	return m, nil
}

// visibleBooks returns search results when a search is live, otherwise
// the catalogue page.
func (m Model) visibleBooks() []api.Book {
	if m.state.Search.Query != "" {
		return m.state.Search.Results
	}
	return m.state.Books.Books
}

func (m Model) listLen() int {
	switch m.mode {
	case viewRecommendations:
		return len(m.state.Recommendations.Items)
	case viewFavorites:
		return len(m.state.Favorites.Items)
	default:
		return len(m.visibleBooks())
	}
}

func (m Model) listBookID(i int) string {
	switch m.mode {
	case viewRecommendations:
		items := m.state.Recommendations.Items
		if i < len(items) && items[i].Book != nil {
			return items[i].Book.ID
		}
		if i < len(items) {
			return items[i].ID
		}
	case viewFavorites:
		items := m.state.Favorites.Items
		if i < len(items) {
			return items[i].BookID
		}
	}
	return ""
}

func (m *Model) clampCursor() {
	if n := m.listLen(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func firstMessage(err error) string {
	var fe validate.FieldErrors
	if errors.As(err, &fe) && len(fe) > 0 {
		return fe[0].Message
	}
	return err.Error()
}

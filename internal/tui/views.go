package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/store"
	"github.com/fyrsmithlabs/shelfstream/internal/validate"
)

// Lipgloss styles (k9s-inspired color scheme)
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("45")).
			Bold(true)

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	healthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case viewDetail:
		body = m.renderDetail()
	case viewLogin, viewRegister:
		body = m.renderAuthForm()
	case viewReview:
		body = m.renderReviewForm()
	case viewRecommendations:
		body = m.renderRecommendations()
	case viewFavorites:
		body = m.renderFavorites()
	default:
		body = m.renderBrowse()
	}

	return containerStyle.Render(m.renderHeader() + "\n" + body)
}

func (m Model) renderHeader() string {
	header := headerStyle.Render(" ShelfStream ")

	account := dimStyle.Render("signed out")
	if m.state.Auth.IsAuthenticated && m.state.Auth.User != nil {
		account = healthyStyle.Render("● ") + valueStyle.Render(m.state.Auth.User.Name)
	}
	return header + "  " + account
}

func (m Model) renderBrowse() string {
	var content string

	// Search bar.
	content += "\n" + labelStyle.Render("Search: ")
	if m.searching {
		content += m.search.View()
	} else if q := m.state.Search.Query; q != "" {
		content += valueStyle.Render(q) + dimStyle.Render("  (/ then esc clears)")
	} else {
		content += dimStyle.Render("press / to search")
	}
	content += "\n"

	if m.searching && runeCount(m.search.Value()) > 0 && runeCount(m.search.Value()) < m.minChars {
		content += dimStyle.Render(fmt.Sprintf("keep typing, %d characters minimum", m.minChars)) + "\n"
	}

	searchActive := m.state.Search.Query != ""
	slice := m.state.Books.Status
	if searchActive {
		slice = m.state.Search.Status
	}

	if banner := m.renderBanner(slice); banner != "" {
		return content + banner + m.renderBrowseFooter()
	}

	books := m.visibleBooks()
	title := "┃ Catalogue"
	if searchActive {
		title = fmt.Sprintf("┃ Results for %q", m.state.Search.Query)
	}
	content += sectionStyle.Render(title) + "\n"

	if slice.Loading && len(books) == 0 {
		content += "\n  " + m.spin.View() + dimStyle.Render(" loading…") + "\n"
	} else if len(books) == 0 {
		content += "\n  " + dimStyle.Render("nothing here") + "\n"
	}

	for i, b := range books {
		content += m.renderBookLine(i, b) + "\n"
	}

	if !searchActive {
		p := m.state.Books.Pagination
		if p.TotalPages > 1 {
			content += "\n" + dimStyle.Render(fmt.Sprintf("page %d/%d  (%d books)", p.CurrentPage, p.TotalPages, p.TotalItems)) + "\n"
		}
	}

	return content + m.renderBrowseFooter()
}

func (m Model) renderBookLine(i int, b api.Book) string {
	marker := "  "
	if m.state.Favorites.IsFavorite(b.ID) {
		marker = favoriteStyle.Render("♥ ")
	}

	line := fmt.Sprintf("%s%s %s %s",
		marker,
		valueStyle.Render(b.Title),
		dimStyle.Render("by "+b.Author),
		starStyle.Render(averageStars(b.AverageRating)),
	)
	if b.TotalReviews > 0 {
		line += dimStyle.Render(fmt.Sprintf(" (%d)", b.TotalReviews))
	}
	if toggleErr := m.state.Favorites.ToggleError(b.ID); toggleErr != "" {
		line += "  " + errorStyle.Render("✗ "+toggleErr)
	}

	if i == m.cursor {
		return selectedStyle.Render("▶") + line
	}
	return " " + line
}

func (m Model) renderBrowseFooter() string {
	keys := [][2]string{
		{"↑/↓", "move"},
		{"enter", "open"},
		{"←/→", "page"},
		{"/", "search"},
		{"f", "favorite"},
		{"a", "picks"},
		{"v", "favorites"},
	}
	if m.state.Auth.IsAuthenticated {
		keys = append(keys, [2]string{"o", "sign out"})
	} else {
		keys = append(keys, [2]string{"s", "sign in"}, [2]string{"u", "sign up"})
	}
	keys = append(keys, [2]string{"q", "quit"})
	return "\n" + renderFooter(keys)
}

func (m Model) renderDetail() string {
	var content string

	if banner := m.renderBanner(m.state.Book.Status); banner != "" {
		return content + banner + "\n" + renderFooter([][2]string{{"esc", "back"}, {"r", "retry"}, {"q", "quit"}})
	}

	book := m.state.Book.Book
	if book == nil {
		content += "\n  " + m.spin.View() + dimStyle.Render(" loading…") + "\n"
		return content + "\n" + renderFooter([][2]string{{"esc", "back"}, {"q", "quit"}})
	}

	content += "\n" + sectionStyle.Render("┃ "+book.Title) + "\n"
	content += labelStyle.Render("  Author: ") + valueStyle.Render(book.Author) + "\n"
	if len(book.Genres) > 0 {
		content += labelStyle.Render("  Genres: ") + valueStyle.Render(strings.Join(book.Genres, ", ")) + "\n"
	}
	if book.PublishedYear != 0 {
		content += labelStyle.Render("  Published: ") + valueStyle.Render(fmt.Sprintf("%d", book.PublishedYear)) + "\n"
	}
	content += labelStyle.Render("  Rating: ") +
		starStyle.Render(averageStars(book.AverageRating)) +
		dimStyle.Render(fmt.Sprintf(" %.1f from %d reviews", book.AverageRating, book.TotalReviews)) + "\n"

	if m.state.Favorites.IsFavorite(book.ID) {
		content += "  " + favoriteStyle.Render("♥ in your favorites") + "\n"
	}
	if toggleErr := m.state.Favorites.ToggleError(book.ID); toggleErr != "" {
		content += "  " + errorStyle.Render("✗ "+toggleErr) + "\n"
	}

	if book.Description != "" {
		content += "\n" + dimStyle.Render("  "+book.Description) + "\n"
	}

	content += "\n" + sectionStyle.Render("┃ Reviews") + "\n"
	switch {
	case m.state.BookReviews.Loading:
		content += "  " + m.spin.View() + dimStyle.Render(" loading…") + "\n"
	case m.state.BookReviews.Error:
		content += "  " + errorStyle.Render("✗ "+m.state.BookReviews.ErrorDetails.Message) + "\n"
	case len(m.state.BookReviews.Reviews) == 0:
		content += "  " + dimStyle.Render("no reviews yet") + "\n"
	default:
		for _, r := range m.state.BookReviews.Reviews {
			name := "someone"
			if r.User != nil && r.User.Name != "" {
				name = r.User.Name
			}
			content += fmt.Sprintf("  %s %s %s\n",
				starStyle.Render(stars(r.Rating)),
				valueStyle.Render(name),
				dimStyle.Render(r.Text))
		}
	}

	keys := [][2]string{{"esc", "back"}, {"f", "favorite"}}
	if m.state.Auth.IsAuthenticated {
		if m.state.ReviewCheck.HasReviewed {
			keys = append(keys, [2]string{"w", "edit review"}, [2]string{"x", "delete review"})
		} else {
			keys = append(keys, [2]string{"w", "review"})
		}
	}
	keys = append(keys, [2]string{"q", "quit"})
	return content + "\n" + renderFooter(keys)
}

func (m Model) renderAuthForm() string {
	var content string

	title := "┃ Sign in"
	labels := []string{"Email", "Password"}
	if m.mode == viewRegister {
		title = "┃ Create account"
		labels = []string{"Name", "Email", "Password"}
	}
	content += "\n" + sectionStyle.Render(title) + "\n"

	for i, in := range m.inputs {
		content += labelStyle.Render(fmt.Sprintf("  %-9s", labels[i])) + in.View() + "\n"
	}

	if m.formErr != "" {
		content += "\n  " + errorStyle.Render("✗ "+m.formErr) + "\n"
	}
	if m.state.Auth.Error {
		content += "\n  " + errorStyle.Render("✗ "+m.state.Auth.ErrorDetails.Message) + "\n"
	}
	if m.state.Auth.Loading {
		content += "\n  " + m.spin.View() + dimStyle.Render(" signing in…") + "\n"
	}

	return content + "\n" + renderFooter([][2]string{
		{"tab", "next field"},
		{"enter", "submit"},
		{"esc", "cancel"},
	})
}

func (m Model) renderReviewForm() string {
	var content string

	title := "┃ Write a review"
	if m.state.ReviewCheck.HasReviewed {
		title = "┃ Edit your review"
	}
	content += "\n" + sectionStyle.Render(title) + "\n"

	rendered := stars(m.rating)
	if m.rating == 0 {
		rendered = "☆☆☆☆☆"
	}
	content += labelStyle.Render("  Rating: ") + starStyle.Render(rendered) +
		dimStyle.Render("  press 1-5") + "\n"

	content += labelStyle.Render("  Review: ") + m.inputs[0].View() + "\n"
	remaining := validate.MaxReviewChars - runeCount(m.inputs[0].Value())
	content += dimStyle.Render(fmt.Sprintf("  %d characters left", remaining)) + "\n"

	if m.formErr != "" {
		content += "\n  " + errorStyle.Render("✗ "+m.formErr) + "\n"
	}
	if m.state.ReviewMutation.Error {
		content += "\n  " + errorStyle.Render("✗ "+m.state.ReviewMutation.ErrorDetails.Message) + "\n"
	}

	return content + "\n" + renderFooter([][2]string{
		{"1-5", "rate"},
		{"enter", "submit"},
		{"esc", "cancel"},
	})
}

func (m Model) renderRecommendations() string {
	var content string
	content += "\n" + sectionStyle.Render("┃ Picks for you") + "\n"

	slice := m.state.Recommendations.Status
	if banner := m.renderBanner(slice); banner != "" {
		return content + banner + "\n" + renderFooter([][2]string{{"esc", "back"}, {"r", "retry"}, {"q", "quit"}})
	}

	if m.state.Recommendations.Source == "fallback" {
		note := m.state.Recommendations.Message
		if note == "" {
			note = "showing popular books"
		}
		content += "  " + dimStyle.Render("⚠ "+note) + "\n"
	}

	items := m.state.Recommendations.Items
	if slice.Loading && len(items) == 0 {
		content += "\n  " + m.spin.View() + dimStyle.Render(" thinking…") + "\n"
	} else if len(items) == 0 {
		content += "\n  " + dimStyle.Render("nothing to suggest yet") + "\n"
	}

	for i, rec := range items {
		title, author := rec.Title, rec.Author
		if rec.Book != nil {
			title, author = rec.Book.Title, rec.Book.Author
		}
		line := fmt.Sprintf("  %s %s\n     %s %s",
			valueStyle.Render(title),
			dimStyle.Render("by "+author),
			dimStyle.Render(rec.Reason),
			dimStyle.Render(fmt.Sprintf("(%.0f%%)", rec.Confidence*100)))
		if i == m.cursor {
			line = selectedStyle.Render("▶") + line[1:]
		}
		content += line + "\n"
	}

	return content + "\n" + renderFooter([][2]string{
		{"enter", "open"}, {"r", "refresh"}, {"esc", "back"}, {"q", "quit"},
	})
}

func (m Model) renderFavorites() string {
	var content string
	content += "\n" + sectionStyle.Render("┃ Your favorites") + "\n"

	if banner := m.renderBanner(m.state.Favorites.Status); banner != "" {
		return content + banner + "\n" + renderFooter([][2]string{{"esc", "back"}, {"r", "retry"}, {"q", "quit"}})
	}

	items := m.state.Favorites.Items
	if m.state.Favorites.Loading && len(items) == 0 {
		content += "\n  " + m.spin.View() + dimStyle.Render(" loading…") + "\n"
	} else if len(items) == 0 {
		content += "\n  " + dimStyle.Render("no favorites yet — press f on any book") + "\n"
	}

	for i, f := range items {
		title, author := f.BookID, ""
		if f.Book != nil {
			title, author = f.Book.Title, "by "+f.Book.Author
		}
		line := fmt.Sprintf("  %s%s %s",
			favoriteStyle.Render("♥ "),
			valueStyle.Render(title),
			dimStyle.Render(author))
		if i == m.cursor {
			line = selectedStyle.Render("▶") + line[1:]
		}
		content += line + "\n"
	}

	return content + "\n" + renderFooter([][2]string{
		{"enter", "open"}, {"f", "remove"}, {"esc", "back"}, {"q", "quit"},
	})
}

// renderBanner renders the slice's failure state, empty when healthy.
func (m Model) renderBanner(st store.Status) string {
	if !st.Error {
		return ""
	}
	msg := st.ErrorDetails.Message
	if msg == "" {
		msg = "something went wrong"
	}
	banner := "\n" + errorStyle.Render("✗ "+msg) + "\n"
	if st.ErrorDetails.Status != 0 {
		banner += dimStyle.Render(fmt.Sprintf("  HTTP %d %s", st.ErrorDetails.Status, st.ErrorDetails.Code)) + "\n"
	}
	return banner
}

func renderFooter(keys [][2]string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = footerKeyStyle.Render("["+k[0]+"]") + footerStyle.Render(" "+k[1])
	}
	return strings.Join(parts, "  ")
}

// stars renders a filled/empty five star strip.
func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// averageStars rounds a fractional rating to the nearest whole star.
func averageStars(avg float64) string {
	return stars(int(avg + 0.5))
}

func runeCount(s string) int {
	return len([]rune(s))
}

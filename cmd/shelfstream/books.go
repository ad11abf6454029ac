package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/store"
)

var (
	booksPage  int
	booksLimit int
	booksGenre string
	booksSort  string
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Browse the catalogue",
	Long: `List, search and inspect catalogue books.

Examples:
  shelfstream books
  shelfstream books --page 2 --genre "Science Fiction"
  shelfstream books search dune
  shelfstream books show 66f2a81c9d3e
  shelfstream books genres`,
	RunE: runBooksList,
}

var booksSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalogue by title or author",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBooksSearch,
}

var booksShowCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show one book with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runBooksShow,
}

var booksGenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List available genres",
	RunE:  runBooksGenres,
}

func init() {
	booksCmd.PersistentFlags().IntVar(&booksPage, "page", 1, "page number")
	booksCmd.PersistentFlags().IntVar(&booksLimit, "limit", 0, "page size (default from config)")
	booksCmd.Flags().StringVar(&booksGenre, "genre", "", "filter by genre")
	booksCmd.Flags().StringVar(&booksSort, "sort", "", "sort order (title, author, rating, newest)")
	booksCmd.AddCommand(booksSearchCmd)
	booksCmd.AddCommand(booksShowCmd)
	booksCmd.AddCommand(booksGenresCmd)
}

func runBooksList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	action := a.store.Dispatch(cmd.Context(), store.GetBooks(store.BooksQuery{
		Page:  api.PageByNumber(booksPage, a.pageSize()),
		Genre: booksGenre,
		Sort:  booksSort,
	}, false))
	if err := failure(action); err != nil {
		return err
	}

	state := a.store.State()
	if jsonOutput {
		return printJSON(state.Books.Books)
	}
	printBookTable(state.Books.Books)
	if p := state.Books.Pagination; p.TotalPages > 1 {
		fmt.Printf("\npage %d/%d (%d books)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
	}
	return nil
}

func runBooksSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	query := strings.Join(args, " ")
	action, issued := a.store.Search(cmd.Context(), query, api.PageByNumber(booksPage, a.pageSize()))
	if !issued {
		return fmt.Errorf("query too short: %d characters minimum", a.cfg.Search.MinChars)
	}
	if err := failure(action); err != nil {
		return err
	}

	state := a.store.State()
	if jsonOutput {
		return printJSON(state.Search.Results)
	}
	if len(state.Search.Results) == 0 {
		fmt.Printf("No books match %q.\n", query)
		return nil
	}
	printBookTable(state.Search.Results)
	return nil
}

func runBooksShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	bookID := args[0]
	if err := failure(a.store.Dispatch(cmd.Context(), store.GetBook(bookID))); err != nil {
		return err
	}
	// Review listing failures should not hide the book itself.
	_ = a.store.Dispatch(cmd.Context(), store.GetBookReviews(bookID))

	state := a.store.State()
	book := state.Book.Book
	if book == nil {
		return fmt.Errorf("book %s not found", bookID)
	}

	if jsonOutput {
		return printJSON(struct {
			Book    *api.Book    `json:"book"`
			Reviews []api.Review `json:"reviews"`
		}{book, state.BookReviews.Reviews})
	}

	fmt.Printf("%s\nby %s\n", book.Title, book.Author)
	if len(book.Genres) > 0 {
		fmt.Printf("Genres:    %s\n", strings.Join(book.Genres, ", "))
	}
	if book.PublishedYear != 0 {
		fmt.Printf("Published: %d\n", book.PublishedYear)
	}
	fmt.Printf("Rating:    %.1f/5 (%d reviews)\n", book.AverageRating, book.TotalReviews)
	if book.Description != "" {
		fmt.Printf("\n%s\n", book.Description)
	}

	if len(state.BookReviews.Reviews) > 0 {
		fmt.Println("\nReviews:")
		for _, r := range state.BookReviews.Reviews {
			name := "someone"
			if r.User != nil && r.User.Name != "" {
				name = r.User.Name
			}
			fmt.Printf("  %s  %s — %s (%s)\n", starBar(r.Rating), r.Text, name, shortDate(r.CreatedAt))
		}
	}
	return nil
}

func runBooksGenres(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := failure(a.store.Dispatch(cmd.Context(), store.GetGenres())); err != nil {
		return err
	}

	genres := a.store.State().Genres.Genres
	if jsonOutput {
		return printJSON(genres)
	}
	for _, g := range genres {
		fmt.Println(g)
	}
	return nil
}

func (a *app) pageSize() int {
	if booksLimit > 0 {
		return booksLimit
	}
	return a.cfg.API.PageSize
}

func printBookTable(books []api.Book) {
	for _, b := range books {
		fmt.Printf("%-24s  %s  %-28s  %.1f/5 (%d)\n",
			b.ID, starBar(int(b.AverageRating+0.5)), truncate(b.Title+" — "+b.Author, 28), b.AverageRating, b.TotalReviews)
	}
}

func starBar(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/shelfstream/internal/store"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage your favorite books",
	Long: `List and toggle favorites.

Examples:
  shelfstream favorites
  shelfstream favorites add 66f2a81c9d3e
  shelfstream favorites rm 66f2a81c9d3e
  shelfstream favorites check 66f2a81c9d3e`,
	RunE: runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <book-id>",
	Short: "Add a book to your favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRmCmd = &cobra.Command{
	Use:   "rm <book-id>",
	Short: "Remove a book from your favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRm,
}

var favoritesCheckCmd = &cobra.Command{
	Use:   "check <book-id>",
	Short: "Check whether a book is in your favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesCheck,
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRmCmd)
	favoritesCmd.AddCommand(favoritesCheckCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := failure(a.store.Dispatch(cmd.Context(), store.GetFavorites())); err != nil {
		return err
	}

	items := a.store.State().Favorites.Items
	if jsonOutput {
		return printJSON(items)
	}
	if len(items) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}
	for _, f := range items {
		if f.Book != nil {
			fmt.Printf("%-24s  %s — %s\n", f.BookID, f.Book.Title, f.Book.Author)
		} else {
			fmt.Println(f.BookID)
		}
	}
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	return setFavorite(cmd, args[0], true)
}

func runFavoritesRm(cmd *cobra.Command, args []string) error {
	return setFavorite(cmd, args[0], false)
}

// setFavorite drives the toggle to the desired membership. The store's
// toggle flips from current state, so already-there is a no-op.
func setFavorite(cmd *cobra.Command, bookID string, want bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := failure(a.store.Dispatch(cmd.Context(), store.CheckFavorite(bookID))); err != nil {
		return err
	}

	if a.store.State().Favorites.IsFavorite(bookID) == want {
		if !jsonOutput {
			fmt.Println("Nothing to do.")
		}
		return nil
	}

	action := a.store.ToggleFavorite(cmd.Context(), bookID)
	if err := failure(action); err != nil {
		return err
	}
	if !jsonOutput {
		if want {
			fmt.Println("Added to favorites.")
		} else {
			fmt.Println("Removed from favorites.")
		}
	}
	return nil
}

func runFavoritesCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	bookID := args[0]
	if err := failure(a.store.Dispatch(cmd.Context(), store.CheckFavorite(bookID))); err != nil {
		return err
	}

	isFavorite := a.store.State().Favorites.IsFavorite(bookID)
	if jsonOutput {
		return printJSON(map[string]bool{"isFavorite": isFavorite})
	}
	if isFavorite {
		fmt.Println("In your favorites.")
	} else {
		fmt.Println("Not in your favorites.")
	}
	return nil
}

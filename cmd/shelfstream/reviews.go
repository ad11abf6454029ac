package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/shelfstream/internal/store"
	"github.com/fyrsmithlabs/shelfstream/internal/validate"
)

var (
	reviewRating int
	reviewText   string
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews <book-id>",
	Short: "Read and write star reviews",
	Long: `List a book's reviews, or manage your own.

Examples:
  shelfstream reviews 66f2a81c9d3e
  shelfstream reviews mine
  shelfstream reviews add 66f2a81c9d3e --rating 5 --text "Couldn't put it down"
  shelfstream reviews edit 0a1b2c3d4e5f --rating 4 --text "Still great on reread"
  shelfstream reviews rm 0a1b2c3d4e5f`,
	Args: cobra.ExactArgs(1),
	RunE: runReviewsList,
}

var reviewsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your reviews",
	RunE:  runReviewsMine,
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add <book-id>",
	Short: "Review a book (one review per book)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsAdd,
}

var reviewsEditCmd = &cobra.Command{
	Use:   "edit <review-id>",
	Short: "Edit one of your reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsEdit,
}

var reviewsRmCmd = &cobra.Command{
	Use:   "rm <review-id>",
	Short: "Delete one of your reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsRm,
}

func init() {
	for _, c := range []*cobra.Command{reviewsAddCmd, reviewsEditCmd} {
		c.Flags().IntVar(&reviewRating, "rating", 0, "stars, 1-5")
		c.Flags().StringVar(&reviewText, "text", "", fmt.Sprintf("review text, up to %d characters", validate.MaxReviewChars))
	}
	reviewsCmd.AddCommand(reviewsMineCmd)
	reviewsCmd.AddCommand(reviewsAddCmd)
	reviewsCmd.AddCommand(reviewsEditCmd)
	reviewsCmd.AddCommand(reviewsRmCmd)
}

func runReviewsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := failure(a.store.Dispatch(cmd.Context(), store.GetBookReviews(args[0]))); err != nil {
		return err
	}

	reviews := a.store.State().BookReviews.Reviews
	if jsonOutput {
		return printJSON(reviews)
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews yet.")
		return nil
	}
	for _, r := range reviews {
		name := "someone"
		if r.User != nil && r.User.Name != "" {
			name = r.User.Name
		}
		fmt.Printf("%s  %s — %s (%s)\n", starBar(r.Rating), r.Text, name, shortDate(r.CreatedAt))
	}
	return nil
}

func runReviewsMine(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	state := a.store.State()
	if !state.Auth.IsAuthenticated || state.Auth.User == nil {
		return fmt.Errorf("not signed in")
	}

	if err := failure(a.store.Dispatch(cmd.Context(), store.GetUserReviews(state.Auth.User.ID))); err != nil {
		return err
	}

	reviews := a.store.State().UserReviews.Reviews
	if jsonOutput {
		return printJSON(reviews)
	}
	if len(reviews) == 0 {
		fmt.Println("You have not reviewed anything yet.")
		return nil
	}
	for _, r := range reviews {
		title := r.BookID
		if r.Book != nil {
			title = r.Book.Title
		}
		fmt.Printf("%-24s  %s  %s  %s\n", r.ID, starBar(r.Rating), truncate(title, 28), r.Text)
	}
	return nil
}

func runReviewsAdd(cmd *cobra.Command, args []string) error {
	if err := validate.Review(reviewRating, reviewText); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	action := a.store.Dispatch(cmd.Context(), store.CreateReview(args[0], reviewRating, reviewText))
	if err := failure(action); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(a.store.State().ReviewMutation.LastSaved)
	}
	fmt.Println("Review saved.")
	return nil
}

func runReviewsEdit(cmd *cobra.Command, args []string) error {
	if err := validate.Review(reviewRating, reviewText); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	action := a.store.Dispatch(cmd.Context(), store.UpdateReview(args[0], reviewRating, reviewText))
	if err := failure(action); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(a.store.State().ReviewMutation.LastSaved)
	}
	fmt.Println("Review updated.")
	return nil
}

func runReviewsRm(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := failure(a.store.Dispatch(cmd.Context(), store.DeleteReview(args[0]))); err != nil {
		return err
	}
	if !jsonOutput {
		fmt.Println("Review deleted.")
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/shelfstream/internal/store"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show AI book recommendations",
	Long: `Show personalized book recommendations. When the AI backend is
unavailable, top-rated catalogue books stand in.`,
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := failure(a.store.Dispatch(cmd.Context(), store.GetRecommendations())); err != nil {
		return err
	}

	recs := a.store.State().Recommendations
	if jsonOutput {
		return printJSON(recs.Items)
	}

	if recs.Source == "fallback" && recs.Message != "" {
		fmt.Printf("Note: %s\n\n", recs.Message)
	}
	if len(recs.Items) == 0 {
		fmt.Println("Nothing to suggest yet. Review or favorite a few books first.")
		return nil
	}
	for _, rec := range recs.Items {
		title, author := rec.Title, rec.Author
		if rec.Book != nil {
			title, author = rec.Book.Title, rec.Book.Author
		}
		fmt.Printf("%s — %s\n    %s (%.0f%% match)\n", title, author, rec.Reason, rec.Confidence*100)
	}
	return nil
}

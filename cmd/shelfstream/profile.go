package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/shelfstream/internal/store"
	"github.com/fyrsmithlabs/shelfstream/internal/validate"
)

var (
	profileName  string
	profileEmail string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the account profile",
	Long: `Update the signed-in account's name and email. Unset flags keep
the current value.

Examples:
  shelfstream profile --name "Ada L."
  shelfstream profile --email ada@new.example.com`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "account email")
}

func runProfile(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	state := a.store.State()
	if !state.Auth.IsAuthenticated || state.Auth.User == nil {
		return fmt.Errorf("not signed in")
	}

	name, email := profileName, profileEmail
	if name == "" {
		name = state.Auth.User.Name
	}
	if email == "" {
		email = state.Auth.User.Email
	}
	if err := validate.Profile(name, email); err != nil {
		return err
	}

	action := a.store.Dispatch(cmd.Context(), store.UpdateProfile(name, email))
	if err := failure(action); err != nil {
		return err
	}

	user := a.store.State().Profile.User
	if jsonOutput {
		return printJSON(user)
	}
	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

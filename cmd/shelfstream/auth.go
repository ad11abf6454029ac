package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fyrsmithlabs/shelfstream/internal/store"
	"github.com/fyrsmithlabs/shelfstream/internal/validate"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Sign in with email and password. The session token is stored in
~/.config/shelfstream/session.json and reused by later commands.

Examples:
  # Prompt for credentials
  shelfstream login

  # Non-interactive
  shelfstream login --email ada@example.com --password secret1`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, password, err := credentials()
	if err != nil {
		return err
	}
	if err := validate.Login(email, password); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	action := a.store.Dispatch(cmd.Context(), store.Login(email, password))
	if err := failure(action); err != nil {
		return err
	}

	state := a.store.State()
	if jsonOutput {
		return printJSON(state.Auth.User)
	}
	fmt.Printf("Signed in as %s <%s>\n", state.Auth.User.Name, state.Auth.User.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(authName)
	if name == "" {
		var err error
		if name, err = prompt("Name: "); err != nil {
			return err
		}
	}
	email, password, err := credentials()
	if err != nil {
		return err
	}
	if err := validate.Registration(name, email, password); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	action := a.store.Dispatch(cmd.Context(), store.Register(name, email, password))
	if err := failure(action); err != nil {
		return err
	}

	state := a.store.State()
	if jsonOutput {
		return printJSON(state.Auth.User)
	}
	fmt.Printf("Welcome, %s. You are signed in.\n", state.Auth.User.Name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.store.Logout()
	if !jsonOutput {
		fmt.Println("Signed out.")
	}
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	state := a.store.State()
	if !state.Auth.IsAuthenticated || state.Auth.User == nil {
		return fmt.Errorf("not signed in")
	}
	if jsonOutput {
		return printJSON(state.Auth.User)
	}
	fmt.Printf("%s <%s>\n", state.Auth.User.Name, state.Auth.User.Email)
	return nil
}

// credentials resolves email and password from flags, prompting for
// anything missing.
func credentials() (string, string, error) {
	email := strings.TrimSpace(authEmail)
	if email == "" {
		var err error
		if email, err = prompt("Email: "); err != nil {
			return "", "", err
		}
	}

	password := authPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}
	return email, password, nil
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

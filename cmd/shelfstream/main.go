// Package main implements the shelfstream CLI, a terminal client for
// the shelfstream book catalogue server.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/cache"
	"github.com/fyrsmithlabs/shelfstream/internal/config"
	"github.com/fyrsmithlabs/shelfstream/internal/logging"
	"github.com/fyrsmithlabs/shelfstream/internal/session"
	"github.com/fyrsmithlabs/shelfstream/internal/store"
)

var (
	serverURL  string
	configPath string
	jsonOutput bool
	verbose    bool

	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelfstream",
	Short: "Browse and review the shelfstream book catalogue",
	Long: `shelfstream is a terminal client for the shelfstream catalogue server.
It browses and searches books, manages star reviews and favorites, and
shows AI book recommendations. Run it with no arguments for the
interactive browser, or use the subcommands for scripting.`,
	Version: version,
	RunE:    runBrowse,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (default http://localhost:5001)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/shelfstream/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(healthCmd)
}

// app holds the wired client stack for one command invocation.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	store  *store.Store
}

// newApp loads configuration and wires client, session and store.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.API.BaseURL = serverURL
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	sess, err := session.NewStore(cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	// The client asks the container for the current token, and a 401 on
	// a session-scoped endpoint logs the container out. Both hooks are
	// bound after the store exists.
	var st *store.Store
	client := api.NewClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout.Duration(),
		Tokens: api.TokenFunc(func() string {
			if st == nil {
				return ""
			}
			return st.State().Auth.Token
		}),
		OnSessionInvalid: func() {
			if st != nil {
				st.Logout()
			}
		},
		Logger: logger,
	})

	st = store.New(store.Options{
		Client:         client,
		Session:        sess,
		Cache:          cache.New(cfg.Cache.TTL.Duration(), cfg.Cache.MaxEntries),
		MinSearchChars: cfg.Search.MinChars,
		Logger:         logger,
	})

	return &app{cfg: cfg, logger: logger, client: client, store: st}, nil
}

func (a *app) close() {
	_ = logging.Sync(a.logger)
}

// failure converts a failed terminal action into a command error.
func failure(action store.Action) error {
	if action.Err == nil {
		return nil
	}
	if action.Err.Message != "" {
		return fmt.Errorf("%s", action.Err.Message)
	}
	return fmt.Errorf("request failed (%s)", action.Err.Code)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// shortDate trims a server timestamp to its date part.
func shortDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02")
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
	"github.com/fyrsmithlabs/shelfstream/internal/session"
	"github.com/fyrsmithlabs/shelfstream/internal/store"
	"github.com/fyrsmithlabs/shelfstream/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive catalogue browser",
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Mirror session changes made by other shelfstream processes into
	// the running container.
	sess, err := session.NewStore(a.cfg.Session.Path)
	if err == nil {
		if watcher, werr := session.NewWatcher(sess); werr == nil {
			if werr = watcher.Start(ctx); werr == nil {
				defer watcher.Stop()
				go mirrorSession(ctx, watcher, a.store)
			}
		}
	}

	model := tui.NewModel(tui.Options{
		Store:          a.store,
		PageSize:       a.cfg.API.PageSize,
		MinSearchChars: a.cfg.Search.MinChars,
		SearchDebounce: a.cfg.Search.Debounce.Duration(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

// mirrorSession applies external session changes to the container.
func mirrorSession(ctx context.Context, w *session.Watcher, st *store.Store) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if ev.Session == nil {
				st.Apply(store.Action{Type: store.Logout})
				continue
			}
			st.Apply(store.Action{
				Type: store.SetAuthData,
				Auth: &api.AuthData{User: ev.Session.User, Token: ev.Session.Token},
			})
		}
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bharat3214/Genei/internal/client/client"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.currentUser(); u != nil {
		s = u.Username + " "
	}
	a.mu.Lock()
	mode := a.Mode
	a.mu.Unlock()
	if mode != "" {
		s += string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, resumes a saved session when there is one, starts
// the connectivity watcher and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the Genei CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.resume(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) resume(ctx context.Context) {
	u, err := a.authService.Resume(ctx)
	switch {
	case err == nil:
		a.setUser(u)
		a.setMode(ctx, ModeOnline)
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.Username)
	case errors.Is(err, client.ErrNoSavedSession):
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ctx, ModeOffline)
		if name, _ := a.authService.SavedUsername(ctx); name != "" {
			fmt.Fprintf(a.out, "Server unavailable; session for %s will resume on next login\n", name)
		}
	default:
		a.logger.Warn(ctx, "failed to resume session", "error", err)
	}
}

package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if !a.session.IsAuthenticated() {
		return "(guest)"
	}
	s := a.session.DisplayName()
	if a.session.IsAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root greets the user, starts the session watcher and blocks in the REPL
// until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	titleColor.Fprintln(a.out, "Social profile CLI (type 'help' for commands)")
	if a.session.IsAuthenticated() {
		fmt.Fprintf(a.out, "Welcome back, %s.\n", a.session.DisplayName())
	}

	go a.StartSessionWatcher(ctx, a.config.SessionCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

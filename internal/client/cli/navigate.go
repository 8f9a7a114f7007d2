package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/socialprofile/internal/client/router"
)

// navigate runs the route guard for a view command and explains a redirect.
func (a *App) navigate(ctx context.Context, route string) bool {
	d, err := a.guard.Navigate(ctx, route)
	if err != nil {
		a.log.Error(ctx, "navigation failed", "route", route, "error", err)
		return false
	}
	if d.Proceed {
		return true
	}

	switch d.Target {
	case router.Auth:
		fmt.Fprintln(a.out, warnColor.Sprint("Please log in first (login or register)."))
	case router.Profile:
		fmt.Fprintln(a.out, warnColor.Sprint("Administrator rights required."))
	default:
		fmt.Fprintf(a.out, "Redirected to %s.\n", d.Target)
	}
	return false
}

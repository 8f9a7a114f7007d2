// Package router decides whether the REPL may show a view given the current
// session. The decision is a pure function of the route and two flags;
// Guard adds the one-time identity refresh in front of it.
package router

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/socialprofile/internal/logging"
)

// Route names.
const (
	Auth    = "auth"
	Home    = "home"
	Profile = "profile"
	Feed    = "feed"
	User    = "user"
	Admin   = "admin"
)

// Route is one entry of the navigation table.
type Route struct {
	Name          string
	Path          string
	Redirect      string
	RequiresAuth  bool
	RequiresAdmin bool
}

var routes = map[string]Route{
	Home:    {Name: Home, Path: "/", Redirect: Auth},
	Auth:    {Name: Auth, Path: "/auth"},
	Profile: {Name: Profile, Path: "/profile", RequiresAuth: true},
	Feed:    {Name: Feed, Path: "/feed", RequiresAuth: true},
	User:    {Name: User, Path: "/user/:id", RequiresAuth: true},
	Admin:   {Name: Admin, Path: "/admin", RequiresAuth: true, RequiresAdmin: true},
}

// Lookup returns the route registered under name.
func Lookup(name string) (Route, bool) {
	r, ok := routes[name]
	return r, ok
}

// Decision is the outcome of a navigation attempt. Target is the route to
// show: the requested one when Proceed is true, the redirect otherwise.
type Decision struct {
	Proceed bool
	Target  string
}

func (d Decision) String() string {
	if d.Proceed {
		return "proceed to " + d.Target
	}
	return "redirect to " + d.Target
}

// Decide applies the route's requirements to the session flags.
func Decide(r Route, authenticated, isAdmin bool) Decision {
	switch {
	case r.Redirect != "":
		return Decision{Target: r.Redirect}
	case r.RequiresAuth && !authenticated:
		return Decision{Target: Auth}
	case r.RequiresAdmin && !isAdmin:
		return Decision{Target: Profile}
	default:
		return Decision{Proceed: true, Target: r.Name}
	}
}

// Session is what the guard needs from the session store.
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
	HasIdentity() bool
	LoadUser(ctx context.Context) error
}

// Guard resolves navigation against a live session. For a protected route
// with no identity in memory it waits for exactly one LoadUser before
// deciding. Public routes never load.
type Guard struct {
	session Session
	log     logging.Logger
}

func NewGuard(s Session, log logging.Logger) *Guard {
	if log == nil {
		log = logging.Nop()
	}
	return &Guard{session: s, log: log}
}

func (g *Guard) Navigate(ctx context.Context, name string) (Decision, error) {
	r, ok := Lookup(name)
	if !ok {
		return Decision{}, fmt.Errorf("unknown route %q", name)
	}

	if r.RequiresAuth && !g.session.HasIdentity() {
		if err := g.session.LoadUser(ctx); err != nil {
			g.log.Warn(ctx, "loading user before navigation failed", "route", name, "error", err)
		}
	}

	d := Decide(r, g.session.IsAuthenticated(), g.session.IsAdmin())
	g.log.Debug(ctx, "navigation", "route", name, "decision", d.String())
	return d, nil
}

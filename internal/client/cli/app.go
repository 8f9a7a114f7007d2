package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/socialprofile/internal/client/client"
	"github.com/dmitrijs2005/socialprofile/internal/client/config"
	"github.com/dmitrijs2005/socialprofile/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/socialprofile/internal/client/router"
	"github.com/dmitrijs2005/socialprofile/internal/client/stores"
	"github.com/dmitrijs2005/socialprofile/internal/logging"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	api     *client.HTTPClient
	session *stores.Session
	posts   *stores.Posts
	admin   *stores.Admin
	guard   *router.Guard
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	noticeMu sync.Mutex
	notices  []string
}

// NewApp opens local storage, builds the API client and the stores, and
// restores the previous session (cookies and identity) if one was saved.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "initializing database failed", "path", c.StoragePath, "error", err)
		return nil, err
	}
	repo := metadata.NewSQLiteRepository(db)

	api, err := client.NewHTTPClient(c.APIBaseURL, repo,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "http")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := api.RestoreCredentials(ctx); err != nil {
		log.Warn(ctx, "restoring credentials failed", "error", err)
	}

	session := stores.NewSession(api, repo, log.With("store", "session"))
	if err := session.Restore(ctx); err != nil {
		log.Warn(ctx, "restoring session failed", "error", err)
	}

	return &App{
		config:  c,
		db:      db,
		api:     api,
		session: session,
		posts:   stores.NewPosts(api, session, log.With("store", "posts")),
		admin:   stores.NewAdmin(api, session, log.With("store", "admin")),
		guard:   router.NewGuard(session, log.With("component", "router")),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}

// StartSessionWatcher re-validates a signed-in session every interval so an
// expired cookie is noticed between commands.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.session.IsAuthenticated() {
				continue
			}
			if err := a.session.LoadUser(ctx); err != nil {
				a.log.Warn(ctx, "session check failed", "error", err)
				continue
			}
			if !a.session.IsAuthenticated() {
				a.posts.Reset()
				a.admin.Reset()
				a.notify("Session expired, please log in again.")
			}

		case <-ctx.Done():
			return
		}
	}
}

// notify queues msg for the REPL to print before its next prompt.
func (a *App) notify(msg string) {
	a.noticeMu.Lock()
	a.notices = append(a.notices, msg)
	a.noticeMu.Unlock()
}

func (a *App) takeNotices() []string {
	a.noticeMu.Lock()
	defer a.noticeMu.Unlock()
	n := a.notices
	a.notices = nil
	return n
}

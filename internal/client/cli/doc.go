// Package cli provides the interactive social-profile command-line client.
//
// It wires configuration, local storage, the REST client, the session, post
// and admin stores and the route guard behind a small REPL. On start the
// saved cookies and identity are restored, a background watcher re-checks the
// session periodically, and commands run until the user exits.
//
// Key features:
//   - Register / Login / Logout
//   - Show and update the profile, list own posts, view other users
//   - Feed: list, show, create, edit and delete posts
//   - Admin panel: list, search, promote, demote and delete users
//
// View commands pass through the route guard first, so a guest asking for the
// feed is told to log in and a non-admin asking for the admin panel is sent
// back. The REPL is started via App.Root(ctx), which blocks until the user
// exits. See App, StartSessionWatcher, and runREPL for details.
package cli

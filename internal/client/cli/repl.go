package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	// takeNotices drains messages queued by background work.
	takeNotices() []string

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	MyPosts(ctx context.Context) error
	ShowMyPost(ctx context.Context, id int64) error
	ShowUser(ctx context.Context, id int64) error

	Feed(ctx context.Context) error
	ShowPost(ctx context.Context, id int64) error
	CreatePost(ctx context.Context) error
	EditPost(ctx context.Context, id int64) error
	DeletePost(ctx context.Context, id int64) error

	AdminPanel(ctx context.Context) error
	Users(ctx context.Context) error
	DeletedUsers(ctx context.Context) error
	Promote(ctx context.Context, id int64) error
	Demote(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64, reason string) error
	Search(ctx context.Context, query string) error
}

const (
	helpGuest = "Available commands: register, login, exit"
	helpUser  = "Available commands: me, update, myposts, mypost <id>, feed, post <id>, new, edit <id>, delete <id>, user <id>, logout, exit"
	helpAdmin = "Admin commands: admin, users, deleted, search <text>, promote <id>, demote <id>, deluser <id> [reason]"
)

// runREPL starts the read–eval–print loop for the social-profile CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Prompts issued by the handlers read from the
// same reader. The loop exits on EOF or when the user types "exit" or "quit".
// Errors returned by command handlers are printed and the loop continues.
// Queued notices are printed before each prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		for _, n := range a.takeNotices() {
			printlnFn(warnColor.Sprint(n))
		}
		printlnFn(fmt.Sprintf("sp %s> ", statusFn()))
		line, readErr := in.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpGuest)
			case a.isAdmin():
				printlnFn(helpUser)
				printlnFn(helpAdmin)
			default:
				printlnFn(helpUser)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "me", "profile":
			err = a.Profile(ctx)
		case "update":
			err = a.UpdateProfile(ctx)
		case "myposts":
			err = a.MyPosts(ctx)
		case "mypost":
			err = withID(cmd, args, func(id int64) error { return a.ShowMyPost(ctx, id) })
		case "user":
			err = withID(cmd, args, func(id int64) error { return a.ShowUser(ctx, id) })

		case "feed":
			err = a.Feed(ctx)
		case "post":
			err = withID(cmd, args, func(id int64) error { return a.ShowPost(ctx, id) })
		case "new":
			err = a.CreatePost(ctx)
		case "edit":
			err = withID(cmd, args, func(id int64) error { return a.EditPost(ctx, id) })
		case "delete":
			err = withID(cmd, args, func(id int64) error { return a.DeletePost(ctx, id) })

		case "admin":
			err = a.AdminPanel(ctx)
		case "users":
			err = a.Users(ctx)
		case "deleted":
			err = a.DeletedUsers(ctx)
		case "search":
			err = a.Search(ctx, strings.Join(args, " "))
		case "promote":
			err = withID(cmd, args, func(id int64) error { return a.Promote(ctx, id) })
		case "demote":
			err = withID(cmd, args, func(id int64) error { return a.Demote(ctx, id) })
		case "deluser":
			err = withID(cmd, args, func(id int64) error {
				return a.DeleteUser(ctx, id, strings.Join(args[1:], " "))
			})

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(errColor.Sprint("Error: " + err.Error()))
		}
		if readErr != nil {
			return
		}
	}
}

// withID parses the first argument as a numeric id and calls fn with it.
func withID(cmd string, args []string, fn func(int64) error) error {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[0])
	}
	return fn(id)
}

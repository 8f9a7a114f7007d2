package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/socialprofile/internal/client/stores"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up form and creates the account. The session
// store signs in right after.
func (a *App) Register(ctx context.Context) error {
	var in stores.RegisterInput
	var err error

	if in.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	in.Password = string(password)
	if in.Bio, err = getSimpleText(a.reader, "Enter bio (optional)", a.out); err != nil {
		return err
	}
	if in.Location, err = getSimpleText(a.reader, "Enter location (optional)", a.out); err != nil {
		return err
	}

	if err := a.session.Register(ctx, in); err != nil {
		return err
	}

	okColor.Fprintf(a.out, "Welcome, %s!\n", a.session.DisplayName())
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	okColor.Fprintf(a.out, "Signed in as %s\n", a.session.DisplayName())
	return nil
}

// Logout signs out and drops every cached list. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.posts.Reset()
	a.admin.Reset()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

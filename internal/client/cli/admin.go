package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/socialprofile/internal/client/router"
)

// AdminPanel loads both moderation lists and prints them.
func (a *App) AdminPanel(ctx context.Context) error {
	if !a.navigate(ctx, router.Admin) {
		return nil
	}
	if err := a.admin.Initialize(ctx); err != nil {
		return err
	}

	titleColor.Fprintln(a.out, "Active users")
	renderUsers(a.out, a.admin.Users(), false)
	titleColor.Fprintln(a.out, "Deleted users")
	renderUsers(a.out, a.admin.DeletedUsers(), true)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	if !a.navigate(ctx, router.Admin) {
		return nil
	}
	users, err := a.admin.ListUsers(ctx)
	if err != nil {
		return err
	}
	renderUsers(a.out, users, false)
	return nil
}

func (a *App) DeletedUsers(ctx context.Context) error {
	if !a.navigate(ctx, router.Admin) {
		return nil
	}
	users, err := a.admin.FetchDeleted(ctx)
	if err != nil {
		return err
	}
	renderUsers(a.out, users, true)
	return nil
}

func (a *App) Promote(ctx context.Context, id int64) error {
	if err := a.admin.Promote(ctx, id); err != nil {
		return err
	}
	okColor.Fprintf(a.out, "User #%d is now an administrator.\n", id)
	return nil
}

func (a *App) Demote(ctx context.Context, id int64) error {
	if err := a.admin.Demote(ctx, id); err != nil {
		return err
	}
	okColor.Fprintf(a.out, "User #%d is no longer an administrator.\n", id)
	return nil
}

// DeleteUser asks for a reason when none was given on the command line.
func (a *App) DeleteUser(ctx context.Context, id int64, reason string) error {
	if reason == "" {
		var err error
		if reason, err = getSimpleText(a.reader, fmt.Sprintf("Reason for deleting user #%d", id), a.out); err != nil {
			return err
		}
	}
	if err := a.admin.Delete(ctx, id, reason); err != nil {
		return err
	}
	okColor.Fprintf(a.out, "User #%d deleted.\n", id)
	return nil
}

// Search filters the cached active list; run users or admin first.
func (a *App) Search(ctx context.Context, query string) error {
	if !a.navigate(ctx, router.Admin) {
		return nil
	}
	renderUsers(a.out, a.admin.Search(query), false)
	return nil
}

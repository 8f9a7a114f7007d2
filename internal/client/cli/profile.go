package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/socialprofile/internal/client/models"
	"github.com/dmitrijs2005/socialprofile/internal/client/router"
	"github.com/dmitrijs2005/socialprofile/internal/client/stores"
)

// Profile shows the signed-in identity.
func (a *App) Profile(ctx context.Context) error {
	if !a.navigate(ctx, router.Profile) {
		return nil
	}
	u, _ := a.session.User()
	renderIdentity(a.out, u, a.session.Initials(), a.session.RegistrationDate())
	return nil
}

// UpdateProfile reads name=value pairs for name, email, bio and location and
// sends only those.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.navigate(ctx, router.Profile) {
		return nil
	}

	fields, err := GetKeyValues(a.reader, "Fields to change: name, email, bio, location", a.out)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	var unknown []string
	for k, v := range fields {
		v := v
		switch strings.ToLower(k) {
		case "name":
			upd.Name = &v
		case "email":
			upd.Email = &v
		case "bio":
			upd.Bio = &v
		case "location":
			upd.Location = &v
		default:
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", "))
	}

	if err := a.session.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	okColor.Fprintln(a.out, "Profile updated.")
	return nil
}

// MyPosts lists the signed-in user's own posts.
func (a *App) MyPosts(ctx context.Context) error {
	if !a.navigate(ctx, router.Profile) {
		return nil
	}
	posts, err := a.session.FetchMyPosts(ctx)
	if err != nil {
		return err
	}
	renderPosts(a.out, posts)
	return nil
}

// ShowUser shows another user's public profile with their posts.
func (a *App) ShowUser(ctx context.Context, id int64) error {
	if !a.navigate(ctx, router.User) {
		return nil
	}
	if _, err := a.session.FetchProfile(ctx, id); err != nil {
		return err
	}
	p, ok := a.session.ViewedProfile()
	if !ok {
		return nil
	}

	registered := ""
	if !p.CreatedAt.IsZero() {
		registered = p.CreatedAt.Format(stores.RegistrationDateLayout)
	}
	renderIdentity(a.out, p.Identity, models.Initials(p.Name), registered)
	renderPosts(a.out, p.Posts)
	return nil
}

// ShowMyPost shows one of the signed-in user's own posts.
func (a *App) ShowMyPost(ctx context.Context, id int64) error {
	if !a.navigate(ctx, router.Profile) {
		return nil
	}
	p, err := a.session.FetchMyPost(ctx, id)
	if err != nil {
		return err
	}
	renderPost(a.out, p)
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/socialprofile/internal/client/router"
)

// Feed refreshes and prints the post feed.
func (a *App) Feed(ctx context.Context) error {
	if !a.navigate(ctx, router.Feed) {
		return nil
	}
	posts, err := a.posts.FetchAll(ctx)
	if err != nil {
		return err
	}
	renderPosts(a.out, posts)
	return nil
}

func (a *App) ShowPost(ctx context.Context, id int64) error {
	if !a.navigate(ctx, router.Feed) {
		return nil
	}
	p, err := a.posts.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	renderPost(a.out, p)
	return nil
}

func (a *App) CreatePost(ctx context.Context) error {
	content, err := GetMultiline(a.reader, "Write your post", a.out)
	if err != nil {
		return err
	}
	p, err := a.posts.Create(ctx, content)
	if err != nil {
		return err
	}
	okColor.Fprintf(a.out, "Post #%d published.\n", p.ID)
	return nil
}

func (a *App) EditPost(ctx context.Context, id int64) error {
	content, err := GetMultiline(a.reader, fmt.Sprintf("New content for post #%d", id), a.out)
	if err != nil {
		return err
	}
	if err := a.posts.Update(ctx, id, content); err != nil {
		return err
	}
	okColor.Fprintf(a.out, "Post #%d updated.\n", id)
	return nil
}

func (a *App) DeletePost(ctx context.Context, id int64) error {
	if err := a.posts.Delete(ctx, id); err != nil {
		return err
	}
	okColor.Fprintf(a.out, "Post #%d deleted.\n", id)
	return nil
}

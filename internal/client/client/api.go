package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/socialprofile/internal/client/models"
)

func call[T any](ctx context.Context, c *HTTPClient, r Request) (T, json.RawMessage, error) {
	var zero T
	resp, err := c.Do(ctx, r)
	if err != nil {
		return zero, nil, err
	}
	if !resp.IsJSON() {
		return zero, nil, fmt.Errorf("%w: %s %s returned %q", ErrUnexpectedBody,
			r.Method, r.Path, resp.Header.Get("Content-Type"))
	}
	return models.DecodeData[T](resp.Body)
}

func (c *HTTPClient) SignIn(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	v, _, err := call[models.Identity](ctx, c, Request{Method: http.MethodPost, Path: "/users/sign_in", Body: creds})
	return v, err
}

func (c *HTTPClient) SignUp(ctx context.Context, req models.SignUp) (models.Identity, error) {
	v, _, err := call[models.Identity](ctx, c, Request{Method: http.MethodPost, Path: "/users/sign_up", Body: req})
	return v, err
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/users/logout"})
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (models.Identity, error) {
	v, _, err := call[models.Identity](ctx, c, Request{Method: http.MethodGet, Path: "/users/me/"})
	return v, err
}

func (c *HTTPClient) UpdateMe(ctx context.Context, upd models.ProfileUpdate) (json.RawMessage, error) {
	_, raw, err := call[json.RawMessage](ctx, c, Request{Method: http.MethodPatch, Path: "/users/me/update", Body: upd})
	return raw, err
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	v, _, err := call[[]models.UserSummary](ctx, c, Request{Method: http.MethodGet, Path: "/users/"})
	return v, err
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (models.Profile, error) {
	v, _, err := call[models.Profile](ctx, c, Request{Method: http.MethodGet, Path: fmt.Sprintf("/users/user/%d", id)})
	return v, err
}

// MyPosts accepts either a bare post list or a user record with a posts field.
func (c *HTTPClient) MyPosts(ctx context.Context) ([]models.Post, error) {
	_, raw, err := call[json.RawMessage](ctx, c, Request{Method: http.MethodGet, Path: "/users/me/posts"})
	if err != nil || raw == nil {
		return nil, err
	}

	var list []models.Post
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return p.Posts, nil
}

func (c *HTTPClient) MyPost(ctx context.Context, id int64) (models.Post, error) {
	v, _, err := call[models.Post](ctx, c, Request{Method: http.MethodGet, Path: fmt.Sprintf("/users/me/post/%d", id)})
	return v, err
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	v, _, err := call[[]models.Post](ctx, c, Request{Method: http.MethodGet, Path: "/posts/"})
	return v, err
}

func (c *HTTPClient) GetPost(ctx context.Context, id int64) (models.Post, error) {
	v, _, err := call[models.Post](ctx, c, Request{Method: http.MethodGet, Path: fmt.Sprintf("/posts/post/%d", id)})
	return v, err
}

func (c *HTTPClient) CreatePost(ctx context.Context, content string) (models.Post, error) {
	v, _, err := call[models.Post](ctx, c, Request{Method: http.MethodPost, Path: "/posts/create_post", Body: models.PostContent{Content: content}})
	return v, err
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id int64, content string) (json.RawMessage, error) {
	_, raw, err := call[json.RawMessage](ctx, c, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/posts/update_post/%d", id),
		Body:   models.PostContent{Content: content},
	})
	return raw, err
}

func (c *HTTPClient) DeletePost(ctx context.Context, id int64) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/posts/delete_post/%d", id)})
	return err
}

func (c *HTTPClient) ListDeletedUsers(ctx context.Context) ([]models.UserSummary, error) {
	v, _, err := call[[]models.UserSummary](ctx, c, Request{Method: http.MethodGet, Path: "/admin/users/deleted"})
	return v, err
}

func (c *HTTPClient) PromoteToAdmin(ctx context.Context, id int64) (json.RawMessage, error) {
	_, raw, err := call[json.RawMessage](ctx, c, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/admin/users/promote_to_admin/%d", id)})
	return raw, err
}

func (c *HTTPClient) DemoteFromAdmin(ctx context.Context, id int64) (json.RawMessage, error) {
	_, raw, err := call[json.RawMessage](ctx, c, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/admin/users/demote_from_admin/%d", id)})
	return raw, err
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64, reason string) error {
	_, err := c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/admin/users/delete/%d", id),
		Body:   models.DeleteReason{Reason: reason},
	})
	return err
}

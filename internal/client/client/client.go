package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/socialprofile/internal/client/models"
)

// Client is the backend REST surface consumed by the stores. Update-style
// calls return the raw payload so callers can shallow-merge it.
type Client interface {
	SignIn(ctx context.Context, creds models.Credentials) (models.Identity, error)
	SignUp(ctx context.Context, req models.SignUp) (models.Identity, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (models.Identity, error)
	UpdateMe(ctx context.Context, upd models.ProfileUpdate) (json.RawMessage, error)

	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	GetUser(ctx context.Context, id int64) (models.Profile, error)
	MyPosts(ctx context.Context) ([]models.Post, error)
	MyPost(ctx context.Context, id int64) (models.Post, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	CreatePost(ctx context.Context, content string) (models.Post, error)
	UpdatePost(ctx context.Context, id int64, content string) (json.RawMessage, error)
	DeletePost(ctx context.Context, id int64) error

	ListDeletedUsers(ctx context.Context) ([]models.UserSummary, error)
	PromoteToAdmin(ctx context.Context, id int64) (json.RawMessage, error)
	DemoteFromAdmin(ctx context.Context, id int64) (json.RawMessage, error)
	DeleteUser(ctx context.Context, id int64, reason string) error
}

var _ Client = (*HTTPClient)(nil)

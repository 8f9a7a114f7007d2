package stores

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/socialprofile/internal/client/client"
	"github.com/dmitrijs2005/socialprofile/internal/client/models"
	"github.com/dmitrijs2005/socialprofile/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}

func getMeta(t *testing.T, repo metadata.Repository, k string) []byte {
	t.Helper()
	v, err := repo.Get(context.Background(), k)
	require.NoError(t, err)
	return v
}

// ---- fake client ----

// fakeAPI implements client.Client with canned results and call counters.
type fakeAPI struct {
	SignInRet models.Identity
	SignInErr error
	SignUpRet models.Identity
	SignUpErr error
	LogoutErr error
	MeRet     models.Identity
	MeErr     error
	UpdateRet json.RawMessage
	UpdateErr error

	UsersRet   []models.UserSummary
	UsersErr   error
	ProfileRet models.Profile
	ProfileErr error
	MyPostsRet []models.Post
	MyPostsErr error

	PostsRet      []models.Post
	PostsErr      error
	PostRet       models.Post
	PostErr       error
	CreateRet     models.Post
	CreateErr     error
	UpdatePostRet json.RawMessage
	UpdatePostErr error
	DeletePostErr error

	DeletedRet    []models.UserSummary
	DeletedErr    error
	RoleRet       json.RawMessage
	RoleErr       error
	DeleteUserErr error

	ClearErr error

	Calls            map[string]int
	LastCreds        models.Credentials
	LastSignUp       models.SignUp
	LastUpdate       models.ProfileUpdate
	LastDeleteReason string
}

func (f *fakeAPI) hit(name string) {
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[name]++
}

func (f *fakeAPI) SignIn(_ context.Context, c models.Credentials) (models.Identity, error) {
	f.hit("SignIn")
	f.LastCreds = c
	return f.SignInRet, f.SignInErr
}

func (f *fakeAPI) SignUp(_ context.Context, r models.SignUp) (models.Identity, error) {
	f.hit("SignUp")
	f.LastSignUp = r
	return f.SignUpRet, f.SignUpErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.hit("Logout")
	return f.LogoutErr
}

func (f *fakeAPI) Me(context.Context) (models.Identity, error) {
	f.hit("Me")
	return f.MeRet, f.MeErr
}

func (f *fakeAPI) UpdateMe(_ context.Context, u models.ProfileUpdate) (json.RawMessage, error) {
	f.hit("UpdateMe")
	f.LastUpdate = u
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeAPI) ListUsers(context.Context) ([]models.UserSummary, error) {
	f.hit("ListUsers")
	return f.UsersRet, f.UsersErr
}

func (f *fakeAPI) GetUser(context.Context, int64) (models.Profile, error) {
	f.hit("GetUser")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeAPI) MyPosts(context.Context) ([]models.Post, error) {
	f.hit("MyPosts")
	return f.MyPostsRet, f.MyPostsErr
}

func (f *fakeAPI) MyPost(context.Context, int64) (models.Post, error) {
	f.hit("MyPost")
	return f.PostRet, f.PostErr
}

func (f *fakeAPI) ListPosts(context.Context) ([]models.Post, error) {
	f.hit("ListPosts")
	return f.PostsRet, f.PostsErr
}

func (f *fakeAPI) GetPost(context.Context, int64) (models.Post, error) {
	f.hit("GetPost")
	return f.PostRet, f.PostErr
}

func (f *fakeAPI) CreatePost(context.Context, string) (models.Post, error) {
	f.hit("CreatePost")
	return f.CreateRet, f.CreateErr
}

func (f *fakeAPI) UpdatePost(context.Context, int64, string) (json.RawMessage, error) {
	f.hit("UpdatePost")
	return f.UpdatePostRet, f.UpdatePostErr
}

func (f *fakeAPI) DeletePost(context.Context, int64) error {
	f.hit("DeletePost")
	return f.DeletePostErr
}

func (f *fakeAPI) ListDeletedUsers(context.Context) ([]models.UserSummary, error) {
	f.hit("ListDeletedUsers")
	return f.DeletedRet, f.DeletedErr
}

func (f *fakeAPI) PromoteToAdmin(context.Context, int64) (json.RawMessage, error) {
	f.hit("PromoteToAdmin")
	return f.RoleRet, f.RoleErr
}

func (f *fakeAPI) DemoteFromAdmin(context.Context, int64) (json.RawMessage, error) {
	f.hit("DemoteFromAdmin")
	return f.RoleRet, f.RoleErr
}

func (f *fakeAPI) DeleteUser(_ context.Context, _ int64, reason string) error {
	f.hit("DeleteUser")
	f.LastDeleteReason = reason
	return f.DeleteUserErr
}

func (f *fakeAPI) ClearCredentials(context.Context) error {
	f.hit("ClearCredentials")
	return f.ClearErr
}

var _ client.Client = (*fakeAPI)(nil)

type gate struct{ admin bool }

func (g gate) RequireAdmin() error {
	if !g.admin {
		return ErrAdminRequired
	}
	return nil
}

type auth bool

func (a auth) IsAuthenticated() bool { return bool(a) }

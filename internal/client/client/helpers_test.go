package client

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory metadata.Repository.
type memRepo struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{m: map[string][]byte{}} }

func (r *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[key], nil
}

func (r *memRepo) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key] = value
	return nil
}

func (r *memRepo) SetMany(ctx context.Context, values map[string][]byte) error {
	for k, v := range values {
		_ = r.Set(ctx, k, v)
	}
	return nil
}

func (r *memRepo) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.m, k)
	}
	return nil
}

func (r *memRepo) List(_ context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]byte, len(r.m))
	for k, v := range r.m {
		out[k] = v
	}
	return out, nil
}

func (r *memRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = map[string][]byte{}
	return nil
}

// newBackend starts a fake API under /api/v1 and returns a client for it.
func newBackend(t *testing.T, repo *memRepo, routes func(r *mux.Router), opts ...Option) (*HTTPClient, *httptest.Server) {
	t.Helper()
	root := mux.NewRouter()
	routes(root.PathPrefix("/api/v1").Subrouter())
	srv := httptest.NewServer(root)
	t.Cleanup(srv.Close)

	var c *HTTPClient
	var err error
	if repo != nil {
		c, err = NewHTTPClient(srv.URL+"/api/v1", repo, opts...)
	} else {
		c, err = NewHTTPClient(srv.URL+"/api/v1", nil, opts...)
	}
	require.NoError(t, err)
	return c, srv
}

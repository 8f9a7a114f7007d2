package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socialprofile/internal/client/client"
	"github.com/dmitrijs2005/socialprofile/internal/client/models"
	"github.com/dmitrijs2005/socialprofile/internal/logging"
)

// Authenticator reports whether a session is signed in.
type Authenticator interface {
	IsAuthenticated() bool
}

// Posts holds the feed.
type Posts struct {
	tracker

	api  client.Client
	auth Authenticator
	log  logging.Logger

	posts []models.Post
}

func NewPosts(api client.Client, auth Authenticator, log logging.Logger) *Posts {
	if log == nil {
		log = logging.Nop()
	}
	return &Posts{api: api, auth: auth, log: log}
}

// FetchAll replaces the feed with the backend's list.
func (p *Posts) FetchAll(ctx context.Context) (posts []models.Post, err error) {
	p.start()
	defer func() { p.finish(err) }()

	posts, err = p.api.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.posts = append([]models.Post(nil), posts...)
	p.mu.Unlock()
	return posts, nil
}

// FetchByID loads a single post without touching the feed.
func (p *Posts) FetchByID(ctx context.Context, id int64) (post models.Post, err error) {
	p.start()
	defer func() { p.finish(err) }()

	return p.api.GetPost(ctx, id)
}

// Create publishes content and puts the new post at the head of the feed.
func (p *Posts) Create(ctx context.Context, content string) (post models.Post, err error) {
	p.start()
	defer func() { p.finish(err) }()

	if !p.auth.IsAuthenticated() {
		return models.Post{}, ErrNotAuthenticated
	}
	if strings.TrimSpace(content) == "" {
		return models.Post{}, fmt.Errorf("%w: post content is empty", ErrValidation)
	}

	post, err = p.api.CreatePost(ctx, content)
	if err != nil {
		return models.Post{}, err
	}
	if post.ID == 0 {
		p.log.Warn(ctx, "create post returned no post")
		return post, nil
	}

	p.mu.Lock()
	p.posts = append([]models.Post{post}, p.posts...)
	p.mu.Unlock()
	return post, nil
}

// Update changes a post's content and merges the reply into the cached copy.
func (p *Posts) Update(ctx context.Context, id int64, content string) (err error) {
	p.start()
	defer func() { p.finish(err) }()

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: post content is empty", ErrValidation)
	}

	raw, err := p.api.UpdatePost(ctx, id, content)
	if err != nil {
		return err
	}

	if mergeErr := p.merge(id, raw); mergeErr != nil {
		p.log.Warn(ctx, "merging updated post failed, reloading feed", "post_id", id, "error", mergeErr)
		p.reload(ctx)
	}
	return nil
}

func (p *Posts) merge(id int64, raw json.RawMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.posts {
		if p.posts[i].ID != id {
			continue
		}
		merged, err := models.Merge(p.posts[i], raw)
		if err != nil {
			return err
		}
		p.posts[i] = merged
		return nil
	}
	return nil
}

// reload replaces the feed without touching the busy flag or last error.
func (p *Posts) reload(ctx context.Context) {
	posts, err := p.api.ListPosts(ctx)
	if err != nil {
		p.log.Warn(ctx, "reloading feed failed", "error", err)
		return
	}
	p.mu.Lock()
	p.posts = append([]models.Post(nil), posts...)
	p.mu.Unlock()
}

// Delete removes a post on the backend and from the feed.
func (p *Posts) Delete(ctx context.Context, id int64) (err error) {
	p.start()
	defer func() { p.finish(err) }()

	if err := p.api.DeletePost(ctx, id); err != nil {
		return err
	}

	p.mu.Lock()
	kept := p.posts[:0:0]
	for _, post := range p.posts {
		if post.ID != id {
			kept = append(kept, post)
		}
	}
	p.posts = kept
	p.mu.Unlock()
	return nil
}

// Posts returns a copy of the feed.
func (p *Posts) Posts() []models.Post {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Post(nil), p.posts...)
}

func (p *Posts) Reset() {
	p.mu.Lock()
	p.posts = nil
	p.loading = false
	p.lastErr = ""
	p.mu.Unlock()
}

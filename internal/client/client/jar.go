package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/socialprofile/internal/client/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
)

// CookiesKey is the storage key the credential jar is persisted under.
const CookiesKey = "cookies"

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

// PersistentJar is an http.CookieJar for a single backend origin whose
// cookies survive restarts via the metadata repository.
type PersistentJar struct {
	mu      sync.Mutex
	jar     *cookiejar.Jar
	origin  *url.URL
	repo    metadata.Repository
	cookies map[string]storedCookie
	dirty   bool
	now     func() time.Time
}

func NewPersistentJar(origin *url.URL, repo metadata.Repository) (*PersistentJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &PersistentJar{
		jar:     jar,
		origin:  origin,
		repo:    repo,
		cookies: map[string]storedCookie{},
		now:     time.Now,
	}, nil
}

func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if u.Hostname() != j.origin.Hostname() {
		return
	}

	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(j.now())) {
			delete(j.cookies, c.Name)
		} else {
			expires := c.Expires
			if c.MaxAge > 0 {
				expires = j.now().Add(time.Duration(c.MaxAge) * time.Second)
			}
			j.cookies[c.Name] = storedCookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     c.Path,
				Expires:  expires,
				Secure:   c.Secure,
				HttpOnly: c.HttpOnly,
			}
		}
		j.dirty = true
	}
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Persist writes the origin's cookies to storage if they changed since the
// last write.
func (j *PersistentJar) Persist(ctx context.Context) error {
	j.mu.Lock()
	if !j.dirty {
		j.mu.Unlock()
		return nil
	}
	list := make([]storedCookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		list = append(list, c)
	}
	j.dirty = false
	j.mu.Unlock()

	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}
	return j.repo.Set(ctx, CookiesKey, b)
}

// Restore loads stored cookies into the jar. Cookies past their expiry, or
// carrying a JWT whose exp claim has passed, are dropped.
func (j *PersistentJar) Restore(ctx context.Context) error {
	b, err := j.repo.Get(ctx, CookiesKey)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}

	var list []storedCookie
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("decode cookies: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	restored := make([]*http.Cookie, 0, len(list))
	for _, c := range list {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			j.dirty = true
			continue
		}
		if tokenExpired(c.Value, now) {
			j.dirty = true
			continue
		}
		j.cookies[c.Name] = c
		restored = append(restored, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	j.jar.SetCookies(j.origin, restored)
	return nil
}

// Clear forgets every cookie and removes the stored copy.
func (j *PersistentJar) Clear(ctx context.Context) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.jar = jar
	j.cookies = map[string]storedCookie{}
	j.dirty = false
	j.mu.Unlock()

	return j.repo.Delete(ctx, CookiesKey)
}

// tokenExpired reports whether value is a JWT with an exp claim in the past.
// The signature is not checked; the server remains the authority.
func tokenExpired(value string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(now)
}

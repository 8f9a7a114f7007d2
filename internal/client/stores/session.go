package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socialprofile/internal/client/client"
	"github.com/dmitrijs2005/socialprofile/internal/client/models"
	"github.com/dmitrijs2005/socialprofile/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/socialprofile/internal/logging"
)

// Storage keys written by Session.
const (
	UserKey          = "user"
	AuthenticatedKey = "isAuthenticated"
)

// RegistrationDateLayout is how Session.RegistrationDate renders created_at.
const RegistrationDateLayout = "02.01.2006"

// credentialClearer is implemented by clients that keep credentials locally.
type credentialClearer interface {
	ClearCredentials(ctx context.Context) error
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Bio      string
	Location string
}

// Session owns the signed-in identity and mirrors it to durable storage.
type Session struct {
	tracker

	api  client.Client
	repo metadata.Repository
	log  logging.Logger

	user          *models.Identity
	authenticated bool
	myPosts       []models.Post
	profile       *models.Profile
}

func NewSession(api client.Client, repo metadata.Repository, log logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{api: api, repo: repo, log: log}
}

// Restore loads the identity saved by a previous run. State is only set when
// both the user record and the "true" flag are present.
func (s *Session) Restore(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, UserKey)
	if err != nil {
		return fmt.Errorf("read stored user: %w", err)
	}
	flag, err := s.repo.Get(ctx, AuthenticatedKey)
	if err != nil {
		return fmt.Errorf("read stored auth flag: %w", err)
	}
	if raw == nil || string(flag) != "true" {
		return nil
	}

	var u models.Identity
	if err := json.Unmarshal(raw, &u); err != nil {
		return fmt.Errorf("decode stored user: %w", err)
	}

	s.mu.Lock()
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// Login signs in and then asks the backend who we are. A failing "who am I"
// call keeps the sign-in identity.
func (s *Session) Login(ctx context.Context, email, password string) (err error) {
	s.start()
	defer func() { s.finish(err) }()

	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	return s.signIn(ctx, email, password)
}

func (s *Session) signIn(ctx context.Context, email, password string) error {
	u, err := s.api.SignIn(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	s.setUser(ctx, u)

	me, err := s.api.Me(ctx)
	if err != nil {
		s.log.Warn(ctx, "fetching current user after sign in failed", "error", err)
		return nil
	}
	s.setUser(ctx, me)
	s.log.Info(ctx, "signed in", "user_id", me.ID, "admin", me.IsAdmin)
	return nil
}

// Register creates the account and signs in with the same credentials. If
// that sign-in fails the account returned by sign-up becomes the local
// identity, or the form itself when the reply carried no id.
func (s *Session) Register(ctx context.Context, in RegisterInput) (err error) {
	s.start()
	defer func() { s.finish(err) }()

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	reg, err := s.api.SignUp(ctx, models.SignUp{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Bio:      in.Bio,
		Location: in.Location,
	})
	if err != nil {
		return err
	}

	if err := s.signIn(ctx, in.Email, in.Password); err != nil {
		s.log.Warn(ctx, "sign in after registration failed", "error", err)
		if reg.ID == 0 {
			reg = models.Identity{
				Name:     in.Name,
				Email:    in.Email,
				Bio:      in.Bio,
				Location: in.Location,
			}
		}
		s.setUser(ctx, reg)
	}
	return nil
}

// LoadUser refreshes the identity from the backend. An unauthorized reply
// signs the session out locally and is not an error.
func (s *Session) LoadUser(ctx context.Context) (err error) {
	s.start()
	defer func() { s.finish(err) }()

	me, err := s.api.Me(ctx)
	if err == nil {
		s.setUser(ctx, me)
		return nil
	}

	if errors.Is(err, client.ErrUnauthorized) {
		s.log.Debug(ctx, "session is not authenticated")
		s.clear(ctx)
		return nil
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
	return err
}

// Logout always succeeds locally; the backend outcome is only logged.
func (s *Session) Logout(ctx context.Context) {
	s.start()
	defer s.finish(nil)

	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout request failed", "error", err)
	}
	if cc, ok := s.api.(credentialClearer); ok {
		if err := cc.ClearCredentials(ctx); err != nil {
			s.log.Warn(ctx, "clearing credentials failed", "error", err)
		}
	}
	s.clear(ctx)
}

// UpdateProfile sends the changed fields and merges whatever the backend
// returns into the local identity.
func (s *Session) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (err error) {
	s.start()
	defer func() { s.finish(err) }()

	cur, ok := s.current()
	if !ok {
		return ErrNotAuthenticated
	}
	if upd.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	raw, err := s.api.UpdateMe(ctx, upd)
	if err != nil {
		return err
	}
	merged, mergeErr := models.Merge(cur, raw)
	if mergeErr != nil {
		s.log.Warn(ctx, "merging profile reply failed, reloading", "error", mergeErr)
		me, meErr := s.api.Me(ctx)
		if meErr != nil {
			s.log.Warn(ctx, "reloading profile failed", "error", meErr)
			return nil
		}
		merged = me
	}
	s.setUser(ctx, merged)
	return nil
}

// FetchMyPosts replaces the session's own copy of the user's posts.
func (s *Session) FetchMyPosts(ctx context.Context) (posts []models.Post, err error) {
	s.start()
	defer func() { s.finish(err) }()

	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	posts, err = s.api.MyPosts(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.myPosts = append([]models.Post(nil), posts...)
	s.mu.Unlock()
	return posts, nil
}

func (s *Session) FetchMyPost(ctx context.Context, id int64) (p models.Post, err error) {
	s.start()
	defer func() { s.finish(err) }()

	if !s.IsAuthenticated() {
		return models.Post{}, ErrNotAuthenticated
	}
	return s.api.MyPost(ctx, id)
}

// FetchProfile loads another user's public profile and keeps it as the
// currently viewed one.
func (s *Session) FetchProfile(ctx context.Context, id int64) (p models.Profile, err error) {
	s.start()
	defer func() { s.finish(err) }()

	p, err = s.api.GetUser(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}

	s.mu.Lock()
	cp := p
	cp.Posts = append([]models.Post(nil), p.Posts...)
	s.profile = &cp
	s.mu.Unlock()
	return p, nil
}

// User returns a copy of the identity.
func (s *Session) User() (models.Identity, bool) {
	return s.current()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// HasIdentity reports whether an identity is held in memory.
func (s *Session) HasIdentity() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// RequireAdmin gates admin-only actions in the UI.
func (s *Session) RequireAdmin() error {
	if !s.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

func (s *Session) MyPosts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Post(nil), s.myPosts...)
}

// ViewedProfile is the profile last loaded by FetchProfile.
func (s *Session) ViewedProfile() (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return models.Profile{}, false
	}
	p := *s.profile
	p.Posts = append([]models.Post(nil), s.profile.Posts...)
	return p, true
}

// DisplayName is the name, else the local part of the email, else "Guest".
func (s *Session) DisplayName() string {
	u, ok := s.current()
	if !ok {
		return "Guest"
	}
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(u.Email, "@"); local != "" {
		return local
	}
	return "Guest"
}

// Initials returns up to two upper-case initials of the display name.
func (s *Session) Initials() string {
	return models.Initials(s.DisplayName())
}

// RegistrationDate formats created_at, or returns "" when unknown.
func (s *Session) RegistrationDate() string {
	u, ok := s.current()
	if !ok || u.CreatedAt.IsZero() {
		return ""
	}
	return u.CreatedAt.Format(RegistrationDateLayout)
}

func (s *Session) current() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.Identity{}, false
	}
	return *s.user, true
}

// setUser marks the session authenticated with u and persists both keys.
// Storage failures are logged; the in-memory state still changes.
func (s *Session) setUser(ctx context.Context, u models.Identity) {
	s.mu.Lock()
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()

	b, err := json.Marshal(u)
	if err != nil {
		s.log.Error(ctx, "encoding user failed", "error", err)
		return
	}
	if err := s.repo.SetMany(ctx, map[string][]byte{
		UserKey:          b,
		AuthenticatedKey: []byte("true"),
	}); err != nil {
		s.log.Error(ctx, "persisting user failed", "error", err)
	}
}

func (s *Session) clear(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.myPosts = nil
	s.profile = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, UserKey, AuthenticatedKey); err != nil {
		s.log.Error(ctx, "removing stored user failed", "error", err)
	}
}

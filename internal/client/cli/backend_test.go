package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/socialprofile/internal/client/models"
	"github.com/gorilla/mux"
)

// fakeBackend is a small in-memory rendition of the REST API.
type fakeBackend struct {
	mu       sync.Mutex
	users    map[int64]*models.Identity
	active   map[int64]bool
	reasons  map[int64]string
	sessions map[string]int64
	posts    []models.Post
	nextUser int64
	nextPost int64

	failLogout bool
}

func newFakeBackend() *fakeBackend {
	joined := models.Timestamp{Time: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)}
	b := &fakeBackend{
		users: map[int64]*models.Identity{
			1: {ID: 1, Name: "Ann Lee", Email: "ann@x.io", Location: "Riga", CreatedAt: joined, IsAdmin: true},
			2: {ID: 2, Name: "Bob", Email: "bob@x.io", Location: "Oslo", CreatedAt: joined},
		},
		active:   map[int64]bool{1: true, 2: true},
		reasons:  map[int64]string{},
		sessions: map[string]int64{},
		nextUser: 3,
		nextPost: 1,
	}
	b.posts = []models.Post{{ID: b.nextPost, UserID: 2, Content: "first post", UserName: "Bob", CreatedAt: joined}}
	b.nextPost++
	return b
}

func (b *fakeBackend) start(t *testing.T) *httptest.Server {
	t.Helper()
	root := mux.NewRouter()
	r := root.PathPrefix("/api/v1").Subrouter()

	r.HandleFunc("/users/sign_in", b.signIn).Methods(http.MethodPost)
	r.HandleFunc("/users/sign_up", b.signUp).Methods(http.MethodPost)
	r.HandleFunc("/users/logout", b.logout).Methods(http.MethodPost)
	r.HandleFunc("/users/me/", b.authed(b.me)).Methods(http.MethodGet)
	r.HandleFunc("/users/me/update", b.authed(b.updateMe)).Methods(http.MethodPatch)
	r.HandleFunc("/users/me/posts", b.authed(b.myPosts)).Methods(http.MethodGet)
	r.HandleFunc("/users/me/post/{id}", b.authed(b.myPost)).Methods(http.MethodGet)
	r.HandleFunc("/users/", b.authed(b.listUsers)).Methods(http.MethodGet)
	r.HandleFunc("/users/user/{id}", b.authed(b.getUser)).Methods(http.MethodGet)
	r.HandleFunc("/posts/", b.authed(b.listPosts)).Methods(http.MethodGet)
	r.HandleFunc("/posts/post/{id}", b.authed(b.getPost)).Methods(http.MethodGet)
	r.HandleFunc("/posts/create_post", b.authed(b.createPost)).Methods(http.MethodPost)
	r.HandleFunc("/posts/update_post/{id}", b.authed(b.updatePost)).Methods(http.MethodPatch)
	r.HandleFunc("/posts/delete_post/{id}", b.authed(b.deletePost)).Methods(http.MethodDelete)
	r.HandleFunc("/admin/users/deleted", b.admin(b.listDeleted)).Methods(http.MethodGet)
	r.HandleFunc("/admin/users/promote_to_admin/{id}", b.admin(b.setAdmin(true))).Methods(http.MethodPatch)
	r.HandleFunc("/admin/users/demote_from_admin/{id}", b.admin(b.setAdmin(false))).Methods(http.MethodPatch)
	r.HandleFunc("/admin/users/delete/{id}", b.admin(b.deleteUser)).Methods(http.MethodDelete)

	srv := httptest.NewServer(root)
	t.Cleanup(srv.Close)
	return srv
}

// revoke drops every server-side session.
func (b *fakeBackend) revoke() {
	b.mu.Lock()
	b.sessions = map[string]int64{}
	b.mu.Unlock()
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func data(w http.ResponseWriter, v any) {
	reply(w, http.StatusOK, map[string]any{"message": "ok", "status_code": 200, "data": v})
}

func detail(w http.ResponseWriter, status int, msg string) {
	reply(w, status, map[string]any{"detail": msg})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

type handler func(w http.ResponseWriter, r *http.Request, uid int64)

func (b *fakeBackend) authed(h handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("access_token")
		b.mu.Lock()
		uid, ok := int64(0), false
		if err == nil {
			uid, ok = b.sessions[c.Value]
		}
		b.mu.Unlock()
		if !ok {
			detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		h(w, r, uid)
	}
}

func (b *fakeBackend) admin(h handler) http.HandlerFunc {
	return b.authed(func(w http.ResponseWriter, r *http.Request, uid int64) {
		b.mu.Lock()
		isAdmin := b.users[uid].IsAdmin
		b.mu.Unlock()
		if !isAdmin {
			detail(w, http.StatusForbidden, "Admin rights required")
			return
		}
		h(w, r, uid)
	})
}

func (b *fakeBackend) signIn(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	_ = json.NewDecoder(r.Body).Decode(&c)

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, u := range b.users {
		if u.Email == c.Email && c.Password == "pw" && b.active[id] {
			token := "tok-" + strconv.FormatInt(id, 10) + "-" + strconv.Itoa(len(b.sessions))
			b.sessions[token] = id
			http.SetCookie(w, &http.Cookie{Name: "access_token", Value: token, Path: "/", HttpOnly: true})
			data(w, u)
			return
		}
	}
	detail(w, http.StatusUnauthorized, "Invalid email or password")
}

func (b *fakeBackend) signUp(w http.ResponseWriter, r *http.Request) {
	var s models.SignUp
	_ = json.NewDecoder(r.Body).Decode(&s)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Email == s.Email {
			detail(w, http.StatusBadRequest, "Email already registered")
			return
		}
	}
	u := &models.Identity{ID: b.nextUser, Name: s.Name, Email: s.Email, Bio: s.Bio, Location: s.Location,
		CreatedAt: models.Timestamp{Time: time.Now().UTC()}}
	b.users[u.ID] = u
	b.active[u.ID] = true
	b.nextUser++
	data(w, u)
}

func (b *fakeBackend) logout(w http.ResponseWriter, r *http.Request) {
	if b.failLogout {
		detail(w, http.StatusInternalServerError, "logout exploded")
		return
	}
	if c, err := r.Cookie("access_token"); err == nil {
		b.mu.Lock()
		delete(b.sessions, c.Value)
		b.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
	reply(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

func (b *fakeBackend) me(w http.ResponseWriter, _ *http.Request, uid int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	reply(w, http.StatusOK, b.users[uid])
}

func (b *fakeBackend) updateMe(w http.ResponseWriter, r *http.Request, uid int64) {
	var upd models.ProfileUpdate
	_ = json.NewDecoder(r.Body).Decode(&upd)

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[uid]
	out := map[string]any{"id": uid}
	if upd.Name != nil {
		u.Name, out["name"] = *upd.Name, *upd.Name
	}
	if upd.Email != nil {
		u.Email, out["email"] = *upd.Email, *upd.Email
	}
	if upd.Bio != nil {
		u.Bio, out["bio"] = *upd.Bio, *upd.Bio
	}
	if upd.Location != nil {
		u.Location, out["location"] = *upd.Location, *upd.Location
	}
	data(w, out)
}

func (b *fakeBackend) postsOf(uid int64) []models.Post {
	out := []models.Post{}
	for _, p := range b.posts {
		if p.UserID == uid {
			out = append(out, p)
		}
	}
	return out
}

func (b *fakeBackend) myPosts(w http.ResponseWriter, _ *http.Request, uid int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data(w, b.postsOf(uid))
}

func (b *fakeBackend) myPost(w http.ResponseWriter, r *http.Request, uid int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findPost(pathID(r))
	if i < 0 || b.posts[i].UserID != uid {
		detail(w, http.StatusNotFound, "Post not found")
		return
	}
	data(w, b.posts[i])
}

func (b *fakeBackend) summary(id int64) models.UserSummary {
	u := b.users[id]
	return models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Location: u.Location, IsAdmin: u.IsAdmin, IsActive: b.active[id]}
}

func (b *fakeBackend) listUsers(w http.ResponseWriter, _ *http.Request, _ int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.UserSummary{}
	for id := int64(1); id < b.nextUser; id++ {
		if b.active[id] {
			out = append(out, b.summary(id))
		}
	}
	data(w, out)
}

func (b *fakeBackend) getUser(w http.ResponseWriter, r *http.Request, _ int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[pathID(r)]
	if !ok {
		detail(w, http.StatusNotFound, "User not found")
		return
	}
	data(w, models.Profile{Identity: *u, Posts: b.postsOf(u.ID)})
}

func (b *fakeBackend) listPosts(w http.ResponseWriter, _ *http.Request, _ int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Post, 0, len(b.posts))
	for i := len(b.posts) - 1; i >= 0; i-- {
		out = append(out, b.posts[i])
	}
	data(w, out)
}

func (b *fakeBackend) findPost(id int64) int {
	for i, p := range b.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (b *fakeBackend) getPost(w http.ResponseWriter, r *http.Request, _ int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findPost(pathID(r))
	if i < 0 {
		detail(w, http.StatusNotFound, "Post not found")
		return
	}
	data(w, b.posts[i])
}

func (b *fakeBackend) createPost(w http.ResponseWriter, r *http.Request, uid int64) {
	var pc models.PostContent
	_ = json.NewDecoder(r.Body).Decode(&pc)

	b.mu.Lock()
	defer b.mu.Unlock()
	p := models.Post{ID: b.nextPost, UserID: uid, Content: pc.Content, UserName: b.users[uid].Name,
		CreatedAt: models.Timestamp{Time: time.Now().UTC()}}
	b.nextPost++
	b.posts = append(b.posts, p)
	data(w, p)
}

func (b *fakeBackend) updatePost(w http.ResponseWriter, r *http.Request, uid int64) {
	var pc models.PostContent
	_ = json.NewDecoder(r.Body).Decode(&pc)

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findPost(pathID(r))
	if i < 0 || b.posts[i].UserID != uid {
		detail(w, http.StatusNotFound, "Post not found")
		return
	}
	b.posts[i].Content = pc.Content
	data(w, map[string]any{"id": b.posts[i].ID, "content": pc.Content})
}

func (b *fakeBackend) deletePost(w http.ResponseWriter, r *http.Request, uid int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findPost(pathID(r))
	if i < 0 || b.posts[i].UserID != uid {
		detail(w, http.StatusNotFound, "Post not found")
		return
	}
	b.posts = append(b.posts[:i], b.posts[i+1:]...)
	reply(w, http.StatusOK, map[string]any{"message": "Post deleted"})
}

func (b *fakeBackend) listDeleted(w http.ResponseWriter, _ *http.Request, _ int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.UserSummary{}
	for id := int64(1); id < b.nextUser; id++ {
		if !b.active[id] {
			s := b.summary(id)
			s.DeletionReason = b.reasons[id]
			s.DeletedAt = &models.Timestamp{Time: time.Now().UTC()}
			out = append(out, s)
		}
	}
	data(w, out)
}

func (b *fakeBackend) setAdmin(v bool) handler {
	return func(w http.ResponseWriter, r *http.Request, _ int64) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.users[pathID(r)]
		if !ok {
			detail(w, http.StatusNotFound, "User not found")
			return
		}
		u.IsAdmin = v
		data(w, map[string]any{"id": u.ID, "is_admin": v})
	}
}

func (b *fakeBackend) deleteUser(w http.ResponseWriter, r *http.Request, _ int64) {
	var body models.DeleteReason
	_ = json.NewDecoder(r.Body).Decode(&body)
	if strings.TrimSpace(body.Reason) == "" {
		reply(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "reason"}, "msg": "field required", "type": "missing"}},
		})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r)
	if !b.active[id] {
		detail(w, http.StatusNotFound, "User not found")
		return
	}
	b.active[id] = false
	b.reasons[id] = body.Reason
	reply(w, http.StatusOK, map[string]any{"message": "User deleted"})
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *syncBuffer) Reset() {
	s.mu.Lock()
	s.buf.Reset()
	s.mu.Unlock()
}

package stores

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/socialprofile/internal/client/client"
	"github.com/dmitrijs2005/socialprofile/internal/client/models"
	"github.com/dmitrijs2005/socialprofile/internal/logging"
)

// AdminGate is the client-side privilege check run before every admin call.
type AdminGate interface {
	RequireAdmin() error
}

// Admin holds the moderation view: active users and deleted users.
type Admin struct {
	tracker

	api  client.Client
	gate AdminGate
	log  logging.Logger

	users   []models.UserSummary
	deleted []models.UserSummary
}

func NewAdmin(api client.Client, gate AdminGate, log logging.Logger) *Admin {
	if log == nil {
		log = logging.Nop()
	}
	return &Admin{api: api, gate: gate, log: log}
}

// ListUsers replaces the active list.
func (a *Admin) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	if err := a.gate.RequireAdmin(); err != nil {
		return nil, a.fail(err)
	}
	return a.listUsers(ctx)
}

func (a *Admin) listUsers(ctx context.Context) (users []models.UserSummary, err error) {
	a.start()
	defer func() { a.finish(err) }()

	users, err = a.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.users = append([]models.UserSummary(nil), users...)
	a.mu.Unlock()
	return users, nil
}

// Promote grants admin rights and merges the reply into the active list.
func (a *Admin) Promote(ctx context.Context, id int64) error {
	if err := a.gate.RequireAdmin(); err != nil {
		return a.fail(err)
	}
	return a.changeRole(ctx, id, a.api.PromoteToAdmin)
}

// Demote revokes admin rights and merges the reply into the active list.
func (a *Admin) Demote(ctx context.Context, id int64) error {
	if err := a.gate.RequireAdmin(); err != nil {
		return a.fail(err)
	}
	return a.changeRole(ctx, id, a.api.DemoteFromAdmin)
}

func (a *Admin) changeRole(ctx context.Context, id int64, call func(context.Context, int64) (json.RawMessage, error)) (err error) {
	a.start()
	defer func() { a.finish(err) }()

	raw, err := call(ctx, id)
	if err != nil {
		return err
	}

	if mergeErr := a.merge(id, raw); mergeErr != nil {
		a.log.Warn(ctx, "merging role change failed, reloading users", "user_id", id, "error", mergeErr)
		a.reload(ctx)
	}
	return nil
}

func (a *Admin) merge(id int64, raw json.RawMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.users {
		if a.users[i].ID != id {
			continue
		}
		merged, err := models.Merge(a.users[i], raw)
		if err != nil {
			return err
		}
		a.users[i] = merged
		return nil
	}
	return nil
}

// reload replaces the active list without touching the busy flag or last
// error.
func (a *Admin) reload(ctx context.Context) {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		a.log.Warn(ctx, "reloading users failed", "error", err)
		return
	}
	a.mu.Lock()
	a.users = append([]models.UserSummary(nil), users...)
	a.mu.Unlock()
}

// Delete removes the account with the given reason, drops it from the active
// list and then reloads the deleted list.
func (a *Admin) Delete(ctx context.Context, id int64, reason string) error {
	if err := a.gate.RequireAdmin(); err != nil {
		return a.fail(err)
	}
	if err := a.deleteUser(ctx, id, reason); err != nil {
		return err
	}
	_, err := a.fetchDeleted(ctx)
	return err
}

func (a *Admin) deleteUser(ctx context.Context, id int64, reason string) (err error) {
	a.start()
	defer func() { a.finish(err) }()

	if err := a.api.DeleteUser(ctx, id, reason); err != nil {
		return err
	}

	a.mu.Lock()
	kept := a.users[:0:0]
	for _, u := range a.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	a.users = kept
	a.mu.Unlock()

	a.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// FetchDeleted replaces the deleted list.
func (a *Admin) FetchDeleted(ctx context.Context) ([]models.UserSummary, error) {
	if err := a.gate.RequireAdmin(); err != nil {
		return nil, a.fail(err)
	}
	return a.fetchDeleted(ctx)
}

func (a *Admin) fetchDeleted(ctx context.Context) (users []models.UserSummary, err error) {
	a.start()
	defer func() { a.finish(err) }()

	users, err = a.api.ListDeletedUsers(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.deleted = append([]models.UserSummary(nil), users...)
	a.mu.Unlock()
	return users, nil
}

// Initialize loads the active list and then the deleted list.
func (a *Admin) Initialize(ctx context.Context) error {
	if _, err := a.ListUsers(ctx); err != nil {
		return err
	}
	_, err := a.FetchDeleted(ctx)
	return err
}

// Search filters the active list by name, email or location, ignoring case.
// An empty query returns the whole list. No network call is made.
func (a *Admin) Search(query string) []models.UserSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.UserSummary, 0, len(a.users))
	for _, u := range a.users {
		if query == "" || u.Matches(query) {
			out = append(out, u)
		}
	}
	return out
}

func (a *Admin) Users() []models.UserSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.UserSummary(nil), a.users...)
}

func (a *Admin) DeletedUsers() []models.UserSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.UserSummary(nil), a.deleted...)
}

func (a *Admin) Reset() {
	a.mu.Lock()
	a.users = nil
	a.deleted = nil
	a.loading = false
	a.lastErr = ""
	a.mu.Unlock()
}

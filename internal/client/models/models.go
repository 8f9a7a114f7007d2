// Package models defines the records the client mirrors from the backend.
// JSON names follow the backend's wire format.
package models

import (
	"strings"
	"unicode"
)

// Identity is the signed-in user's profile.
type Identity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	CreatedAt Timestamp `json:"created_at"`
	IsAdmin   bool      `json:"is_admin"`
}

// Post is a feed entry. UserName and UserEmail are filled by the feed
// endpoints only.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
}

// UserSummary is a row of the admin user lists. DeletedAt is set for
// soft-deleted users only.
type UserSummary struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Location       string     `json:"location"`
	IsAdmin        bool       `json:"is_admin"`
	IsActive       bool       `json:"is_active"`
	DeletedAt      *Timestamp `json:"deleted_at,omitempty"`
	DeletionReason string     `json:"deletion_reason,omitempty"`
}

// Matches reports whether name, email or location contains q, ignoring case.
func (u UserSummary) Matches(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(strings.ToLower(u.Location), q)
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(w)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// Profile is a public user profile together with the user's posts.
type Profile struct {
	Identity
	Posts []Post `json:"posts"`
}

// Credentials is the sign-in request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp is the registration request body.
type SignUp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
}

// ProfileUpdate carries the fields to change; nil fields are not sent.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Empty reports whether no field is set.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Bio == nil && u.Location == nil
}

// PostContent is the create/update post request body.
type PostContent struct {
	Content string `json:"content"`
}

// DeleteReason is the admin delete-user request body.
type DeleteReason struct {
	Reason string `json:"reason"`
}

// Package stores holds the client-side application state: the signed-in
// identity (Session), the post feed (Posts) and the moderation lists (Admin).
//
// Stores are plain objects built once by the caller and shared by reference.
// Each action marks the store busy, clears the previous error, calls the
// backend, mutates local state and records the failure message, if any, for
// display via LastError. Reads return copies and are safe for concurrent use.
package stores

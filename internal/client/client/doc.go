// Package client talks to the social-profile REST backend.
//
// # Overview
//
// The package provides:
//  1. The Client interface: the endpoint set used by the stores (sign-in,
//     profile, posts, admin moderation).
//  2. HTTPClient, a net/http implementation. Every call gets JSON headers,
//     an X-Request-ID, the session cookies and a fixed timeout. Success
//     payloads are unwrapped from the {"data": ...} envelope.
//  3. PersistentJar, a cookie jar persisted in the local metadata store so a
//     session survives restarts.
//  4. Local database bootstrap (InitDatabase, RunMigrations) using SQLite and
//     embedded goose migrations.
//
// # Error Handling
//
// Non-2xx replies surface as *APIError carrying the backend message (first of
// detail, message, error) or "<status>: <statusText>". Match classes with
// errors.Is: ErrUnauthorized (401/403), ErrNotFound, ErrTimeout,
// ErrUnavailable. Nothing is retried.
package client

package stores

import "errors"

var (
	// ErrValidation is returned before any network call when required input is missing.
	ErrValidation = errors.New("validation failed")
	// ErrNotAuthenticated is returned by actions that need a signed-in session.
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrAdminRequired is the client-side admin gate. It only hides actions;
	// the server decides what an account may do.
	ErrAdminRequired = errors.New("administrator rights required")
)

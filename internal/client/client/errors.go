package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrTimeout      = errors.New("request timed out")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// ErrUnexpectedBody is a 2xx reply a typed endpoint cannot decode.
	ErrUnexpectedBody = errors.New("unexpected response body")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets callers match status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// ErrorResponse is the backend's error body. Detail is either a string or,
// for request validation failures, a list of ValidationIssue.
type ErrorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Err     string          `json:"error"`
}

// ValidationIssue is one entry of a validation-failure detail list.
type ValidationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// Text returns the first non-empty of detail, message and error.
func (r ErrorResponse) Text() string {
	if d := detailText(r.Detail); d != "" {
		return d
	}
	if r.Message != "" {
		return r.Message
	}
	return r.Err
}

func detailText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var issues []ValidationIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		parts := make([]string, 0, len(issues))
		for _, issue := range issues {
			loc := make([]string, 0, len(issue.Loc))
			for _, l := range issue.Loc {
				loc = append(loc, fmt.Sprint(l))
			}
			if len(loc) > 0 {
				parts = append(parts, strings.Join(loc, ".")+": "+issue.Msg)
			} else {
				parts = append(parts, issue.Msg)
			}
		}
		return strings.Join(parts, "; ")
	}

	return string(raw)
}

// newAPIError builds the error for a non-2xx response. When the body does
// not carry a usable message the "<status>: <statusText>" form is used.
func newAPIError(status int, statusText string, body []byte) *APIError {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if msg := er.Text(); msg != "" {
			return &APIError{Status: status, Message: msg}
		}
	}
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	return &APIError{Status: status, Message: fmt.Sprintf("%d: %s", status, statusText)}
}

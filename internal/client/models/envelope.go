package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the backend's success wrapper: the payload sits under "data".
type Envelope struct {
	Message    string          `json:"message,omitempty"`
	StatusCode int             `json:"status_code,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// Unwrap returns the raw payload of body. Bodies without a "data" key are
// returned whole, since some endpoints answer with the bare record.
func Unwrap(body []byte) json.RawMessage {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return body
	}
	data, ok := probe["data"]
	if !ok {
		return body
	}
	return data
}

// DecodeData unwraps body and decodes the payload into T. The raw payload is
// returned as well so callers can shallow-merge it into local state.
func DecodeData[T any](body []byte) (T, json.RawMessage, error) {
	var v T
	raw := Unwrap(body)
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v, raw, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, raw, fmt.Errorf("decode payload: %w", err)
	}
	return v, raw, nil
}

// Merge overlays the keys present in patch onto dst, the same way a
// {...dst, ...patch} spread would. Keys absent from patch keep their value.
func Merge[T any](dst T, patch json.RawMessage) (T, error) {
	trimmed := bytes.TrimSpace(patch)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return dst, nil
	}

	base, err := json.Marshal(dst)
	if err != nil {
		return dst, fmt.Errorf("merge: %w", err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return dst, fmt.Errorf("merge: %w", err)
	}

	var over map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &over); err != nil {
		return dst, fmt.Errorf("merge: %w", err)
	}
	for k, v := range over {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return dst, fmt.Errorf("merge: %w", err)
	}

	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return dst, fmt.Errorf("merge: %w", err)
	}
	return out, nil
}

package stores

import "sync"

// tracker carries the busy flag and last error message shared by all stores.
// mu also guards the embedding store's own fields.
type tracker struct {
	mu      sync.RWMutex
	loading bool
	lastErr string
}

func (t *tracker) start() {
	t.mu.Lock()
	t.loading = true
	t.lastErr = ""
	t.mu.Unlock()
}

func (t *tracker) finish(err error) {
	t.mu.Lock()
	t.loading = false
	if err != nil {
		t.lastErr = err.Error()
	}
	t.mu.Unlock()
}

// fail records err without touching the busy flag.
func (t *tracker) fail(err error) error {
	t.mu.Lock()
	t.lastErr = err.Error()
	t.mu.Unlock()
	return err
}

// IsLoading reports whether an action is in flight.
func (t *tracker) IsLoading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading
}

// LastError is the message of the most recent failed action, or "".
func (t *tracker) LastError() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastErr
}

func (t *tracker) ClearError() {
	t.mu.Lock()
	t.lastErr = ""
	t.mu.Unlock()
}

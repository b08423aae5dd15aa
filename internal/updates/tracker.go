// Package updates tracks the newest known upstream activity per user. The
// webhook endpoint feeds it; the update-check poll stream reads it.
package updates

import (
	"context"
	"sync"
	"time"
)

// Tracker is an in-memory last-activity register. It is deliberately not
// persisted: after a restart the first full refresh rebuilds all state the
// tracker could have pointed at.
type Tracker struct {
	mu      sync.RWMutex
	byLogin map[string]time.Time
}

// NewTracker constructs an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{byLogin: make(map[string]time.Time)}
}

// Record notes upstream activity for login at the given time. Older
// timestamps than the recorded one are ignored.
func (t *Tracker) Record(login string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.byLogin[login]; ok && !at.After(cur) {
		return
	}
	t.byLogin[login] = at
}

// LastActivity returns the newest recorded activity for login; the zero
// time when none was recorded.
func (t *Tracker) LastActivity(_ context.Context, login string) (time.Time, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byLogin[login], nil
}

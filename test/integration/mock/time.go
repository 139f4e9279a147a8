package mock

import (
	"sync"
	"time"
)

// Time is a clock that can be pinned to a moment and keeps ticking from there.
type Time struct {
	mu        sync.RWMutex
	pinnedAt  time.Time
	startedAt time.Time
}

// NewTime creates a controllable clock.
func NewTime() *Time {
	now := time.Now()
	return &Time{pinnedAt: now, startedAt: now}
}

// SetCurrentTime moves the clock to currentTime; it keeps ticking from there.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinnedAt = currentTime
	t.startedAt = time.Now()
}

// Reset makes the clock follow the wall clock again.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

// Now returns the pinned time plus the wall time elapsed since it was set.
func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pinnedAt.Add(time.Since(t.startedAt))
}

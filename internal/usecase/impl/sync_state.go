// Package impl contains the application-specific business rules implementations.
package impl

import (
	"sync"
	"time"
)

// sessionSyncState tracks how far a session has progressed through the
// guest-cart merge. Transitions only move forward: idle -> syncing ->
// synced. A failed merge still lands on synced, so a broken merge is
// never retried automatically; only a session reset returns to idle.
type sessionSyncState int

const (
	syncStateIdle sessionSyncState = iota
	syncStateSyncing
	syncStateSynced
)

const (
	// syncStateTTL bounds how long a session's merge state is remembered.
	// An expired entry reads as idle again, which is safe: a completed
	// merge already deleted the guest cart, so a re-run finds nothing
	// to merge.
	syncStateTTL = 24 * time.Hour

	// syncPruneInterval limits how often begin scans for expired entries.
	syncPruneInterval = time.Hour
)

// syncEntry pairs a session's merge state with its last transition time,
// so stale sessions can be expired.
type syncEntry struct {
	state     sessionSyncState
	touchedAt time.Time
}

// syncTracker records the merge state of every session seen by this
// process. It guarantees the at-most-once property of the login merge.
// Entries expire after syncStateTTL so sessions that never log out do
// not accumulate forever.
type syncTracker struct {
	mu        sync.Mutex
	sessions  map[string]syncEntry
	lastPrune time.Time
	now       func() time.Time
}

func newSyncTracker() *syncTracker {
	return &syncTracker{
		sessions: make(map[string]syncEntry),
		now:      time.Now,
	}
}

// begin attempts the idle -> syncing transition. It returns false when the
// session is already syncing or synced, in which case the caller must skip
// the merge.
func (t *syncTracker) begin(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.pruneLocked(now)

	if entry, ok := t.sessions[sessionID]; ok && now.Sub(entry.touchedAt) <= syncStateTTL && entry.state != syncStateIdle {
		return false
	}
	t.sessions[sessionID] = syncEntry{state: syncStateSyncing, touchedAt: now}

	return true
}

// finish moves the session to synced. Called on both success and failure.
func (t *syncTracker) finish(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessions[sessionID] = syncEntry{state: syncStateSynced, touchedAt: t.now()}
}

// reset returns the session to idle, typically on logout.
func (t *syncTracker) reset(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.sessions, sessionID)
}

// state reports the session's current merge state. Expired entries read
// as idle.
func (t *syncTracker) state(sessionID string) sessionSyncState {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.sessions[sessionID]
	if !ok || t.now().Sub(entry.touchedAt) > syncStateTTL {
		return syncStateIdle
	}

	return entry.state
}

// pruneLocked drops entries older than syncStateTTL, at most once per
// syncPruneInterval. Caller must hold the lock.
func (t *syncTracker) pruneLocked(now time.Time) {
	if now.Sub(t.lastPrune) < syncPruneInterval {
		return
	}
	t.lastPrune = now

	for sessionID, entry := range t.sessions {
		if now.Sub(entry.touchedAt) > syncStateTTL {
			delete(t.sessions, sessionID)
		}
	}
}

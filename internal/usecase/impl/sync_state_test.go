package impl

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncTracker_Transitions(t *testing.T) {
	tracker := newSyncTracker()

	assert.Equal(t, syncStateIdle, tracker.state("s1"))
	assert.True(t, tracker.begin("s1"))
	assert.Equal(t, syncStateSyncing, tracker.state("s1"))

	// begin is not reentrant while syncing.
	assert.False(t, tracker.begin("s1"))

	tracker.finish("s1")
	assert.Equal(t, syncStateSynced, tracker.state("s1"))
	assert.False(t, tracker.begin("s1"))

	tracker.reset("s1")
	assert.Equal(t, syncStateIdle, tracker.state("s1"))
	assert.True(t, tracker.begin("s1"))
}

func TestSyncTracker_SessionsAreIndependent(t *testing.T) {
	tracker := newSyncTracker()

	assert.True(t, tracker.begin("s1"))
	assert.True(t, tracker.begin("s2"))
	tracker.finish("s1")

	assert.Equal(t, syncStateSynced, tracker.state("s1"))
	assert.Equal(t, syncStateSyncing, tracker.state("s2"))
}

func TestSyncTracker_ExpiredEntriesArePruned(t *testing.T) {
	tracker := newSyncTracker()
	now := time.Now()
	tracker.now = func() time.Time { return now }

	for _, id := range []string{"s1", "s2", "s3"} {
		assert.True(t, tracker.begin(id))
		tracker.finish(id)
	}
	assert.Len(t, tracker.sessions, 3)

	// Past the TTL the entries read as idle and the next begin drops them.
	now = now.Add(syncStateTTL + time.Minute)
	assert.Equal(t, syncStateIdle, tracker.state("s1"))
	assert.True(t, tracker.begin("s4"))
	assert.Len(t, tracker.sessions, 1)
}

func TestSyncTracker_FreshEntriesSurvivePruning(t *testing.T) {
	tracker := newSyncTracker()
	now := time.Now()
	tracker.now = func() time.Time { return now }

	assert.True(t, tracker.begin("old"))
	tracker.finish("old")

	now = now.Add(syncStateTTL - time.Hour)
	assert.True(t, tracker.begin("fresh"))
	tracker.finish("fresh")

	now = now.Add(2 * time.Hour)
	assert.True(t, tracker.begin("trigger"))

	assert.Equal(t, syncStateIdle, tracker.state("old"))
	assert.Equal(t, syncStateSynced, tracker.state("fresh"))
}

func TestSyncTracker_ConcurrentBeginAdmitsOne(t *testing.T) {
	tracker := newSyncTracker()

	const goroutines = 32
	var wg sync.WaitGroup
	admitted := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.begin("shared") {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	assert.Len(t, admitted, 1)
}

package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rangecal/internal/picker"
)

// session wraps one picker. A Picker is single-owner, so every access goes
// through mu.
type session struct {
	mu       sync.Mutex
	picker   *picker.Picker
	lastSeen time.Time
}

// sessionStore keeps live pickers in memory only; nothing outlives the process.
type sessionStore struct {
	mu   sync.RWMutex
	byID map[string]*session
	now  func() time.Time
}

func newSessionStore(now func() time.Time) *sessionStore {
	return &sessionStore{
		byID: make(map[string]*session),
		now:  now,
	}
}

func newSessionID() string {
	return uuid.NewString()
}

func (st *sessionStore) put(id string, p *picker.Picker) {
	st.mu.Lock()
	st.byID[id] = &session{picker: p, lastSeen: st.now()}
	st.mu.Unlock()
}

// with runs fn on the picker under its session lock and refreshes lastSeen.
func (st *sessionStore) with(id string, fn func(*picker.Picker)) bool {
	st.mu.RLock()
	sess, ok := st.byID[id]
	st.mu.RUnlock()
	if !ok {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = st.now()
	fn(sess.picker)
	return true
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.byID[id]; !ok {
		return false
	}
	delete(st.byID, id)
	return true
}

func (st *sessionStore) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}

// sweep drops sessions untouched for longer than idle and returns how many
// were removed.
func (st *sessionStore) sweep(idle time.Duration) int {
	cutoff := st.now().Add(-idle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.byID {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(st.byID, id)
			removed++
		}
	}
	return removed
}

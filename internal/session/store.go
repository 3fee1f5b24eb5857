package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/ScreenSense/internal/shared/types"
)

// ErrNotFound is returned when an operation names an unknown session.
var ErrNotFound = fmt.Errorf("session: not found")

// entry pairs a session with its lock. The lock serializes append+render
// sequences so concurrent screenshots for one session cannot interleave.
type entry struct {
	mu sync.Mutex
	s  *types.Session
}

// Store is the in-memory session registry.
type Store struct {
	sessions sync.Map // id -> *entry
}

// NewStore creates an empty registry.
func NewStore() *Store {
	return &Store{}
}

// Update runs fn against the named session under its lock, creating the
// session on first use. fn may mutate the session freely; the store never
// copies it.
func (st *Store) Update(id string, fn func(*types.Session) error) error {
	e := st.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// Modify runs fn against an existing session under its lock. Unknown ids
// return ErrNotFound instead of creating a session.
func (st *Store) Modify(id string, fn func(*types.Session) error) error {
	val, ok := st.sessions.Load(id)
	if !ok {
		return ErrNotFound
	}
	e := val.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// View is Modify for readers: fn must treat the session as read-only.
func (st *Store) View(id string, fn func(*types.Session) error) error {
	return st.Modify(id, fn)
}

// Append adds a screenshot to the named session, creating it on first use.
func (st *Store) Append(id string, shot *types.Screenshot) *types.Session {
	var snapshot *types.Session
	_ = st.Update(id, func(s *types.Session) error {
		s.Screenshots = append(s.Screenshots, shot)
		snapshot = s
		return nil
	})
	return snapshot
}

// Remove deletes a session from the registry and returns it so the caller
// can dispose of its artifacts. Removal only ever happens explicitly.
func (st *Store) Remove(id string) (*types.Session, bool) {
	val, ok := st.sessions.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	return val.(*entry).s, true
}

// RemoveAll empties the registry and returns every removed session.
func (st *Store) RemoveAll() []*types.Session {
	var removed []*types.Session
	st.sessions.Range(func(key, val any) bool {
		if v, ok := st.sessions.LoadAndDelete(key); ok {
			removed = append(removed, v.(*entry).s)
		}
		return true
	})
	return removed
}

// Stats counts sessions and screenshots currently held.
func (st *Store) Stats() types.StoreStats {
	var stats types.StoreStats
	st.sessions.Range(func(_, val any) bool {
		e := val.(*entry)
		e.mu.Lock()
		stats.Sessions++
		stats.Screenshots += len(e.s.Screenshots)
		e.mu.Unlock()
		return true
	})
	return stats
}

// entryFor loads or creates the entry for a session id.
func (st *Store) entryFor(id string) *entry {
	if val, ok := st.sessions.Load(id); ok {
		return val.(*entry)
	}
	fresh := &entry{s: &types.Session{
		ID:        id,
		CreatedAt: time.Now(),
	}}
	val, _ := st.sessions.LoadOrStore(id, fresh)
	return val.(*entry)
}

// Package store holds the bookmarked viewpoints of the running session.
package store

import (
	"github.com/viewmarks/extension/pkg/core"
)

// Store is the in-memory slot to viewpoint mapping. It records whether any
// save or clear happened so the owner only re-serializes when needed.
//
// A Store is not safe for concurrent use; it belongs to the tick goroutine.
type Store struct {
	views   core.ShortcutMap
	changed bool
}

// New creates an empty store.
func New() *Store {
	return &Store{views: make(core.ShortcutMap)}
}

// Save stores vp in slot, overwriting any previous bookmark there.
func (s *Store) Save(slot int, vp core.Viewpoint) {
	s.views[slot] = vp
	s.changed = true
}

// Get returns the bookmark in slot.
func (s *Store) Get(slot int) (core.Viewpoint, bool) {
	vp, ok := s.views[slot]
	return vp, ok
}

// Has reports whether slot holds a bookmark.
func (s *Store) Has(slot int) bool {
	_, ok := s.views[slot]
	return ok
}

// Clear removes the bookmark in slot. It reports whether there was one.
func (s *Store) Clear(slot int) bool {
	if _, ok := s.views[slot]; !ok {
		return false
	}
	delete(s.views, slot)
	s.changed = true
	return true
}

// ClearAll removes every bookmark and returns how many were removed.
func (s *Store) ClearAll() int {
	n := len(s.views)
	if n == 0 {
		return 0
	}
	s.views = make(core.ShortcutMap)
	s.changed = true
	return n
}

// Replace swaps the contents for a freshly loaded map. Loading is not a
// change: the data already matches what is persisted, so any pending change
// from before the load is dropped with the old contents.
func (s *Store) Replace(m core.ShortcutMap) {
	s.views = m.Clone()
	s.changed = false
}

// Snapshot returns a copy of the current bookmarks.
func (s *Store) Snapshot() core.ShortcutMap {
	return s.views.Clone()
}

// Slots returns the occupied slots in ascending order.
func (s *Store) Slots() []int {
	return s.views.Slots()
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.views)
}

// ConsumeChanged reports whether the bookmarks changed since the last call
// and resets the flag.
func (s *Store) ConsumeChanged() bool {
	changed := s.changed
	s.changed = false
	return changed
}

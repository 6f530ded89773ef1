// Package catalog holds the in-memory hunts snapshot and the pure
// filter/sort/search/statistics functions over it. A snapshot is an
// immutable value built once per index load; every derived view is a
// freshly allocated slice, never a mutation of the backing records.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/thorcollective/hearth/internal/models"
)

// Snapshot is an immutable view of the full hunts collection plus derived
// sets that are expensive enough to cache: the distinct tactic and tag
// vocabularies used to populate selection controls. Both reflect the full
// collection (never a filtered view) and are deduplicated and sorted so
// they are deterministic across reloads.
type Snapshot struct {
	hunts   []models.Hunt
	byID    map[string]int
	tactics []string
	tags    []string
}

// NewSnapshot builds a snapshot from the given records. The slice is
// copied; callers may reuse theirs.
func NewSnapshot(hunts []models.Hunt) *Snapshot {
	s := &Snapshot{
		hunts: make([]models.Hunt, len(hunts)),
		byID:  make(map[string]int, len(hunts)),
	}
	copy(s.hunts, hunts)

	tacticSet := make(map[string]struct{})
	tagSet := make(map[string]struct{})
	for i := range s.hunts {
		h := &s.hunts[i]
		s.byID[h.ID] = i
		for _, t := range h.Tactics() {
			tacticSet[t] = struct{}{}
		}
		for _, tag := range h.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				tagSet[tag] = struct{}{}
			}
		}
	}
	s.tactics = sortedKeys(tacticSet)
	s.tags = sortedKeys(tagSet)
	return s
}

// Hunts returns a copy of all records.
func (s *Snapshot) Hunts() []models.Hunt {
	out := make([]models.Hunt, len(s.hunts))
	copy(out, s.hunts)
	return out
}

// Len returns the number of records.
func (s *Snapshot) Len() int { return len(s.hunts) }

// Get looks up one hunt by id.
func (s *Snapshot) Get(id string) (models.Hunt, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Hunt{}, false
	}
	return s.hunts[i], true
}

// Tactics returns the cached distinct tactic names, sorted.
func (s *Snapshot) Tactics() []string { return s.tactics }

// Tags returns the cached distinct tag names, sorted.
func (s *Snapshot) Tags() []string { return s.tags }

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Store holds the current snapshot. The snapshot itself is immutable; the
// store only swaps the pointer when a sync produces a new one, so readers
// never observe a partially updated catalog.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates an empty, not-ready store.
func NewStore() *Store { return &Store{} }

// Ready reports whether a snapshot has been loaded.
func (st *Store) Ready() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap != nil
}

// Current returns the current snapshot, or nil before the first load.
func (st *Store) Current() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap
}

// Swap replaces the current snapshot.
func (st *Store) Swap(snap *Snapshot) {
	st.mu.Lock()
	st.snap = snap
	st.mu.Unlock()
}

package participation

import (
	"sort"
	"sync"

	"collabcore/internal/model"
)

// Selection is a set of participation keys (see model.Participation.Key).
// It is independent of pagination: keys stay selected whatever page is displayed.
type Selection struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{keys: map[string]struct{}{}}
}

// Toggle flips key and reports whether it is now selected.
func (s *Selection) Toggle(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *Selection) IsSelected(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// AllSelected reports whether list is non-empty and every entry of it is selected.
func (s *Selection) AllSelected(list []model.Participation) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allSelected(list)
}

func (s *Selection) allSelected(list []model.Participation) bool {
	if len(list) == 0 {
		return false
	}
	for _, p := range list {
		if _, ok := s.keys[p.Key()]; !ok {
			return false
		}
	}
	return true
}

// SelectAllFiltered selects every entry of list, the whole filtered list and not one page of it.
// When all of them are already selected it deselects them instead.
func (s *Selection) SelectAllFiltered(list []model.Participation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allSelected(list) {
		for _, p := range list {
			delete(s.keys, p.Key())
		}
		return
	}
	for _, p := range list {
		s.keys[p.Key()] = struct{}{}
	}
}

func (s *Selection) Clear() {
	s.mu.Lock()
	s.keys = map[string]struct{}{}
	s.mu.Unlock()
}

func (s *Selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Keys returns the selected keys, sorted.
func (s *Selection) Keys() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}

// ParticipationIDs resolves the selection to participation record ids using list.
// Keys absent from list are skipped.
func (s *Selection) ParticipationIDs(list []model.Participation) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.keys))
	seen := make(map[string]struct{}, len(s.keys))
	for _, p := range list {
		if _, ok := s.keys[p.Key()]; !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids
}

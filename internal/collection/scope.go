package collection

import "sync/atomic"

// Scope tracks the project a set of engines currently serves.
// Requests are tagged with the scope at call time; a response whose tag no
// longer matches is stale and must not be written.
type Scope struct {
	current atomic.Pointer[string]
}

func NewScope(projectID string) *Scope {
	s := &Scope{}
	s.Set(projectID)
	return s
}

// Set switches the active project and returns the new tag.
func (s *Scope) Set(projectID string) string {
	s.current.Store(&projectID)
	return projectID
}

// Current returns the active project id, "" when none.
func (s *Scope) Current() string {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return ""
}

// Valid reports whether tag still designates the active project.
func (s *Scope) Valid(tag string) bool {
	return s.Current() == tag
}

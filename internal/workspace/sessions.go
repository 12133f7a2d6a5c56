package workspace

import (
	"context"
	"sort"
	"sync"

	"collabcore/internal/engine"
)

// Sessions is a caller-owned table of open workspaces keyed by project id.
// It is safe for concurrent use by multiple goroutines.
type Sessions struct {
	deps     engine.Deps
	pageSize int

	mu   sync.Mutex
	open map[string]*session
}

// session is one table entry. ready is closed once the first Open has finished;
// err is set before that when it failed.
type session struct {
	ws    *Workspace
	ready chan struct{}
	err   error
}

func (e *session) opened() bool {
	select {
	case <-e.ready:
		return e.err == nil
	default:
		return false
	}
}

func NewSessions(deps engine.Deps, pageSize int) *Sessions {
	return &Sessions{deps: deps, pageSize: pageSize, open: map[string]*session{}}
}

// Enter returns the workspace of projectID, building and opening it on first use.
// Concurrent callers for the same project wait for that first Open and share its outcome.
func (s *Sessions) Enter(ctx context.Context, projectID string) (*Workspace, error) {
	if projectID == "" {
		return nil, ErrProjectRequired
	}
	s.mu.Lock()
	e, ok := s.open[projectID]
	if !ok {
		e = &session{ws: New(projectID, s.deps, s.pageSize), ready: make(chan struct{})}
		s.open[projectID] = e
	}
	s.mu.Unlock()

	if ok {
		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}
		return e.ws, nil
	}

	if err := e.ws.Open(ctx); err != nil {
		e.err = err
		s.mu.Lock()
		if s.open[projectID] == e {
			delete(s.open, projectID)
		}
		s.mu.Unlock()
		e.ws.Close()
		close(e.ready)
		return nil, err
	}
	close(e.ready)
	return e.ws, nil
}

// Get returns the workspace of projectID once it has been opened.
func (s *Sessions) Get(projectID string) (*Workspace, bool) {
	s.mu.Lock()
	e, ok := s.open[projectID]
	s.mu.Unlock()
	if !ok || !e.opened() {
		return nil, false
	}
	return e.ws, true
}

// Leave closes and forgets the workspace of projectID. It reports whether one was open.
func (s *Sessions) Leave(projectID string) bool {
	s.mu.Lock()
	e, ok := s.open[projectID]
	delete(s.open, projectID)
	s.mu.Unlock()
	if ok {
		e.ws.Close()
	}
	return ok
}

// Projects lists the project ids with an open workspace, sorted.
func (s *Sessions) Projects() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.open))
	for id := range s.open {
		out = append(out, id)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}

// CloseAll closes every workspace.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	open := s.open
	s.open = map[string]*session{}
	s.mu.Unlock()
	for _, e := range open {
		e.ws.Close()
	}
}

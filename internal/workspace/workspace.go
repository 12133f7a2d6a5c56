// Package workspace bundles the phase, participation and notification engines of one
// project. A workspace is built when a project is entered and dropped when it is left;
// there is no process-wide instance.
package workspace

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"collabcore/internal/collection"
	"collabcore/internal/engine"
	"collabcore/internal/model"
	"collabcore/internal/notification"
	"collabcore/internal/participation"
	"collabcore/internal/phase"
	"collabcore/internal/transport"
)

var (
	ErrClosed          = errors.New("workspace is closed")
	ErrProjectRequired = errors.New("project id is required")
)

// Workspace is the per-project state of the console.
// Every engine shares one project scope, so responses that arrive after Retarget or
// Close are dropped instead of overwriting the state of another project.
type Workspace struct {
	Phases         *phase.Registry
	Participations *participation.Engine
	Notifications  *notification.Workflow
	Selection      *participation.Selection

	log    *slog.Logger
	scope  *collection.Scope
	closed atomic.Bool

	mu        sync.RWMutex
	projectID string
	filter    participation.Filter
	notifs    notification.Filter
}

// New builds a workspace for projectID. deps.Scope is replaced by the workspace's own scope.
func New(projectID string, deps engine.Deps, pageSize int) *Workspace {
	scope := collection.NewScope(projectID)
	deps.Scope = scope
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Workspace{
		Phases:         phase.NewRegistry(deps),
		Participations: participation.NewEngine(deps, pageSize),
		Notifications:  notification.NewWorkflow(deps),
		Selection:      participation.NewSelection(),
		log:            log.With("component", "workspace"),
		scope:          scope,
		projectID:      projectID,
	}
}

// ProjectID returns the project the workspace currently serves.
func (w *Workspace) ProjectID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.projectID
}

func (w *Workspace) Closed() bool {
	return w.closed.Load()
}

// Open loads phases, mentors, participations and the current notification page concurrently.
// Each load is fail-soft; only a closed workspace or a cancelled ctx is reported.
func (w *Workspace) Open(ctx context.Context) error {
	if w.Closed() {
		return ErrClosed
	}
	projectID := w.ProjectID()
	if projectID == "" {
		return ErrProjectRequired
	}
	w.mu.RLock()
	nf := w.notifs
	w.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { w.Phases.LoadAll(gctx, projectID); return nil })
	g.Go(func() error { w.Phases.LoadMentors(gctx); return nil })
	g.Go(func() error { w.Participations.LoadParticipations(gctx, projectID); return nil })
	g.Go(func() error { w.Notifications.LoadAll(gctx, projectID, nf); return nil })
	_ = g.Wait()

	w.log.Info("workspace_opened",
		"project_id", projectID,
		"phases", len(w.Phases.Phases()),
		"participations", w.Participations.Total(),
		"notifications", w.Notifications.Total(),
	)
	return ctx.Err()
}

// Retarget switches the workspace to projectID, drops the selection and filters, and reopens.
// Requests still in flight for the previous project are discarded on arrival.
func (w *Workspace) Retarget(ctx context.Context, projectID string) error {
	if w.Closed() {
		return ErrClosed
	}
	if projectID == "" {
		return ErrProjectRequired
	}
	w.mu.Lock()
	w.projectID = projectID
	w.filter = participation.Filter{}
	w.notifs = notification.Filter{}
	w.mu.Unlock()
	w.scope.Set(projectID)
	w.Selection.Clear()
	w.Phases.Select("")
	w.Notifications.SetActive(nil)
	return w.Open(ctx)
}

// Close marks the workspace stale. Late responses are ignored from now on.
func (w *Workspace) Close() {
	if w.closed.Swap(true) {
		return
	}
	w.scope.Set("")
	w.log.Info("workspace_closed", "project_id", w.ProjectID())
}

// ParticipationFilter returns the current participation filter.
func (w *Workspace) ParticipationFilter() participation.Filter {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.filter
}

// SetParticipationFilter replaces the participation filter.
func (w *Workspace) SetParticipationFilter(f participation.Filter) {
	w.mu.Lock()
	w.filter = f
	w.mu.Unlock()
}

// FilteredParticipations applies the current filter across all pages.
func (w *Workspace) FilteredParticipations() []model.Participation {
	return w.Participations.View(w.ParticipationFilter())
}

// ToggleSelectAll selects every participation matching the current filter, or clears
// them when they all are selected already.
func (w *Workspace) ToggleSelectAll() {
	w.Selection.SelectAllFiltered(w.FilteredParticipations())
}

// ReloadParticipations refetches the participation list of the current project.
func (w *Workspace) ReloadParticipations(ctx context.Context) {
	if w.Closed() {
		return
	}
	w.Participations.LoadParticipations(ctx, w.ProjectID())
}

// MoveSelected moves the selected participations to phaseID, then reloads the list
// and clears the selection. It reports whether the move was confirmed.
func (w *Workspace) MoveSelected(ctx context.Context, phaseID string) bool {
	return w.bulk(ctx, phaseID, w.Participations.MoveToPhase)
}

// RemoveSelected detaches the selected participations from phaseID, then reloads the list
// and clears the selection.
func (w *Workspace) RemoveSelected(ctx context.Context, phaseID string) bool {
	return w.bulk(ctx, phaseID, w.Participations.RemoveFromPhase)
}

func (w *Workspace) bulk(ctx context.Context, phaseID string, op func(context.Context, []string, string, func())) bool {
	if w.Closed() {
		return false
	}
	ids := w.Selection.ParticipationIDs(w.Participations.All())
	done := false
	op(ctx, ids, phaseID, func() {
		done = true
		w.ReloadParticipations(ctx)
		w.Selection.Clear()
	})
	return done
}

// ImportCSV uploads file as a participant import and reloads participations on success.
func (w *Workspace) ImportCSV(ctx context.Context, file transport.File) bool {
	if w.Closed() {
		return false
	}
	done := false
	w.Participations.ImportParticipantsCSV(ctx, w.ProjectID(), file, func() {
		done = true
		w.ReloadParticipations(ctx)
	})
	return done
}

// DeletePhase deletes a phase through the registry. Participation filters and notification
// targets naming the phase are left as they are.
func (w *Workspace) DeletePhase(ctx context.Context, id string) bool {
	if w.Closed() {
		return false
	}
	done := false
	w.Phases.Delete(ctx, id, func() { done = true })
	return done
}

// NotificationFilter returns the filter of the loaded notification page.
func (w *Workspace) NotificationFilter() notification.Filter {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.notifs
}

// LoadNotifications loads one notification page and remembers f for later reloads.
func (w *Workspace) LoadNotifications(ctx context.Context, f notification.Filter) {
	if w.Closed() {
		return
	}
	w.mu.Lock()
	w.notifs = f
	w.mu.Unlock()
	w.Notifications.LoadAll(ctx, w.ProjectID(), f)
}

// ReloadNotificationsAndSelect reloads the current notification page and re-highlights id.
func (w *Workspace) ReloadNotificationsAndSelect(ctx context.Context, id string) {
	if w.Closed() {
		return
	}
	w.Notifications.LoadAllAndSelect(ctx, w.ProjectID(), w.NotificationFilter(), id)
}

// Summary is a read-only digest of the workspace state.
type Summary struct {
	ProjectID          string         `json:"project_id"`
	Phases             []model.Phase  `json:"phases"`
	CurrentPhase       *model.Phase   `json:"current_phase"`
	Mentors            int            `json:"mentors"`
	Participations     int            `json:"participations"`
	CountsByPhase      map[string]int `json:"counts_by_phase"`
	Selected           int            `json:"selected"`
	Notifications      int            `json:"notifications"`
	ActiveNotification string         `json:"active_notification,omitempty"`
	Loading            bool           `json:"loading"`
	Saving             bool           `json:"saving"`
	Uploading          bool           `json:"uploading"`
	ImportingCSV       bool           `json:"importing_csv"`
	LastError          string         `json:"last_error,omitempty"`
}

func (w *Workspace) Summary() Summary {
	phases := w.Phases.SortedPhases()
	s := Summary{
		ProjectID:      w.ProjectID(),
		Phases:         phases,
		CurrentPhase:   w.Phases.Current(),
		Mentors:        len(w.Phases.Mentors()),
		Participations: w.Participations.Total(),
		CountsByPhase:  w.Participations.CountsByPhase(phases),
		Selected:       w.Selection.Count(),
		Notifications:  w.Notifications.Total(),
		Loading:        w.Phases.Loading() || w.Participations.Loading() || w.Notifications.Loading(),
		Saving:         w.Notifications.Saving() || w.Participations.Saving(),
		Uploading:      w.Notifications.Uploading(),
		ImportingCSV:   w.Participations.ImportingCSV(),
		LastError:      w.Notifications.LastError(),
	}
	if a := w.Notifications.Active(); a != nil {
		s.ActiveNotification = a.ID
	}
	return s
}

package phase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"collabcore/internal/collection"
	"collabcore/internal/engine"
	"collabcore/internal/metrics"
	"collabcore/internal/model"
	"collabcore/internal/notice"
	"collabcore/internal/transport"
)

const component = "phase"

var (
	ErrInvalidDates = errors.New("phase must not end before it starts")
	ErrIDRequired   = errors.New("phase id is required")
	ErrIDMismatch   = errors.New("update response carries a different phase id")
	ErrStale        = errors.New("project changed while the request was in flight")
)

// Notice texts.
const (
	msgCreated      = "Phase created successfully"
	msgCreateFailed = "An error occurred while creating the phase"
	msgUpdated      = "Phase updated successfully"
	msgUpdateFailed = "An error occurred while updating the phase"
	msgDeleted      = "Phase deleted successfully"
	msgDeleteFailed = "An error occurred while deleting the phase"
	msgInvalidDates = "The phase end date must not be before its start date"
)

// Registry holds the phases of one project and the eligible mentor list.
// Phase CRUD is confirm-then-commit: the local list changes only after the
// server accepted the mutation. Failures never escape; they end in a notice.
type Registry struct {
	tr     transport.Transport
	notify notice.Notifier
	log    *slog.Logger
	ops    *metrics.Operations
	scope  *collection.Scope

	phases  *collection.Store[model.Phase]
	mentors *collection.Store[model.MentorProfile]

	mu      sync.RWMutex
	current *model.Phase
}

func NewRegistry(deps engine.Deps) *Registry {
	deps = deps.WithDefaults(component)
	return &Registry{
		tr:      deps.Transport,
		notify:  deps.Notifier,
		log:     deps.Logger,
		ops:     deps.Ops,
		scope:   deps.Scope,
		phases:  collection.New(func(p model.Phase) string { return p.ID }),
		mentors: collection.New(func(m model.MentorProfile) string { return m.ID }),
	}
}

// LoadAll replaces the phase list with the phases of projectID and makes it the active project.
// A failed load leaves an empty list behind and raises no notice.
func (r *Registry) LoadAll(ctx context.Context, projectID string) {
	tag := r.scope.Set(projectID)
	ctx, op := r.ops.Start(ctx, component, "load_all", attribute.String("project_id", projectID))

	r.phases.SetBusy(true)
	defer r.phases.SetBusy(false)

	var phases []model.Phase
	err := r.tr.Get(ctx, fmt.Sprintf("phases/project/%s", projectID), nil, &phases)
	if !r.scope.Valid(tag) {
		r.log.DebugContext(ctx, "phase_load_discarded", "project_id", projectID)
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	if err != nil {
		r.log.WarnContext(ctx, "phase_load_failed", "project_id", projectID, "error", err)
		r.phases.Reset()
		op.End(metrics.OutcomeFailure, err)
		return
	}
	r.phases.Replace(phases, len(phases))
	op.End(metrics.OutcomeSuccess, nil)
}

// Phases returns the phases in server order.
func (r *Registry) Phases() []model.Phase {
	return r.phases.Items()
}

// SortedPhases returns the phases ordered by start date; equal dates keep their relative order.
func (r *Registry) SortedPhases() []model.Phase {
	phases := r.phases.Items()
	slices.SortStableFunc(phases, func(a, b model.Phase) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return phases
}

// Find returns the phase with the given id.
func (r *Registry) Find(id string) (model.Phase, bool) {
	return r.phases.Find(id)
}

// Loading reports whether a phase request is in flight.
func (r *Registry) Loading() bool {
	return r.phases.Busy()
}

// Current returns the selected phase, nil when none is selected.
func (r *Registry) Current() *model.Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil
	}
	p := *r.current
	return &p
}

// Select makes the phase with id the current one. An empty id clears the selection.
func (r *Registry) Select(id string) bool {
	if id == "" {
		r.setCurrent(nil)
		return true
	}
	p, ok := r.phases.Find(id)
	if !ok {
		return false
	}
	r.setCurrent(&p)
	return true
}

func (r *Registry) setCurrent(p *model.Phase) {
	r.mu.Lock()
	r.current = p
	r.mu.Unlock()
}

// Create posts a new phase for projectID. On success the phase is appended,
// becomes current and onSuccess receives it.
func (r *Registry) Create(ctx context.Context, projectID string, dto model.PhaseDTO, onSuccess func(model.Phase)) {
	ctx, op := r.ops.Start(ctx, component, "create", attribute.String("project_id", projectID))
	if err := validate(dto); err != nil {
		r.notify.ShowError(msgInvalidDates)
		op.End(metrics.OutcomeSkipped, err)
		return
	}
	dto.ID = ""
	tag := r.scope.Current()

	r.phases.SetBusy(true)
	defer r.phases.SetBusy(false)

	var created model.Phase
	if err := r.tr.Post(ctx, fmt.Sprintf("phases/%s", projectID), dto, &created); err != nil {
		r.log.ErrorContext(ctx, "phase_create_failed", "project_id", projectID, "error", err)
		r.notify.ShowError(msgCreateFailed)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	r.notify.ShowSuccess(msgCreated)
	if !r.scope.Valid(tag) {
		r.log.InfoContext(ctx, "phase_create_discarded", "project_id", projectID, "phase_id", created.ID)
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	r.phases.Append(created)
	r.setCurrent(&created)
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess(created)
	}
}

// Update patches the phase dto.ID and replaces it in place once confirmed.
func (r *Registry) Update(ctx context.Context, dto model.PhaseDTO, onSuccess func(model.Phase)) {
	ctx, op := r.ops.Start(ctx, component, "update", attribute.String("phase_id", dto.ID))
	if dto.ID == "" {
		r.notify.ShowError(msgUpdateFailed)
		op.End(metrics.OutcomeSkipped, ErrIDRequired)
		return
	}
	if err := validate(dto); err != nil {
		r.notify.ShowError(msgInvalidDates)
		op.End(metrics.OutcomeSkipped, err)
		return
	}
	tag := r.scope.Current()

	r.phases.SetBusy(true)
	defer r.phases.SetBusy(false)

	var updated model.Phase
	err := r.tr.Patch(ctx, fmt.Sprintf("phases/%s", dto.ID), dto, &updated)
	if err == nil && updated.ID != dto.ID {
		err = fmt.Errorf("%w: sent %q, got %q", ErrIDMismatch, dto.ID, updated.ID)
	}
	if err != nil {
		r.log.ErrorContext(ctx, "phase_update_failed", "phase_id", dto.ID, "error", err)
		r.notify.ShowError(msgUpdateFailed)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	r.notify.ShowSuccess(msgUpdated)
	if !r.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	r.phases.Update(updated.ID, func(model.Phase) model.Phase { return updated })
	r.mu.Lock()
	if r.current != nil && r.current.ID == updated.ID {
		r.current = &updated
	}
	r.mu.Unlock()
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess(updated)
	}
}

// Delete removes the phase id once the server confirmed it. At most one entry is removed.
// Participation filters or notification targets still naming id are left alone.
func (r *Registry) Delete(ctx context.Context, id string, onSuccess func()) {
	ctx, op := r.ops.Start(ctx, component, "delete", attribute.String("phase_id", id))
	if id == "" {
		r.notify.ShowError(msgDeleteFailed)
		op.End(metrics.OutcomeSkipped, ErrIDRequired)
		return
	}
	tag := r.scope.Current()

	r.phases.SetBusy(true)
	defer r.phases.SetBusy(false)

	if err := r.tr.Delete(ctx, fmt.Sprintf("phases/%s", id)); err != nil {
		r.log.ErrorContext(ctx, "phase_delete_failed", "phase_id", id, "error", err)
		r.notify.ShowError(msgDeleteFailed)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	r.notify.ShowSuccess(msgDeleted)
	if !r.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	if _, ok := r.phases.Find(id); ok {
		r.phases.Remove(id)
	}
	r.mu.Lock()
	if r.current != nil && r.current.ID == id {
		r.current = nil
	}
	r.mu.Unlock()
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess()
	}
}

// LoadMentors refreshes the eligible mentor list. It has no relationship with phase CRUD;
// a failure leaves the list empty.
func (r *Registry) LoadMentors(ctx context.Context) {
	ctx, op := r.ops.Start(ctx, component, "load_mentors")

	r.mentors.SetBusy(true)
	defer r.mentors.SetBusy(false)

	var mentors []model.MentorProfile
	if err := r.tr.Get(ctx, "mentors", nil, &mentors); err != nil {
		r.log.WarnContext(ctx, "mentor_load_failed", "error", err)
		r.mentors.Reset()
		op.End(metrics.OutcomeFailure, err)
		return
	}
	r.mentors.Replace(mentors, len(mentors))
	op.End(metrics.OutcomeSuccess, nil)
}

// Mentors returns the cached mentor list.
func (r *Registry) Mentors() []model.MentorProfile {
	return r.mentors.Items()
}

// MentorsLoading reports whether the mentor list is being fetched.
func (r *Registry) MentorsLoading() bool {
	return r.mentors.Busy()
}

func validate(dto model.PhaseDTO) error {
	if dto.EndedAt.Before(dto.StartedAt) {
		return ErrInvalidDates
	}
	return nil
}

package participation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"

	"collabcore/internal/collection"
	"collabcore/internal/engine"
	"collabcore/internal/metrics"
	"collabcore/internal/model"
	"collabcore/internal/notice"
	"collabcore/internal/transport"
)

const (
	component = "participation"

	// DefaultPageSize is the participation list page size.
	DefaultPageSize = 20
)

var (
	ErrNothingSelected = errors.New("no participation selected")
	ErrPhaseRequired   = errors.New("target phase is required")
	ErrNotCSV          = errors.New("only .csv files can be imported")
	ErrStale           = errors.New("project changed while the request was in flight")
)

// Notice texts.
const (
	msgMoved          = "Participants moved successfully"
	msgMoveFailed     = "An error occurred while moving the participants"
	msgRemoved        = "Participants removed successfully"
	msgRemoveFailed   = "An error occurred while removing the participants"
	msgImported       = "Participants imported successfully"
	msgImportFailed   = "An error occurred while importing the participants"
	msgNotCSV         = "Please choose a .csv file"
	msgNeedsSelection = "Select at least one participant and a target phase"
	msgLoadFailed     = "An error occurred while loading the participants"
)

// Engine holds the participations of one project and runs the bulk membership operations.
// Membership changes are confirmed by the server and never patched locally: the caller
// reloads after a successful move, remove or import.
type Engine struct {
	tr       transport.Transport
	notify   notice.Notifier
	log      *slog.Logger
	ops      *metrics.Operations
	scope    *collection.Scope
	pageSize int

	list      *collection.Store[model.Participation]
	saving    atomic.Int32
	importing atomic.Int32
}

// NewEngine creates an engine paginating by pageSize (DefaultPageSize when <= 0).
func NewEngine(deps engine.Deps, pageSize int) *Engine {
	deps = deps.WithDefaults(component)
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		tr:       deps.Transport,
		notify:   deps.Notifier,
		log:      deps.Logger,
		ops:      deps.Ops,
		scope:    deps.Scope,
		pageSize: pageSize,
		list:     collection.New(model.Participation.Key),
	}
}

// LoadParticipations replaces the list with the participations of projectID.
// A failed load leaves the list empty and raises an error notice.
func (e *Engine) LoadParticipations(ctx context.Context, projectID string) {
	tag := e.scope.Set(projectID)
	ctx, op := e.ops.Start(ctx, component, "load", attribute.String("project_id", projectID))

	e.list.SetBusy(true)
	defer e.list.SetBusy(false)

	var list []model.Participation
	err := e.tr.Get(ctx, fmt.Sprintf("projects/%s/participations", projectID), nil, &list)
	if !e.scope.Valid(tag) {
		e.log.DebugContext(ctx, "participation_load_discarded", "project_id", projectID)
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	if err != nil {
		e.log.WarnContext(ctx, "participation_load_failed", "project_id", projectID, "error", err)
		e.list.Reset()
		e.notify.ShowError(msgLoadFailed)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	e.list.Replace(list, len(list))
	op.End(metrics.OutcomeSuccess, nil)
}

// All returns every participation of the project.
func (e *Engine) All() []model.Participation {
	return e.list.Items()
}

func (e *Engine) Total() int {
	return e.list.Total()
}

func (e *Engine) Loading() bool {
	return e.list.Busy()
}

// Saving reports whether a move or remove is in flight.
func (e *Engine) Saving() bool {
	return e.saving.Load() > 0
}

// ImportingCSV reports whether a CSV import is in flight.
func (e *Engine) ImportingCSV() bool {
	return e.importing.Load() > 0
}

func (e *Engine) PageSize() int {
	return e.pageSize
}

// ByPhase returns the participations assigned to phaseID, or all when phaseID is empty.
func (e *Engine) ByPhase(phaseID string) []model.Participation {
	return ByPhase(e.list.Items(), phaseID)
}

// FilteredBySearch returns the participations matching query.
func (e *Engine) FilteredBySearch(query string) []model.Participation {
	return Search(e.list.Items(), query)
}

// View returns the participations matching f across all pages.
func (e *Engine) View(f Filter) []model.Participation {
	return Apply(e.list.Items(), f)
}

// Page returns one page of View(f).
func (e *Engine) Page(f Filter, page int) []model.Participation {
	return Paginate(e.View(f), page, e.pageSize)
}

// CountsByPhase counts participations per phase over the unfiltered list.
func (e *Engine) CountsByPhase(phases []model.Phase) map[string]int {
	return CountsByPhase(e.list.Items(), phases)
}

// GroupedByPhase lays the unfiltered list out under phases.
func (e *Engine) GroupedByPhase(phases []model.Phase) Grouped {
	return GroupByPhase(e.list.Items(), phases)
}

// MoveToPhase assigns the participations ids to phaseID.
func (e *Engine) MoveToPhase(ctx context.Context, ids []string, phaseID string, onSuccess func()) {
	e.bulk(ctx, "move", "phases/participants/move", ids, phaseID, msgMoved, msgMoveFailed, onSuccess)
}

// RemoveFromPhase detaches the participations ids from phaseID.
func (e *Engine) RemoveFromPhase(ctx context.Context, ids []string, phaseID string, onSuccess func()) {
	e.bulk(ctx, "remove", "phases/participants/remove", ids, phaseID, msgRemoved, msgRemoveFailed, onSuccess)
}

func (e *Engine) bulk(ctx context.Context, name, path string, ids []string, phaseID, okMsg, failMsg string, onSuccess func()) {
	ctx, op := e.ops.Start(ctx, component, name,
		attribute.String("phase_id", phaseID),
		attribute.Int("participations", len(ids)),
	)
	if len(ids) == 0 || phaseID == "" {
		err := ErrNothingSelected
		if phaseID == "" {
			err = ErrPhaseRequired
		}
		e.notify.ShowError(msgNeedsSelection)
		op.End(metrics.OutcomeSkipped, err)
		return
	}
	tag := e.scope.Current()

	e.saving.Add(1)
	defer e.saving.Add(-1)

	dto := model.MoveParticipationsDTO{IDs: ids, PhaseID: phaseID}
	if err := e.tr.Post(ctx, path, dto, nil); err != nil {
		e.log.ErrorContext(ctx, "participation_"+name+"_failed", "phase_id", phaseID, "count", len(ids), "error", err)
		e.notify.ShowError(failMsg)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	e.notify.ShowSuccess(okMsg)
	if !e.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess()
	}
}

// ImportParticipantsCSV uploads file as the "file" part of a multipart request.
// Concurrent imports are not deduplicated; callers watch ImportingCSV.
func (e *Engine) ImportParticipantsCSV(ctx context.Context, projectID string, file transport.File, onSuccess func()) {
	ctx, op := e.ops.Start(ctx, component, "import_csv",
		attribute.String("project_id", projectID),
		attribute.String("file", file.Name),
	)
	if !strings.HasSuffix(strings.ToLower(file.Name), ".csv") || file.Reader == nil {
		e.notify.ShowError(msgNotCSV)
		op.End(metrics.OutcomeSkipped, ErrNotCSV)
		return
	}
	if file.ContentType == "" {
		file.ContentType = "text/csv"
	}
	tag := e.scope.Current()

	e.importing.Add(1)
	defer e.importing.Add(-1)

	form := transport.Multipart{Field: "file", Files: []transport.File{file}}
	if err := e.tr.PostMultipart(ctx, fmt.Sprintf("projects/%s/participants/csv", projectID), form, nil); err != nil {
		e.log.ErrorContext(ctx, "participation_import_failed", "project_id", projectID, "file", file.Name, "error", err)
		e.notify.ShowError(msgImportFailed)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	e.notify.ShowSuccess(msgImported)
	if !e.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess()
	}
}

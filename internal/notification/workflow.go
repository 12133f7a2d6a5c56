package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"

	"collabcore/internal/collection"
	"collabcore/internal/engine"
	"collabcore/internal/metrics"
	"collabcore/internal/model"
	"collabcore/internal/notice"
	"collabcore/internal/transport"
)

const component = "notification"

var (
	ErrIDRequired = errors.New("notification id is required")
	ErrNotDraft   = errors.New("notification was already sent")
	ErrStale      = errors.New("project changed while the request was in flight")
)

// Notice texts. Failure texts also land in LastError.
const (
	msgCreated                 = "Notification created"
	msgCreateFailed            = "An error occurred while creating the notification"
	msgAttachFailed            = "An error occurred while adding the attachments"
	msgSent                    = "Notification sent"
	msgSendFailed              = "An error occurred while sending the notification"
	msgUpdated                 = "Notification updated"
	msgUpdateFailed            = "An error occurred while updating the notification"
	msgDeleted                 = "Notification deleted"
	msgDeleteFailed            = "An error occurred while deleting the notification"
	msgAttachmentsDeleted      = "Attachments deleted"
	msgDeleteAttachmentsFailed = "An error occurred while deleting the attachments"
	msgAlreadySent             = "Attachments cannot be changed once the notification is sent"
	msgLoadFailed              = "An error occurred while loading the notifications"
)

// Filter selects a page of notifications. Empty PhaseID and nil Status do not filter;
// Page is 1-indexed.
type Filter struct {
	PhaseID string
	Status  *model.NotificationStatus
	Page    int
}

// Query renders f as request parameters, leaving out what does not filter.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.PhaseID != "" {
		q.Set("phaseId", f.PhaseID)
	}
	if f.Status != nil && f.Status.Valid() {
		q.Set("status", string(*f.Status))
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// Workflow runs the draft, attach and send lifecycle of the notifications of a project
// and owns the active notification pointer.
//
// Pipelines run their steps strictly in order and keep what already succeeded when a
// later step fails. A notification seen as sent is never turned back into a draft.
type Workflow struct {
	tr     transport.Transport
	notify notice.Notifier
	log    *slog.Logger
	ops    *metrics.Operations
	scope  *collection.Scope

	list      *collection.Store[model.Notification]
	saving    atomic.Int32
	uploading atomic.Int32

	mu      sync.RWMutex
	active  *model.Notification
	lastErr string
	sent    map[string]struct{}
}

func NewWorkflow(deps engine.Deps) *Workflow {
	deps = deps.WithDefaults(component)
	return &Workflow{
		tr:     deps.Transport,
		notify: deps.Notifier,
		log:    deps.Logger,
		ops:    deps.Ops,
		scope:  deps.Scope,
		list:   collection.New(func(n model.Notification) string { return n.ID }),
		sent:   map[string]struct{}{},
	}
}

// LoadAll replaces the list with one filtered page of the notifications of projectID.
// A failed load leaves an empty list behind and raises an error notice.
func (w *Workflow) LoadAll(ctx context.Context, projectID string, f Filter) {
	w.load(ctx, "load_all", projectID, f, nil)
}

// LoadAllAndSelect loads like LoadAll, then makes notificationID the active notification
// if it is on the fresh page, clearing the active notification otherwise.
func (w *Workflow) LoadAllAndSelect(ctx context.Context, projectID string, f Filter, notificationID string) {
	w.load(ctx, "load_all_and_select", projectID, f, &notificationID)
}

func (w *Workflow) load(ctx context.Context, name, projectID string, f Filter, selectID *string) {
	tag := w.scope.Set(projectID)
	ctx, op := w.ops.Start(ctx, component, name, attribute.String("project_id", projectID))

	w.list.SetBusy(true)
	defer w.list.SetBusy(false)

	var page transport.Page[model.Notification]
	err := w.tr.Get(ctx, fmt.Sprintf("notifications/project/%s", projectID), f.Query(), &page)
	if !w.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	if err != nil {
		w.list.Reset()
		if selectID != nil {
			w.setActive(nil)
		}
		w.fail(ctx, op, metrics.OutcomeFailure, "notification_load_failed", msgLoadFailed, err, "project_id", projectID)
		return
	}
	for i := range page.Items {
		page.Items[i] = w.reconcile(page.Items[i])
	}
	w.list.Replace(page.Items, page.Total)
	if selectID != nil {
		if n, ok := w.list.Find(*selectID); ok {
			w.setActive(&n)
		} else {
			w.setActive(nil)
		}
	}
	op.End(metrics.OutcomeSuccess, nil)
}

// List returns the loaded page.
func (w *Workflow) List() []model.Notification { return w.list.Items() }

// Total returns the server-side count of notifications matching the last filter.
func (w *Workflow) Total() int { return w.list.Total() }

func (w *Workflow) Find(id string) (model.Notification, bool) { return w.list.Find(id) }

func (w *Workflow) Loading() bool   { return w.list.Busy() }
func (w *Workflow) Saving() bool    { return w.saving.Load() > 0 }
func (w *Workflow) Uploading() bool { return w.uploading.Load() > 0 }

// Active returns the active notification, nil when none.
func (w *Workflow) Active() *model.Notification {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.active == nil {
		return nil
	}
	n := *w.active
	return &n
}

// SetActive replaces the active notification; nil clears it.
func (w *Workflow) SetActive(n *model.Notification) {
	if n == nil {
		w.setActive(nil)
		return
	}
	c := w.reconcile(*n)
	w.setActive(&c)
}

// SetActiveByID activates the loaded notification id. It reports whether it was found.
func (w *Workflow) SetActiveByID(id string) bool {
	n, ok := w.list.Find(id)
	if !ok {
		return false
	}
	w.setActive(&n)
	return true
}

func (w *Workflow) setActive(n *model.Notification) {
	w.mu.Lock()
	w.active = n
	w.mu.Unlock()
}

// LastError returns the failure text of the last create, update or send pipeline.
func (w *Workflow) LastError() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}

func (w *Workflow) ClearError() { w.setError("") }

func (w *Workflow) setError(msg string) {
	w.mu.Lock()
	w.lastErr = msg
	w.mu.Unlock()
}

// IsSent reports whether id is known to have been sent.
func (w *Workflow) IsSent(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.sent[id]
	return ok
}

// reconcile records sent notifications and keeps them sent whatever a later payload says.
func (w *Workflow) reconcile(n model.Notification) model.Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n.Status == model.StatusSent {
		w.sent[n.ID] = struct{}{}
		return n
	}
	if _, ok := w.sent[n.ID]; ok {
		n.Status = model.StatusSent
	}
	return n
}

// put writes n into the list (head insert when absent) and makes it active.
func (w *Workflow) put(tag string, n model.Notification) {
	if !w.scope.Valid(tag) {
		return
	}
	n = w.reconcile(n)
	w.list.Upsert(n)
	w.setActive(&n)
}

// replace rewrites n in place if it is loaded and refreshes the active pointer.
func (w *Workflow) replace(tag string, n model.Notification) {
	if !w.scope.Valid(tag) {
		return
	}
	n = w.reconcile(n)
	w.list.Update(n.ID, func(model.Notification) model.Notification { return n })
	w.setActive(&n)
}

func (w *Workflow) fail(ctx context.Context, op *metrics.Op, outcome, event, msg string, err error, attrs ...any) {
	w.log.ErrorContext(ctx, event, append(attrs, "error", err)...)
	w.setError(msg)
	w.notify.ShowError(msg)
	op.End(outcome, err)
}

// Create drafts a notification for projectID, then uploads files onto it in one call.
// When the upload fails the draft stays in the list without attachments.
func (w *Workflow) Create(ctx context.Context, projectID string, dto model.NotifyParticipantsDTO, files []transport.File, onSuccess func(model.Notification)) {
	ctx, op := w.ops.Start(ctx, component, "create",
		attribute.String("project_id", projectID),
		attribute.Int("attachments", len(files)),
	)
	tag := w.scope.Current()
	w.saving.Add(1)
	defer w.saving.Add(-1)
	w.setError("")

	created, err := w.createDraft(ctx, projectID, dto)
	if err != nil {
		w.fail(ctx, op, metrics.OutcomeFailure, "notification_create_failed", msgCreateFailed, err, "project_id", projectID)
		return
	}
	w.put(tag, created)

	final, err := w.attach(ctx, created, files)
	if err != nil {
		w.fail(ctx, op, metrics.OutcomePartial, "notification_attach_failed", msgAttachFailed, err, "notification_id", created.ID)
		return
	}
	w.replace(tag, final)

	w.notify.ShowSuccess(msgCreated)
	if !w.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess(w.reconcile(final))
	}
}

// CreateNotifyAndSend is Create followed by Send. Send only runs when every earlier step succeeded.
func (w *Workflow) CreateNotifyAndSend(ctx context.Context, projectID string, dto model.NotifyParticipantsDTO, files []transport.File, onSuccess func(model.Notification)) {
	ctx, op := w.ops.Start(ctx, component, "create_notify_and_send",
		attribute.String("project_id", projectID),
		attribute.Int("attachments", len(files)),
	)
	tag := w.scope.Current()
	w.saving.Add(1)
	defer w.saving.Add(-1)
	w.setError("")

	created, err := w.createDraft(ctx, projectID, dto)
	if err != nil {
		w.fail(ctx, op, metrics.OutcomeFailure, "notification_create_failed", msgCreateFailed, err, "project_id", projectID)
		return
	}
	w.put(tag, created)

	withFiles, err := w.attach(ctx, created, files)
	if err != nil {
		w.fail(ctx, op, metrics.OutcomePartial, "notification_attach_failed", msgAttachFailed, err, "notification_id", created.ID)
		return
	}
	w.replace(tag, withFiles)

	sent, err := w.send(ctx, withFiles.ID)
	if err != nil {
		w.fail(ctx, op, metrics.OutcomePartial, "notification_send_failed", msgSendFailed, err, "notification_id", created.ID)
		return
	}
	w.replace(tag, sent)

	w.notify.ShowSuccess(msgSent)
	if !w.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess(sent)
	}
}

// UpdateWithAttachments patches title, body and target of id, then appends files to its
// attachments. Adding files to a notification known to be sent is refused before any call.
func (w *Workflow) UpdateWithAttachments(ctx context.Context, id string, dto model.NotifyParticipantsDTO, files []transport.File, onSuccess func(model.Notification)) {
	ctx, op := w.ops.Start(ctx, component, "update_with_attachments",
		attribute.String("notification_id", id),
		attribute.Int("attachments", len(files)),
	)
	if id == "" {
		w.fail(ctx, op, metrics.OutcomeSkipped, "notification_update_refused", msgUpdateFailed, ErrIDRequired)
		return
	}
	if len(files) > 0 && w.IsSent(id) {
		w.fail(ctx, op, metrics.OutcomeSkipped, "notification_update_refused", msgAlreadySent, ErrNotDraft, "notification_id", id)
		return
	}
	tag := w.scope.Current()
	w.saving.Add(1)
	defer w.saving.Add(-1)
	w.setError("")

	var updated model.Notification
	if err := w.tr.Patch(ctx, fmt.Sprintf("notifications/%s", id), dto, &updated); err != nil {
		w.fail(ctx, op, metrics.OutcomeFailure, "notification_update_failed", msgUpdateFailed, err, "notification_id", id)
		return
	}
	if updated.ID == "" {
		updated.ID = id
	}
	w.replace(tag, updated)

	final, err := w.attach(ctx, updated, files)
	if err != nil {
		w.fail(ctx, op, metrics.OutcomePartial, "notification_attach_failed", msgAttachFailed, err, "notification_id", id)
		return
	}
	w.replace(tag, final)

	w.notify.ShowSuccess(msgUpdated)
	if !w.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess(w.reconcile(final))
	}
}

// Send moves id to sent. Sending an already sent notification is left to the server to judge.
func (w *Workflow) Send(ctx context.Context, id string, onSuccess func(model.Notification)) {
	ctx, op := w.ops.Start(ctx, component, "send", attribute.String("notification_id", id))
	if id == "" {
		w.fail(ctx, op, metrics.OutcomeSkipped, "notification_send_refused", msgSendFailed, ErrIDRequired)
		return
	}
	tag := w.scope.Current()
	w.saving.Add(1)
	defer w.saving.Add(-1)
	w.setError("")

	sent, err := w.send(ctx, id)
	if err != nil {
		w.fail(ctx, op, metrics.OutcomeFailure, "notification_send_failed", msgSendFailed, err, "notification_id", id)
		return
	}
	w.replace(tag, sent)

	w.notify.ShowSuccess(msgSent)
	if !w.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess(sent)
	}
}

// Delete removes id from the list and clears the active notification if it was id.
func (w *Workflow) Delete(ctx context.Context, id string, onSuccess func()) {
	ctx, op := w.ops.Start(ctx, component, "delete", attribute.String("notification_id", id))
	if id == "" {
		w.notify.ShowError(msgDeleteFailed)
		op.End(metrics.OutcomeSkipped, ErrIDRequired)
		return
	}
	tag := w.scope.Current()
	w.saving.Add(1)
	defer w.saving.Add(-1)

	if err := w.tr.Delete(ctx, fmt.Sprintf("notifications/%s", id)); err != nil {
		w.log.ErrorContext(ctx, "notification_delete_failed", "notification_id", id, "error", err)
		w.notify.ShowError(msgDeleteFailed)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	w.notify.ShowSuccess(msgDeleted)
	if !w.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	if _, ok := w.list.Find(id); ok {
		w.list.Remove(id)
	}
	w.mu.Lock()
	if w.active != nil && w.active.ID == id {
		w.active = nil
	}
	w.mu.Unlock()
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess()
	}
}

// DeleteAttachments clears every attachment of id. There is no per-attachment removal.
func (w *Workflow) DeleteAttachments(ctx context.Context, id string, onSuccess func()) {
	ctx, op := w.ops.Start(ctx, component, "delete_attachments", attribute.String("notification_id", id))
	if id == "" {
		w.notify.ShowError(msgDeleteAttachmentsFailed)
		op.End(metrics.OutcomeSkipped, ErrIDRequired)
		return
	}
	if w.IsSent(id) {
		w.notify.ShowError(msgAlreadySent)
		op.End(metrics.OutcomeSkipped, ErrNotDraft)
		return
	}
	tag := w.scope.Current()
	w.uploading.Add(1)
	defer w.uploading.Add(-1)

	if err := w.tr.Delete(ctx, fmt.Sprintf("notifications/%s/attachments", id)); err != nil {
		w.log.ErrorContext(ctx, "notification_attachments_delete_failed", "notification_id", id, "error", err)
		w.notify.ShowError(msgDeleteAttachmentsFailed)
		op.End(metrics.OutcomeFailure, err)
		return
	}
	w.notify.ShowSuccess(msgAttachmentsDeleted)
	if !w.scope.Valid(tag) {
		op.End(metrics.OutcomeStale, ErrStale)
		return
	}
	strip := func(n model.Notification) model.Notification {
		n.Attachments = []model.Attachment{}
		return n
	}
	w.list.Update(id, strip)
	w.mu.Lock()
	if w.active != nil && w.active.ID == id {
		n := strip(*w.active)
		w.active = &n
	}
	w.mu.Unlock()
	op.End(metrics.OutcomeSuccess, nil)
	if onSuccess != nil {
		onSuccess()
	}
}

func (w *Workflow) createDraft(ctx context.Context, projectID string, dto model.NotifyParticipantsDTO) (model.Notification, error) {
	var created model.Notification
	if err := w.tr.Post(ctx, fmt.Sprintf("projects/%s/notification", projectID), dto, &created); err != nil {
		return model.Notification{}, err
	}
	if created.Status == "" {
		created.Status = model.StatusDraft
	}
	if created.Attachments == nil {
		created.Attachments = []model.Attachment{}
	}
	return created, nil
}

// attach uploads files onto n in one multipart call under the repeated field "attachments".
// Without files it returns n unchanged.
func (w *Workflow) attach(ctx context.Context, n model.Notification, files []transport.File) (model.Notification, error) {
	if len(files) == 0 {
		return n, nil
	}
	w.uploading.Add(1)
	defer w.uploading.Add(-1)

	var out model.Notification
	form := transport.Multipart{Field: "attachments", Files: files}
	if err := w.tr.PostMultipart(ctx, fmt.Sprintf("notifications/%s/attachments", n.ID), form, &out); err != nil {
		return model.Notification{}, err
	}
	if out.ID == "" {
		out = n
	}
	return out, nil
}

func (w *Workflow) send(ctx context.Context, id string) (model.Notification, error) {
	var sent model.Notification
	if err := w.tr.Post(ctx, fmt.Sprintf("projects/notify/%s", id), struct{}{}, &sent); err != nil {
		return model.Notification{}, err
	}
	if sent.ID == "" {
		if n, ok := w.list.Find(id); ok {
			sent = n
		} else {
			sent.ID = id
		}
	}
	sent.Status = model.StatusSent
	return w.reconcile(sent), nil
}

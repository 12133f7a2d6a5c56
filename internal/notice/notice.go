package notice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"collabcore/internal/model"
	"collabcore/internal/repository"
)

// Notifier presents user-facing outcome messages.
// Engines call it once per completed or failed operation, never per intermediate step.
type Notifier interface {
	ShowSuccess(text string)
	ShowError(text string)
}

// Discard drops every notice.
type Discard struct{}

func (Discard) ShowSuccess(string) {}
func (Discard) ShowError(string)   {}

// Logger writes notices to a slog logger.
type Logger struct {
	log *slog.Logger
}

func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log.With("component", "notice")}
}

func (l *Logger) ShowSuccess(text string) { l.log.Info(text, "level_notice", model.NoticeSuccess) }
func (l *Logger) ShowError(text string)   { l.log.Warn(text, "level_notice", model.NoticeError) }

// Fanout forwards every notice to all of its notifiers in order.
type Fanout []Notifier

func (f Fanout) ShowSuccess(text string) {
	for _, n := range f {
		n.ShowSuccess(text)
	}
}

func (f Fanout) ShowError(text string) {
	for _, n := range f {
		n.ShowError(text)
	}
}

// Feed keeps the most recent notices in memory so a UI can poll them.
// It is safe for concurrent use by multiple goroutines.
type Feed struct {
	mu    sync.Mutex
	limit int
	items []model.Notice
	now   func() time.Time
}

// NewFeed creates a feed retaining at most limit notices (100 when limit <= 0).
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 100
	}
	return &Feed{limit: limit, now: time.Now}
}

func (f *Feed) ShowSuccess(text string) { f.push(model.NoticeSuccess, text) }
func (f *Feed) ShowError(text string)   { f.push(model.NoticeError, text) }

func (f *Feed) push(level model.NoticeLevel, text string) {
	n := model.Notice{ID: uuid.NewString(), Level: level, Text: text, CreatedAt: f.now().UTC()}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]model.Notice(nil), f.items[over:]...)
	}
}

// Since returns notices newer than the notice with id after, oldest first.
// An unknown or empty id returns everything retained.
func (f *Feed) Since(after string) []model.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := 0
	if after != "" {
		for i, n := range f.items {
			if n.ID == after {
				start = i + 1
				break
			}
		}
	}
	out := make([]model.Notice, len(f.items)-start)
	copy(out, f.items[start:])
	return out
}

// Last returns the most recent notice.
func (f *Feed) Last() (model.Notice, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == 0 {
		return model.Notice{}, false
	}
	return f.items[len(f.items)-1], true
}

// Journal persists notices through a repository. Write failures are logged,
// never surfaced: a notice must not turn into a new failure of the operation it reports.
type Journal struct {
	repo    repository.NoticeRepository
	log     *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewJournal(repo repository.NoticeRepository, log *slog.Logger) *Journal {
	if log == nil {
		log = slog.Default()
	}
	return &Journal{repo: repo, log: log, timeout: 2 * time.Second, now: time.Now}
}

func (j *Journal) ShowSuccess(text string) { j.record(model.NoticeSuccess, text) }
func (j *Journal) ShowError(text string)   { j.record(model.NoticeError, text) }

func (j *Journal) record(level model.NoticeLevel, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	n := &model.Notice{ID: uuid.NewString(), Level: level, Text: text, CreatedAt: j.now().UTC()}
	if _, err := j.repo.Create(ctx, n); err != nil {
		j.log.Error("notice_journal_write_failed", "error", err, "notice_level", level)
	}
}

// Recent lists journaled notices, newest first.
func (j *Journal) Recent(ctx context.Context, limit, offset int) (*repository.PageResult[model.Notice], error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return j.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
}

// ErrNoticeNotFound is returned by Get for an unknown id.
var ErrNoticeNotFound = errors.New("notice not found")

// Get returns one journaled notice.
func (j *Journal) Get(ctx context.Context, id string) (*model.Notice, error) {
	n, err := j.repo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoticeNotFound
	}
	return n, err
}

// Prune drops notices older than retention.
func (j *Journal) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return j.repo.DeleteBefore(ctx, j.now().Add(-retention))
}

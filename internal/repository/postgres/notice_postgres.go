package postgres

import (
	"context"
	"database/sql"
	"time"

	"collabcore/internal/model"
	"collabcore/internal/repository"
)

// NoticePostgres is a PostgreSQL implementation of repository.NoticeRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type NoticePostgres struct {
	db *sql.DB
}

// NewNoticePostgres creates a new NoticePostgres repository.
func NewNoticePostgres(db *sql.DB) *NoticePostgres {
	return &NoticePostgres{db: db}
}

var _ repository.NoticeRepository = (*NoticePostgres)(nil)

// Create inserts a new notice row and returns the stored record.
func (r *NoticePostgres) Create(ctx context.Context, n *model.Notice) (*model.Notice, error) {
	const q = `
		INSERT INTO notices (id, level, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, level, text, created_at
	`
	row := r.db.QueryRowContext(ctx, q, n.ID, string(n.Level), n.Text, n.CreatedAt)
	var out model.Notice
	var level string
	if err := row.Scan(&out.ID, &level, &out.Text, &out.CreatedAt); err != nil {
		return nil, err
	}
	out.Level = model.NoticeLevel(level)
	return &out, nil
}

// FindByID fetches a single notice by its ID.
func (r *NoticePostgres) FindByID(ctx context.Context, id string) (*model.Notice, error) {
	const q = `
		SELECT id, level, text, created_at
		FROM notices
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var n model.Notice
	var level string
	if err := row.Scan(&n.ID, &level, &n.Text, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Level = model.NoticeLevel(level)
	return &n, nil
}

// List returns notices using LIMIT/OFFSET pagination and a total count.
func (r *NoticePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Notice], error) {
	const qCount = `SELECT COUNT(*) FROM notices`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, level, text, created_at
		FROM notices
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notice, 0)
	for rows.Next() {
		var n model.Notice
		var level string
		if err := rows.Scan(&n.ID, &level, &n.Text, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Level = model.NoticeLevel(level)
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notice]{
		Items: items,
		Total: total,
	}, nil
}

// DeleteBefore prunes notices older than cutoff.
func (r *NoticePostgres) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM notices WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

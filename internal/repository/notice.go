package repository

import (
	"context"
	"time"

	"collabcore/internal/model"
)

// NoticeRepository defines data access for journaled notices using SQL queries only.
// Persistence only; callers own the notice semantics.
type NoticeRepository interface {
	// Create inserts a new notice record and returns the stored row.
	Create(ctx context.Context, n *model.Notice) (*model.Notice, error)

	// FindByID returns a notice by its ID.
	FindByID(ctx context.Context, id string) (*model.Notice, error)

	// List returns a page of notices, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Notice], error)

	// DeleteBefore removes notices created before the cutoff and returns how many were removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

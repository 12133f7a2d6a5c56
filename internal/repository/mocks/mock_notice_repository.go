package mocks

import (
	"context"
	"time"

	"collabcore/internal/model"
	"collabcore/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockNoticeRepository struct {
	mock.Mock
}

func (m *MockNoticeRepository) Create(ctx context.Context, n *model.Notice) (*model.Notice, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notice), args.Error(1)
}

func (m *MockNoticeRepository) FindByID(ctx context.Context, id string) (*model.Notice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notice), args.Error(1)
}

func (m *MockNoticeRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Notice], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Notice]), args.Error(1)
}

func (m *MockNoticeRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

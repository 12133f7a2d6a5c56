package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/stretchr/testify/mock"

	"collabcore/internal/storage"
)

// MockStorage is a testify mock of storage.Storage.
// Put may return a func(ctx, key, r, opt) ObjectInfo to echo the generated staging key.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// OnStaged expects one Get of a staged object holding body, uploaded as filename.
func (m *MockStorage) OnStaged(key, filename, contentType, body string) *mock.Call {
	return m.On("Get", mock.Anything, key).Return(io.NopCloser(strings.NewReader(body)), storage.ObjectInfo{
		Key:         key,
		Size:        int64(len(body)),
		ContentType: contentType,
		Metadata:    map[string]string{"Original-Filename": filename},
	}, nil).Once()
}

package mocks

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/stretchr/testify/mock"

	"collabcore/internal/transport"
)

// MockTransport is a testify mock of transport.Transport.
// The first Return value is the response "data"; it is copied into out through JSON
// so tests exercise the same decoding the real transport does.
type MockTransport struct {
	mock.Mock
}

var _ transport.Transport = (*MockTransport)(nil)

func (m *MockTransport) Get(ctx context.Context, path string, query url.Values, out any) error {
	args := m.Called(ctx, path, query)
	return fill(args, out)
}

func (m *MockTransport) Post(ctx context.Context, path string, body any, out any) error {
	args := m.Called(ctx, path, body)
	return fill(args, out)
}

func (m *MockTransport) PostMultipart(ctx context.Context, path string, form transport.Multipart, out any) error {
	args := m.Called(ctx, path, form)
	return fill(args, out)
}

func (m *MockTransport) Patch(ctx context.Context, path string, body any, out any) error {
	args := m.Called(ctx, path, body)
	return fill(args, out)
}

func (m *MockTransport) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func fill(args mock.Arguments, out any) error {
	if err := args.Error(1); err != nil {
		return err
	}
	data := args.Get(0)
	if f, ok := data.(func() any); ok {
		data = f()
	}
	if data == nil || out == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

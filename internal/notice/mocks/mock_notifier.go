package mocks

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a testify mock of notice.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ShowSuccess(text string) { m.Called(text) }
func (m *MockNotifier) ShowError(text string)   { m.Called(text) }

// RecordingNotifier records notices for assertions without expectations.
type RecordingNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *RecordingNotifier) ShowSuccess(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, text)
}

func (r *RecordingNotifier) ShowError(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, text)
}

// Counts returns the number of success and error notices seen.
func (r *RecordingNotifier) Counts() (successes, errors int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Successes), len(r.Errors)
}

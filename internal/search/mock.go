package search

import (
	"github.com/cristianoliveira/toastbox/internal/history"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: entry, query.
func (_m *MockProvider) Match(entry history.Entry, query string) bool {
	ret := _m.Called(entry, query)

	if rf, ok := ret.Get(0).(func(history.Entry, string) bool); ok {
		return rf(entry, query)
	}
	return ret.Bool(0)
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() string); ok {
		return rf()
	}
	return ret.String(0)
}

package mocks

import (
	"context"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/stretchr/testify/mock"
)

// CompletionReporter is a mock type for the CompletionReporter type
type CompletionReporter struct {
	mock.Mock
}

func (_m *CompletionReporter) ReportCompletion(ctx context.Context, event models.CompletionEvent) {
	_m.Called(ctx, event)
}

// CompletionEventPublisher is a mock type for the CompletionEventPublisher type
type CompletionEventPublisher struct {
	mock.Mock
}

func (_m *CompletionEventPublisher) PublishCompletion(ctx context.Context, event models.CompletionEvent) error {
	return _m.Called(ctx, event).Error(0)
}

// CompletionRecorder is a mock type for the CompletionRecorder type
type CompletionRecorder struct {
	mock.Mock
}

func (_m *CompletionRecorder) RecordCompletion(ctx context.Context, event models.CompletionEvent) (bool, error) {
	ret := _m.Called(ctx, event)
	return ret.Bool(0), ret.Error(1)
}

// ClientNotifier is a mock type for the ClientNotifier type
type ClientNotifier struct {
	mock.Mock
}

func (_m *ClientNotifier) SendToUser(userID string, msg interfaces.ClientMessage) {
	_m.Called(userID, msg)
}

// NewCompletionReporter creates a new instance of CompletionReporter. It also registers a cleanup function to assert the mocks expectations.
func NewCompletionReporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *CompletionReporter {
	m := &CompletionReporter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewCompletionEventPublisher creates a new instance of CompletionEventPublisher. It also registers a cleanup function to assert the mocks expectations.
func NewCompletionEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *CompletionEventPublisher {
	m := &CompletionEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewCompletionRecorder creates a new instance of CompletionRecorder. It also registers a cleanup function to assert the mocks expectations.
func NewCompletionRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *CompletionRecorder {
	m := &CompletionRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewClientNotifier creates a new instance of ClientNotifier. It also registers a cleanup function to assert the mocks expectations.
func NewClientNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *ClientNotifier {
	m := &ClientNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var (
	_ interfaces.CompletionReporter       = (*CompletionReporter)(nil)
	_ interfaces.CompletionEventPublisher = (*CompletionEventPublisher)(nil)
	_ interfaces.CompletionRecorder       = (*CompletionRecorder)(nil)
	_ interfaces.ClientNotifier           = (*ClientNotifier)(nil)
)

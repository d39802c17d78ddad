package mocks

import (
	"context"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/stretchr/testify/mock"
)

// ProfileRepository is a mock type for the ProfileRepository type
type ProfileRepository struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, userID
func (_m *ProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.Profile
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Profile); ok {
		r0 = rf(ctx, userID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Profile)
	}

	return r0, ret.Error(1)
}

// Upsert provides a mock function with given fields: ctx, userID, update
func (_m *ProfileRepository) Upsert(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	ret := _m.Called(ctx, userID, update)

	var r0 *models.Profile
	if rf, ok := ret.Get(0).(func(context.Context, string, models.ProfileUpdate) *models.Profile); ok {
		r0 = rf(ctx, userID, update)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Profile)
	}

	return r0, ret.Error(1)
}

// AddCompletedItem provides a mock function with given fields: ctx, userID, kind, itemID, points
func (_m *ProfileRepository) AddCompletedItem(ctx context.Context, userID string, kind models.CompletionKind, itemID string, points int64) (bool, error) {
	ret := _m.Called(ctx, userID, kind, itemID, points)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string, models.CompletionKind, string, int64) bool); ok {
		r0 = rf(ctx, userID, kind, itemID, points)
	} else {
		r0 = ret.Bool(0)
	}

	return r0, ret.Error(1)
}

// NewProfileRepository creates a new instance of ProfileRepository. It also registers a cleanup function to assert the mocks expectations.
func NewProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.ProfileRepository = (*ProfileRepository)(nil)

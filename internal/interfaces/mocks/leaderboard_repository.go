package mocks

import (
	"context"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/stretchr/testify/mock"
)

// LeaderboardRepository is a mock type for the LeaderboardRepository type
type LeaderboardRepository struct {
	mock.Mock
}

func (_m *LeaderboardRepository) AddPoints(ctx context.Context, userID, displayName string, points int64) error {
	ret := _m.Called(ctx, userID, displayName, points)
	return ret.Error(0)
}

func (_m *LeaderboardRepository) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	ret := _m.Called(ctx, n)
	var r0 []models.LeaderboardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.LeaderboardEntry)
	}
	return r0, ret.Error(1)
}

func (_m *LeaderboardRepository) Rank(ctx context.Context, userID string) (*models.LeaderboardEntry, error) {
	ret := _m.Called(ctx, userID)
	var r0 *models.LeaderboardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LeaderboardEntry)
	}
	return r0, ret.Error(1)
}

// NewLeaderboardRepository creates a new instance of LeaderboardRepository.
func NewLeaderboardRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *LeaderboardRepository {
	m := &LeaderboardRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.LeaderboardRepository = (*LeaderboardRepository)(nil)

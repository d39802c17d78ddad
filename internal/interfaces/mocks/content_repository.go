package mocks

import (
	"context"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/stretchr/testify/mock"
)

// GeneratedContentRepository is a mock type for the GeneratedContentRepository type
type GeneratedContentRepository struct {
	mock.Mock
}

func (_m *GeneratedContentRepository) SaveScenario(ctx context.Context, s *models.Scenario) error {
	return _m.Called(ctx, s).Error(0)
}

func (_m *GeneratedContentRepository) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Scenario)
	}
	return r0, ret.Error(1)
}

func (_m *GeneratedContentRepository) ListScenarios(ctx context.Context, limit int) ([]models.ScenarioSummary, error) {
	ret := _m.Called(ctx, limit)
	var r0 []models.ScenarioSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.ScenarioSummary)
	}
	return r0, ret.Error(1)
}

func (_m *GeneratedContentRepository) SaveQuiz(ctx context.Context, q *models.Quiz) error {
	return _m.Called(ctx, q).Error(0)
}

func (_m *GeneratedContentRepository) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Quiz
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Quiz)
	}
	return r0, ret.Error(1)
}

func (_m *GeneratedContentRepository) ListQuizzes(ctx context.Context, limit int) ([]models.Quiz, error) {
	ret := _m.Called(ctx, limit)
	var r0 []models.Quiz
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Quiz)
	}
	return r0, ret.Error(1)
}

// NewGeneratedContentRepository creates a new instance of GeneratedContentRepository.
func NewGeneratedContentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *GeneratedContentRepository {
	m := &GeneratedContentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.GeneratedContentRepository = (*GeneratedContentRepository)(nil)

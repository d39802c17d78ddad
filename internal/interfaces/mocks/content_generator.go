package mocks

import (
	"context"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/stretchr/testify/mock"
)

// ContentGenerator is a mock type for the ContentGenerator type
type ContentGenerator struct {
	mock.Mock
}

func (_m *ContentGenerator) GenerateScenario(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.Scenario, error) {
	ret := _m.Called(ctx, session, req)
	var r0 *models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Scenario)
	}
	return r0, ret.Error(1)
}

func (_m *ContentGenerator) GenerateQuiz(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.Quiz, error) {
	ret := _m.Called(ctx, session, req)
	var r0 *models.Quiz
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Quiz)
	}
	return r0, ret.Error(1)
}

// NewContentGenerator creates a new instance of ContentGenerator.
func NewContentGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContentGenerator {
	m := &ContentGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.ContentGenerator = (*ContentGenerator)(nil)

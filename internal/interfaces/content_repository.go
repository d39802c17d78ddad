package interfaces

import (
	"context"

	"troubleshoot-titans/internal/models"
)

// GeneratedContentRepository хранит сгенерированные сценарии и квизы.
//
//go:generate mockery --name GeneratedContentRepository --output ./mocks --outpkg mocks --case=underscore
type GeneratedContentRepository interface {
	SaveScenario(ctx context.Context, s *models.Scenario) error
	// GetScenario возвращает models.ErrScenarioNotFound, если сценария нет.
	GetScenario(ctx context.Context, id string) (*models.Scenario, error)
	ListScenarios(ctx context.Context, limit int) ([]models.ScenarioSummary, error)

	SaveQuiz(ctx context.Context, q *models.Quiz) error
	// GetQuiz возвращает models.ErrQuizNotFound, если квиза нет.
	GetQuiz(ctx context.Context, id string) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, limit int) ([]models.Quiz, error)
}

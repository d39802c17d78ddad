package interfaces

import (
	"context"

	"troubleshoot-titans/internal/models"
)

// ContentGenerator генерирует сценарии и квизы. Ответ уже провалидирован.
//
//go:generate mockery --name ContentGenerator --output ./mocks --outpkg mocks --case=underscore
type ContentGenerator interface {
	GenerateScenario(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.Scenario, error)
	GenerateQuiz(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.Quiz, error)
}

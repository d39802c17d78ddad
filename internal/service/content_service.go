package service

import (
	"context"

	"troubleshoot-titans/internal/content"
	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"go.uber.org/zap"
)

// ScenarioService - каталог сценариев и их генерация без запуска игры.
type ScenarioService struct {
	store     *content.Store
	generator interfaces.ContentGenerator
	logger    *zap.Logger
}

func NewScenarioService(store *content.Store, generator interfaces.ContentGenerator, logger *zap.Logger) *ScenarioService {
	return &ScenarioService{store: store, generator: generator, logger: logger.Named("ScenarioService")}
}

func (s *ScenarioService) List(ctx context.Context) []models.ScenarioSummary {
	return s.store.ListScenarios(ctx)
}

// Get возвращает сценарий без правильных ответов.
func (s *ScenarioService) Get(ctx context.Context, id string) (*models.PublicScenario, error) {
	sc, err := s.store.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}
	public := sc.Public()
	return &public, nil
}

// Generate генерирует, валидирует и сохраняет сценарий.
func (s *ScenarioService) Generate(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.PublicScenario, error) {
	sc, err := s.generator.GenerateScenario(ctx, session, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveScenario(ctx, sc); err != nil {
		s.logger.Error("Failed to persist generated scenario", zap.String("scenarioID", sc.ID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Scenario generated", zap.String("userID", session.UserID), zap.String("scenarioID", sc.ID))
	public := sc.Public()
	return &public, nil
}

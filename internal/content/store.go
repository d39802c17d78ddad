package content

import (
	"context"
	"errors"
	"fmt"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/quiz"
	"troubleshoot-titans/internal/scenario"

	"go.uber.org/zap"
)

// generatedListLimit - сколько последних сгенерированных элементов показывать в списках.
const generatedListLimit = 50

// Store объединяет статический каталог и сгенерированный контент.
type Store struct {
	catalog   *Catalog
	generated interfaces.GeneratedContentRepository
	logger    *zap.Logger
}

// NewStore создает хранилище контента.
func NewStore(catalog *Catalog, generated interfaces.GeneratedContentRepository, logger *zap.Logger) *Store {
	return &Store{catalog: catalog, generated: generated, logger: logger.Named("ContentStore")}
}

// Catalog возвращает статический каталог.
func (s *Store) Catalog() *Catalog {
	return s.catalog
}

// GetScenario ищет сценарий сначала в каталоге, затем среди сгенерированных.
// Сохраненный сценарий проверяется заново: испорченная запись считается отсутствующей.
func (s *Store) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	if sc, ok := s.catalog.Scenario(id); ok {
		return sc, nil
	}
	sc, err := s.generated.GetScenario(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrScenarioNotFound) || errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrScenarioNotFound
		}
		return nil, fmt.Errorf("get generated scenario %s: %w", id, err)
	}
	if err := scenario.Validate(sc); err != nil {
		s.logger.Error("Stored generated scenario is malformed", zap.String("scenarioID", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrScenarioNotFound, err)
	}
	return sc, nil
}

// ListScenarios возвращает статические сценарии и последние сгенерированные.
// Ошибка хранилища сгенерированных не мешает отдать статический список.
func (s *Store) ListScenarios(ctx context.Context) []models.ScenarioSummary {
	result := make([]models.ScenarioSummary, 0, len(s.catalog.Scenarios()))
	for _, sc := range s.catalog.Scenarios() {
		result = append(result, sc.Summary())
	}

	generated, err := s.generated.ListScenarios(ctx, generatedListLimit)
	if err != nil {
		s.logger.Error("Failed to list generated scenarios", zap.Error(err))
		return result
	}
	return append(result, generated...)
}

// SaveScenario сохраняет сгенерированный сценарий.
func (s *Store) SaveScenario(ctx context.Context, sc *models.Scenario) error {
	if sc.Source != models.SourceGenerated {
		return fmt.Errorf("%w: only generated scenarios can be saved", models.ErrInvalidInput)
	}
	return s.generated.SaveScenario(ctx, sc)
}

// GetQuiz ищет квиз в каталоге, затем среди сгенерированных. Сохраненный квиз проверяется заново.
func (s *Store) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	if q, ok := s.catalog.Quiz(id); ok {
		return q, nil
	}
	q, err := s.generated.GetQuiz(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrQuizNotFound) || errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrQuizNotFound
		}
		return nil, fmt.Errorf("get generated quiz %s: %w", id, err)
	}
	if err := quiz.Validate(q); err != nil {
		s.logger.Error("Stored generated quiz is malformed", zap.String("quizID", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrQuizNotFound, err)
	}
	return q, nil
}

// ListQuizzes возвращает квизы без ответов.
func (s *Store) ListQuizzes(ctx context.Context) []models.PublicQuiz {
	result := make([]models.PublicQuiz, 0, len(s.catalog.Quizzes()))
	for _, q := range s.catalog.Quizzes() {
		result = append(result, q.Public(false))
	}

	generated, err := s.generated.ListQuizzes(ctx, generatedListLimit)
	if err != nil {
		s.logger.Error("Failed to list generated quizzes", zap.Error(err))
		return result
	}
	for i := range generated {
		result = append(result, generated[i].Public(false))
	}
	return result
}

// SaveQuiz сохраняет сгенерированный квиз.
func (s *Store) SaveQuiz(ctx context.Context, q *models.Quiz) error {
	if q.Source != models.SourceGenerated {
		return fmt.Errorf("%w: only generated quizzes can be saved", models.ErrInvalidInput)
	}
	return s.generated.SaveQuiz(ctx, q)
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/quiz"
	"troubleshoot-titans/internal/scenario"
	"troubleshoot-titans/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GeneratorConfig - настройки генератора контента.
type GeneratorConfig struct {
	MaxPromptTokens     int
	MaxCompletionTokens int
	Temperature         float32
}

// Generator строит сценарии и квизы через AIClient. Повторов при ошибке нет.
type Generator struct {
	client  AIClient
	counter TokenCounter
	cfg     GeneratorConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewGenerator создает генератор.
func NewGenerator(client AIClient, counter TokenCounter, cfg GeneratorConfig, logger *zap.Logger) *Generator {
	return &Generator{
		client:  client,
		counter: counter,
		cfg:     cfg,
		logger:  logger.Named("Generator"),
		now:     time.Now,
	}
}

type scenarioPromptData struct {
	models.GenerationRequest
	MinSteps       int
	MaxSteps       int
	ActionsPerStep int
}

type quizPromptData struct {
	models.GenerationRequest
	MinQuestions       int
	MaxQuestions       int
	OptionsPerQuestion int
}

// GenerateScenario запрашивает сценарий и валидирует ответ.
// Невалидный ответ возвращается как models.ErrGenerationFailed, оборачивающая *scenario.ValidationError.
func (g *Generator) GenerateScenario(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.Scenario, error) {
	req = withDefaults(req)
	data := scenarioPromptData{
		GenerationRequest: req,
		MinSteps:          scenario.MinGeneratedSteps,
		MaxSteps:          scenario.MaxGeneratedSteps,
		ActionsPerStep:    scenario.ActionsPerStep,
	}

	raw, err := g.generate(ctx, session.UserID, "scenario", data, ScenarioSchema)
	if err != nil {
		return nil, err
	}

	s, err := scenario.Parse([]byte(raw))
	if err != nil {
		generationResults.WithLabelValues("scenario", "rejected").Inc()
		g.logger.Warn("Generated scenario rejected",
			zap.String("user_id", session.UserID),
			zap.Error(err),
			zap.String("response", utils.StringShort(raw, 500)),
		)
		return nil, fmt.Errorf("%w: %w", models.ErrGenerationFailed, err)
	}

	s.ID = uuid.NewString()
	s.Topic = req.Title
	s.Difficulty = req.Difficulty
	s.Source = models.SourceGenerated
	s.CreatedBy = session.UserID
	s.CreatedAt = g.now().UTC()
	generationResults.WithLabelValues("scenario", "ok").Inc()
	return s, nil
}

// GenerateQuiz запрашивает квиз и валидирует ответ.
func (g *Generator) GenerateQuiz(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.Quiz, error) {
	req = withDefaults(req)
	data := quizPromptData{
		GenerationRequest:  req,
		MinQuestions:       quiz.MinQuestions,
		MaxQuestions:       quiz.MaxQuestions,
		OptionsPerQuestion: quiz.OptionsPerQuestion,
	}

	raw, err := g.generate(ctx, session.UserID, "quiz", data, QuizSchema)
	if err != nil {
		return nil, err
	}

	q, err := quiz.Parse([]byte(raw))
	if err != nil {
		generationResults.WithLabelValues("quiz", "rejected").Inc()
		g.logger.Warn("Generated quiz rejected", zap.String("user_id", session.UserID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrGenerationFailed, err)
	}

	q.ID = uuid.NewString()
	q.Topic = req.Title
	q.Difficulty = req.Difficulty
	q.Source = models.SourceGenerated
	q.CreatedBy = session.UserID
	q.CreatedAt = g.now().UTC()
	generationResults.WithLabelValues("quiz", "ok").Inc()
	return q, nil
}

// generate рендерит промты, проверяет бюджет токенов и вызывает модель.
func (g *Generator) generate(ctx context.Context, userID, content string, data any, schema *ResponseSchema) (string, error) {
	systemPrompt, err := renderPrompt(content+"_system.tmpl", data)
	if err != nil {
		return "", err
	}
	userPrompt, err := renderPrompt(content+"_user.tmpl", data)
	if err != nil {
		return "", err
	}

	if g.cfg.MaxPromptTokens > 0 {
		tokens := g.counter.Count(systemPrompt) + g.counter.Count(userPrompt)
		if tokens > g.cfg.MaxPromptTokens {
			generationResults.WithLabelValues(content, "refused").Inc()
			return "", fmt.Errorf("%w: %d tokens, limit %d", models.ErrPromptTooLarge, tokens, g.cfg.MaxPromptTokens)
		}
	}

	temperature := g.cfg.Temperature
	params := GenerationParams{
		Temperature: &temperature,
		MaxTokens:   g.cfg.MaxCompletionTokens,
		Schema:      schema,
	}
	text, _, err := g.client.GenerateText(ctx, userID, systemPrompt, strings.TrimSpace(userPrompt), params)
	if err != nil {
		generationResults.WithLabelValues(content, "error").Inc()
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", models.ErrGenerationFailed, err)
	}
	return utils.ExtractJSON(text), nil
}

func withDefaults(req models.GenerationRequest) models.GenerationRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	return req
}

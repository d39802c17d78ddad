package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	insertScenarioQuery = `
INSERT INTO generated_scenarios (id, title, topic, difficulty, step_count, created_by, body, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	getScenarioBodyQuery = `SELECT body FROM generated_scenarios WHERE id = $1`

	listScenariosQuery = `
SELECT id, title, topic, difficulty, step_count, created_at
FROM generated_scenarios ORDER BY created_at DESC LIMIT $1`

	insertQuizQuery = `
INSERT INTO generated_quizzes (id, title, created_by, body, created_at) VALUES ($1, $2, $3, $4, $5)`

	getQuizBodyQuery = `SELECT body FROM generated_quizzes WHERE id = $1`

	listQuizzesQuery = `SELECT body FROM generated_quizzes ORDER BY created_at DESC LIMIT $1`
)

type scenarioSummaryRow struct {
	ID         string            `db:"id"`
	Title      string            `db:"title"`
	Topic      string            `db:"topic"`
	Difficulty models.Difficulty `db:"difficulty"`
	StepCount  int               `db:"step_count"`
	CreatedAt  time.Time         `db:"created_at"`
}

// pgContentRepository хранит сгенерированный контент как JSONB.
type pgContentRepository struct {
	db     DBTX
	logger *zap.Logger
}

var _ interfaces.GeneratedContentRepository = (*pgContentRepository)(nil)

// NewPgContentRepository создает репозиторий сгенерированного контента.
func NewPgContentRepository(db DBTX, logger *zap.Logger) interfaces.GeneratedContentRepository {
	return &pgContentRepository{db: db, logger: logger.Named("PgContentRepo")}
}

func (r *pgContentRepository) SaveScenario(ctx context.Context, s *models.Scenario) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	_, err = r.db.Exec(ctx, insertScenarioQuery,
		s.ID, s.Title, s.Topic, string(s.Difficulty), len(s.Steps), s.CreatedBy, body, s.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to save scenario", zap.String("scenarioID", s.ID), zap.Error(err))
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	r.logger.Info("Generated scenario saved", zap.String("scenarioID", s.ID), zap.String("createdBy", s.CreatedBy))
	return nil
}

func (r *pgContentRepository) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	var body []byte
	if err := r.db.QueryRow(ctx, getScenarioBodyQuery, id).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	var s models.Scenario
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", id, err)
	}
	s.Source = models.SourceGenerated
	return &s, nil
}

func (r *pgContentRepository) ListScenarios(ctx context.Context, limit int) ([]models.ScenarioSummary, error) {
	var rows []scenarioSummaryRow
	if err := pgxscan.Select(ctx, r.db, &rows, listScenariosQuery, limit); err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	result := make([]models.ScenarioSummary, len(rows))
	for i, row := range rows {
		result[i] = models.ScenarioSummary{
			ID:         row.ID,
			Title:      row.Title,
			Topic:      row.Topic,
			Difficulty: row.Difficulty,
			Source:     models.SourceGenerated,
			StepCount:  row.StepCount,
			CreatedAt:  row.CreatedAt,
		}
	}
	return result, nil
}

func (r *pgContentRepository) SaveQuiz(ctx context.Context, q *models.Quiz) error {
	body, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz: %w", err)
	}
	if _, err := r.db.Exec(ctx, insertQuizQuery, q.ID, q.Title, q.CreatedBy, body, q.CreatedAt); err != nil {
		r.logger.Error("Failed to save quiz", zap.String("quizID", q.ID), zap.Error(err))
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

func (r *pgContentRepository) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	var body []byte
	if err := r.db.QueryRow(ctx, getQuizBodyQuery, id).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	var q models.Quiz
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("failed to decode quiz %s: %w", id, err)
	}
	q.Source = models.SourceGenerated
	return &q, nil
}

func (r *pgContentRepository) ListQuizzes(ctx context.Context, limit int) ([]models.Quiz, error) {
	var bodies [][]byte
	if err := pgxscan.Select(ctx, r.db, &bodies, listQuizzesQuery, limit); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	result := make([]models.Quiz, 0, len(bodies))
	for _, body := range bodies {
		var q models.Quiz
		if err := json.Unmarshal(body, &q); err != nil {
			r.logger.Warn("Skipping undecodable quiz", zap.Error(err))
			continue
		}
		q.Source = models.SourceGenerated
		result = append(result, q)
	}
	return result, nil
}

package service

import (
	"context"
	"strconv"
	"time"

	"troubleshoot-titans/internal/content"
	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/quiz"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuizOptions - очки и порог прохождения квиза.
type QuizOptions struct {
	PassPercent int
	Points      int64
}

type QuizService struct {
	store     *content.Store
	generator interfaces.ContentGenerator
	reporter  interfaces.CompletionReporter
	opts      QuizOptions
	logger    *zap.Logger
	now       func() time.Time
}

func NewQuizService(
	store *content.Store,
	generator interfaces.ContentGenerator,
	reporter interfaces.CompletionReporter,
	opts QuizOptions,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		store:     store,
		generator: generator,
		reporter:  reporter,
		opts:      opts,
		logger:    logger.Named("QuizService"),
		now:       time.Now,
	}
}

func (s *QuizService) List(ctx context.Context) []models.PublicQuiz {
	return s.store.ListQuizzes(ctx)
}

// Get возвращает квиз с вопросами, но без ответов.
func (s *QuizService) Get(ctx context.Context, id string) (*models.PublicQuiz, error) {
	q, err := s.store.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	public := q.Public(true)
	return &public, nil
}

func (s *QuizService) Generate(ctx context.Context, session *models.Session, req models.GenerationRequest) (*models.PublicQuiz, error) {
	q, err := s.generator.GenerateQuiz(ctx, session, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveQuiz(ctx, q); err != nil {
		s.logger.Error("Failed to persist generated quiz", zap.String("quizID", q.ID), zap.Error(err))
		return nil, err
	}
	public := q.Public(true)
	return &public, nil
}

// Submit оценивает ответы. Пройденный квиз засчитывается в профиль.
func (s *QuizService) Submit(ctx context.Context, session *models.Session, quizID string, answers []int) (*models.QuizResult, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	result, err := quiz.Grade(q, answers, s.opts.PassPercent)
	if err != nil {
		return nil, err
	}
	quizSubmissions.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()

	if result.Passed {
		s.reporter.ReportCompletion(ctx, models.CompletionEvent{
			EventID:     uuid.NewString(),
			UserID:      session.UserID,
			DisplayName: session.DisplayName,
			Kind:        models.CompletionQuiz,
			ItemID:      q.ID,
			Points:      s.opts.Points,
			OccurredAt:  s.now().UTC(),
		})
	}
	s.logger.Info("Quiz graded",
		zap.String("userID", session.UserID),
		zap.String("quizID", q.ID),
		zap.Int("percent", result.Percent),
		zap.Bool("passed", result.Passed))
	return result, nil
}

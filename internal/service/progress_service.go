package service

import (
	"context"
	"fmt"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"go.uber.org/zap"
)

// ProgressService применяет события завершения к профилю и рейтингу.
type ProgressService struct {
	profiles    interfaces.ProfileRepository
	leaderboard interfaces.LeaderboardRepository
	logger      *zap.Logger
}

var _ interfaces.CompletionRecorder = (*ProgressService)(nil)

func NewProgressService(
	profiles interfaces.ProfileRepository,
	leaderboard interfaces.LeaderboardRepository,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		profiles:    profiles,
		leaderboard: leaderboard,
		logger:      logger.Named("ProgressService"),
	}
}

// RecordCompletion идемпотентно добавляет элемент в профиль.
// Очки в рейтинг начисляются только при первом завершении.
func (s *ProgressService) RecordCompletion(ctx context.Context, event models.CompletionEvent) (bool, error) {
	log := s.logger.With(
		zap.String("userID", event.UserID),
		zap.String("kind", string(event.Kind)),
		zap.String("itemID", event.ItemID),
		zap.String("eventID", event.EventID),
	)

	added, err := s.profiles.AddCompletedItem(ctx, event.UserID, event.Kind, event.ItemID, event.Points)
	if err != nil {
		completionsTotal.WithLabelValues(string(event.Kind), "failed").Inc()
		log.Error("Failed to record completion", zap.Error(err))
		return false, fmt.Errorf("record completion: %w", err)
	}
	if !added {
		completionsTotal.WithLabelValues(string(event.Kind), "duplicate").Inc()
		log.Debug("Item already completed, skipping")
		return false, nil
	}
	completionsTotal.WithLabelValues(string(event.Kind), "added").Inc()

	// Профиль уже обновлен: ошибка рейтинга не должна приводить к повтору события
	if event.Points > 0 {
		if err := s.leaderboard.AddPoints(ctx, event.UserID, event.DisplayName, event.Points); err != nil {
			completionsTotal.WithLabelValues(string(event.Kind), "leaderboard_failed").Inc()
			log.Error("Failed to add leaderboard points", zap.Int64("points", event.Points), zap.Error(err))
		}
	}
	log.Info("Completion recorded", zap.Int64("points", event.Points))
	return true, nil
}

package interfaces

import (
	"context"

	"troubleshoot-titans/internal/models"
)

// LeaderboardRepository - рейтинг пользователей по очкам.
//
//go:generate mockery --name LeaderboardRepository --output ./mocks --outpkg mocks --case=underscore
type LeaderboardRepository interface {
	// AddPoints увеличивает очки пользователя и обновляет отображаемое имя.
	AddPoints(ctx context.Context, userID, displayName string, points int64) error
	// Top возвращает n лучших, ранги начинаются с 1.
	Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error)
	// Rank возвращает позицию пользователя. models.ErrNotFound, если его нет в рейтинге.
	Rank(ctx context.Context, userID string) (*models.LeaderboardEntry, error)
}

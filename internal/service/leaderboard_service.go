package service

import (
	"context"
	"errors"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"
)

const maxLeaderboardSize = 100

// LeaderboardView - топ и позиция текущего пользователя (nil, если его нет в рейтинге).
type LeaderboardView struct {
	Top []models.LeaderboardEntry `json:"top"`
	Me  *models.LeaderboardEntry  `json:"me,omitempty"`
}

type LeaderboardService struct {
	repo        interfaces.LeaderboardRepository
	defaultSize int
}

func NewLeaderboardService(repo interfaces.LeaderboardRepository, defaultSize int) *LeaderboardService {
	return &LeaderboardService{repo: repo, defaultSize: defaultSize}
}

func (s *LeaderboardService) Get(ctx context.Context, session *models.Session, limit int) (*LeaderboardView, error) {
	SanitizeLimit(&limit, s.defaultSize, maxLeaderboardSize)
	top, err := s.repo.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	view := &LeaderboardView{Top: top}

	me, err := s.repo.Rank(ctx, session.UserID)
	switch {
	case err == nil:
		view.Me = me
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}
	return view, nil
}

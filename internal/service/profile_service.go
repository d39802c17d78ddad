package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"go.uber.org/zap"
)

type ProfileService struct {
	repo   interfaces.ProfileRepository
	logger *zap.Logger
}

func NewProfileService(repo interfaces.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger.Named("ProfileService")}
}

// Get возвращает профиль, создавая его из данных сессии при первом обращении.
func (s *ProfileService) Get(ctx context.Context, session *models.Session) (*models.Profile, error) {
	p, err := s.repo.Get(ctx, session.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, models.ErrProfileNotFound) {
		return nil, err
	}

	update := models.ProfileUpdate{}
	if session.DisplayName != "" {
		name := session.DisplayName
		update.DisplayName = &name
	}
	if session.Email != "" {
		email := session.Email
		update.Email = &email
	}
	p, err = s.repo.Upsert(ctx, session.UserID, update)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	s.logger.Info("Profile created", zap.String("userID", session.UserID))
	return p, nil
}

// Update выполняет merge-обновление полей профиля.
func (s *ProfileService) Update(ctx context.Context, session *models.Session, update models.ProfileUpdate) (*models.Profile, error) {
	update.Email = nil
	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name must not be blank", models.ErrInvalidInput)
		}
		update.DisplayName = &name
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		update.Bio = &bio
	}
	if update.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", models.ErrInvalidInput)
	}
	return s.repo.Upsert(ctx, session.UserID, update)
}

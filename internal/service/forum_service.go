package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultForumPageSize = 20
	maxForumPageSize     = 50
	maxPostTags          = 5
)

type ForumService struct {
	repo   interfaces.ForumRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewForumService(repo interfaces.ForumRepository, logger *zap.Logger) *ForumService {
	return &ForumService{repo: repo, logger: logger.Named("ForumService"), now: time.Now}
}

func (s *ForumService) CreatePost(ctx context.Context, session *models.Session, req models.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if n := utf8.RuneCountInString(title); n < 3 || n > 120 {
		return nil, fmt.Errorf("%w: title must be 3-120 characters", models.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(body); n < 1 || n > 5000 {
		return nil, fmt.Errorf("%w: body must be 1-5000 characters", models.ErrInvalidInput)
	}

	now := s.now().UTC()
	post := &models.Post{
		ID:         uuid.New(),
		AuthorID:   session.UserID,
		AuthorName: session.DisplayName,
		Title:      title,
		Body:       body,
		Tags:       normalizeTags(req.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("Post created", zap.String("postID", post.ID.String()), zap.String("userID", session.UserID))
	return post, nil
}

// normalizeTags приводит теги к нижнему регистру и убирает дубликаты.
func normalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
		if len(result) == maxPostTags {
			break
		}
	}
	return result
}

func (s *ForumService) ListPosts(ctx context.Context, cursor string, limit int) ([]models.Post, string, error) {
	SanitizeLimit(&limit, defaultForumPageSize, maxForumPageSize)
	return s.repo.ListPosts(ctx, cursor, limit)
}

func (s *ForumService) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.repo.GetPost(ctx, id)
}

// DeletePost удаляет пост автора. Чужой пост - models.ErrForbidden.
func (s *ForumService) DeletePost(ctx context.Context, session *models.Session, id uuid.UUID) error {
	err := s.repo.DeletePost(ctx, id, session.UserID)
	if err == nil {
		s.logger.Info("Post deleted", zap.String("postID", id.String()), zap.String("userID", session.UserID))
		return nil
	}
	if !errors.Is(err, models.ErrPostNotFound) {
		return err
	}
	if _, getErr := s.repo.GetPost(ctx, id); getErr == nil {
		return models.ErrForbidden
	}
	return models.ErrPostNotFound
}

func (s *ForumService) AddComment(ctx context.Context, session *models.Session, postID uuid.UUID, req models.CreateCommentRequest) (*models.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if n := utf8.RuneCountInString(body); n < 1 || n > 2000 {
		return nil, fmt.Errorf("%w: comment must be 1-2000 characters", models.ErrInvalidInput)
	}
	comment := &models.Comment{
		ID:         uuid.New(),
		PostID:     postID,
		AuthorID:   session.UserID,
		AuthorName: session.DisplayName,
		Body:       body,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ForumService) ListComments(ctx context.Context, postID uuid.UUID, cursor string, limit int) ([]models.Comment, string, error) {
	SanitizeLimit(&limit, defaultForumPageSize, maxForumPageSize)
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return nil, "", err
	}
	return s.repo.ListComments(ctx, postID, cursor, limit)
}

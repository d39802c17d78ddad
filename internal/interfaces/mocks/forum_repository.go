package mocks

import (
	"context"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ForumRepository is a mock type for the ForumRepository type
type ForumRepository struct {
	mock.Mock
}

func (_m *ForumRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return _m.Called(ctx, post).Error(0)
}

func (_m *ForumRepository) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Post)
	}
	return r0, ret.Error(1)
}

func (_m *ForumRepository) ListPosts(ctx context.Context, cursor string, limit int) ([]models.Post, string, error) {
	ret := _m.Called(ctx, cursor, limit)
	var r0 []models.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Post)
	}
	return r0, ret.String(1), ret.Error(2)
}

func (_m *ForumRepository) DeletePost(ctx context.Context, id uuid.UUID, authorID string) error {
	return _m.Called(ctx, id, authorID).Error(0)
}

func (_m *ForumRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	return _m.Called(ctx, comment).Error(0)
}

func (_m *ForumRepository) ListComments(ctx context.Context, postID uuid.UUID, cursor string, limit int) ([]models.Comment, string, error) {
	ret := _m.Called(ctx, postID, cursor, limit)
	var r0 []models.Comment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Comment)
	}
	return r0, ret.String(1), ret.Error(2)
}

// NewForumRepository creates a new instance of ForumRepository.
func NewForumRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ForumRepository {
	m := &ForumRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.ForumRepository = (*ForumRepository)(nil)

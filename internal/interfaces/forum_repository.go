package interfaces

import (
	"context"

	"troubleshoot-titans/internal/models"

	"github.com/google/uuid"
)

// ForumRepository - посты и комментарии сообщества.
//
//go:generate mockery --name ForumRepository --output ./mocks --outpkg mocks --case=underscore
type ForumRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	// GetPost возвращает models.ErrPostNotFound, если поста нет.
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	// ListPosts возвращает посты от новых к старым и курсор следующей страницы.
	ListPosts(ctx context.Context, cursor string, limit int) ([]models.Post, string, error)
	// DeletePost удаляет пост автора. models.ErrPostNotFound, если поста автора с таким id нет.
	DeletePost(ctx context.Context, id uuid.UUID, authorID string) error

	// AddComment добавляет комментарий и увеличивает счетчик поста.
	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID uuid.UUID, cursor string, limit int) ([]models.Comment, string, error)
}

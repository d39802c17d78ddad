package database

import (
	"context"
	"errors"
	"fmt"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	postColumns = `id, author_id, author_name, title, body, tags, comment_count, created_at, updated_at`

	insertPostQuery = `
INSERT INTO forum_posts (id, author_id, author_name, title, body, tags, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	getPostQuery = `SELECT ` + postColumns + ` FROM forum_posts WHERE id = $1`

	listPostsFirstPageQuery = `
SELECT ` + postColumns + ` FROM forum_posts
ORDER BY created_at DESC, id DESC LIMIT $1`

	listPostsAfterCursorQuery = `
SELECT ` + postColumns + ` FROM forum_posts
WHERE (created_at, id) < ($1, $2)
ORDER BY created_at DESC, id DESC LIMIT $3`

	deletePostQuery = `DELETE FROM forum_posts WHERE id = $1 AND author_id = $2`

	insertCommentQuery = `
INSERT INTO forum_comments (id, post_id, author_id, author_name, body, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	incrementCommentCountQuery = `
UPDATE forum_posts SET comment_count = comment_count + 1, updated_at = $2 WHERE id = $1`

	commentColumns = `id, post_id, author_id, author_name, body, created_at`

	listCommentsFirstPageQuery = `
SELECT ` + commentColumns + ` FROM forum_comments WHERE post_id = $1
ORDER BY created_at, id LIMIT $2`

	listCommentsAfterCursorQuery = `
SELECT ` + commentColumns + ` FROM forum_comments WHERE post_id = $1 AND (created_at, id) > ($2, $3)
ORDER BY created_at, id LIMIT $4`
)

// pgForumRepository - посты и комментарии в PostgreSQL.
type pgForumRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ interfaces.ForumRepository = (*pgForumRepository)(nil)

// NewPgForumRepository создает репозиторий форума.
func NewPgForumRepository(pool *pgxpool.Pool, logger *zap.Logger) interfaces.ForumRepository {
	return &pgForumRepository{pool: pool, logger: logger.Named("PgForumRepo")}
}

func (r *pgForumRepository) CreatePost(ctx context.Context, post *models.Post) error {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := r.pool.Exec(ctx, insertPostQuery,
		post.ID, post.AuthorID, post.AuthorName, post.Title, post.Body, tags, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create post", zap.String("postID", post.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *pgForumRepository) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := pgxscan.Get(ctx, r.pool, &post, getPostQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// ListPosts - keyset-пагинация по (created_at, id), от новых к старым.
func (r *pgForumRepository) ListPosts(ctx context.Context, cursor string, limit int) ([]models.Post, string, error) {
	cursorTime, cursorID, err := utils.DecodeCursor(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	// Запрашиваем на одну запись больше, чтобы понять, есть ли следующая страница
	var posts []models.Post
	if cursor == "" {
		err = pgxscan.Select(ctx, r.pool, &posts, listPostsFirstPageQuery, limit+1)
	} else {
		err = pgxscan.Select(ctx, r.pool, &posts, listPostsAfterCursorQuery, cursorTime, cursorID, limit+1)
	}
	if err != nil {
		r.logger.Error("Failed to list posts", zap.Error(err))
		return nil, "", fmt.Errorf("failed to list posts: %w", err)
	}

	var next string
	if len(posts) > limit {
		posts = posts[:limit]
		last := posts[len(posts)-1]
		next = utils.EncodeCursor(last.CreatedAt, last.ID)
	}
	return posts, next, nil
}

func (r *pgForumRepository) DeletePost(ctx context.Context, id uuid.UUID, authorID string) error {
	tag, err := r.pool.Exec(ctx, deletePostQuery, id, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPostNotFound
	}
	r.logger.Info("Post deleted", zap.String("postID", id.String()), zap.String("authorID", authorID))
	return nil
}

func (r *pgForumRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	return WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertCommentQuery,
			comment.ID, comment.PostID, comment.AuthorID, comment.AuthorName, comment.Body, comment.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return models.ErrPostNotFound
			}
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		if _, err := tx.Exec(ctx, incrementCommentCountQuery, comment.PostID, comment.CreatedAt); err != nil {
			return fmt.Errorf("failed to update comment count: %w", err)
		}
		return nil
	})
}

// ListComments - комментарии в хронологическом порядке.
func (r *pgForumRepository) ListComments(ctx context.Context, postID uuid.UUID, cursor string, limit int) ([]models.Comment, string, error) {
	cursorTime, cursorID, err := utils.DecodeCursor(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	var comments []models.Comment
	if cursor == "" {
		err = pgxscan.Select(ctx, r.pool, &comments, listCommentsFirstPageQuery, postID, limit+1)
	} else {
		err = pgxscan.Select(ctx, r.pool, &comments, listCommentsAfterCursorQuery, postID, cursorTime, cursorID, limit+1)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to list comments: %w", err)
	}

	var next string
	if len(comments) > limit {
		comments = comments[:limit]
		last := comments[len(comments)-1]
		next = utils.EncodeCursor(last.CreatedAt, last.ID)
	}
	return comments, next, nil
}

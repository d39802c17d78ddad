package models

import (
	"time"

	"github.com/google/uuid"
)

// Post - пост на форуме сообщества.
type Post struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AuthorID     string    `json:"authorId" db:"author_id"`
	AuthorName   string    `json:"authorName" db:"author_name"`
	Title        string    `json:"title" db:"title"`
	Body         string    `json:"body" db:"body"`
	Tags         []string  `json:"tags" db:"tags"`
	CommentCount int       `json:"commentCount" db:"comment_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Comment - комментарий к посту.
type Comment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PostID     uuid.UUID `json:"postId" db:"post_id"`
	AuthorID   string    `json:"authorId" db:"author_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// CreatePostRequest - тело запроса на создание поста.
type CreatePostRequest struct {
	Title string   `json:"title" binding:"required,min=3,max=120"`
	Body  string   `json:"body" binding:"required,min=1,max=5000"`
	Tags  []string `json:"tags" binding:"max=5,dive,min=1,max=24"`
}

// CreateCommentRequest - тело запроса на комментарий.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

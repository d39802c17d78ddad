package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"troubleshoot-titans/internal/interfaces/mocks"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestForumService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes tags", func(t *testing.T) {
		repo := mocks.NewForumRepository(t)
		repo.On("CreatePost", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.AuthorID == "user-1" && p.Title == "DNS trouble" &&
				assert.ObjectsAreEqual([]string{"dns", "network"}, p.Tags)
		})).Return(nil).Once()

		svc := service.NewForumService(repo, zap.NewNop())
		post, err := svc.CreatePost(ctx, testSession(), models.CreatePostRequest{
			Title: "  DNS trouble ",
			Body:  "nslookup times out",
			Tags:  []string{"DNS", "dns ", "", "Network"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Alex", post.AuthorName)
		assert.False(t, post.CreatedAt.IsZero())
	})

	t.Run("rejects short title", func(t *testing.T) {
		svc := service.NewForumService(mocks.NewForumRepository(t), zap.NewNop())
		_, err := svc.CreatePost(ctx, testSession(), models.CreatePostRequest{Title: " a ", Body: "x"})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects long body", func(t *testing.T) {
		svc := service.NewForumService(mocks.NewForumRepository(t), zap.NewNop())
		_, err := svc.CreatePost(ctx, testSession(), models.CreatePostRequest{Title: "Valid", Body: strings.Repeat("x", 5001)})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestForumService_DeletePost(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("own post", func(t *testing.T) {
		repo := mocks.NewForumRepository(t)
		repo.On("DeletePost", ctx, id, "user-1").Return(nil).Once()
		assert.NoError(t, service.NewForumService(repo, zap.NewNop()).DeletePost(ctx, testSession(), id))
	})

	t.Run("someone else's post", func(t *testing.T) {
		repo := mocks.NewForumRepository(t)
		repo.On("DeletePost", ctx, id, "user-1").Return(models.ErrPostNotFound).Once()
		repo.On("GetPost", ctx, id).Return(&models.Post{ID: id, AuthorID: "user-2"}, nil).Once()
		err := service.NewForumService(repo, zap.NewNop()).DeletePost(ctx, testSession(), id)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("missing post", func(t *testing.T) {
		repo := mocks.NewForumRepository(t)
		repo.On("DeletePost", ctx, id, "user-1").Return(models.ErrPostNotFound).Once()
		repo.On("GetPost", ctx, id).Return(nil, models.ErrPostNotFound).Once()
		err := service.NewForumService(repo, zap.NewNop()).DeletePost(ctx, testSession(), id)
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})

	t.Run("storage error", func(t *testing.T) {
		repo := mocks.NewForumRepository(t)
		dbErr := errors.New("db down")
		repo.On("DeletePost", ctx, id, "user-1").Return(dbErr).Once()
		err := service.NewForumService(repo, zap.NewNop()).DeletePost(ctx, testSession(), id)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestForumService_ListPostsSanitizesLimit(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewForumRepository(t)
	repo.On("ListPosts", ctx, "", 20).Return([]models.Post{}, "", nil).Twice()

	svc := service.NewForumService(repo, zap.NewNop())
	_, _, err := svc.ListPosts(ctx, "", 0)
	require.NoError(t, err)
	_, _, err = svc.ListPosts(ctx, "", 500)
	require.NoError(t, err)
}

func TestForumService_ListCommentsOfMissingPost(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := mocks.NewForumRepository(t)
	repo.On("GetPost", ctx, id).Return(nil, models.ErrPostNotFound).Once()

	_, _, err := service.NewForumService(repo, zap.NewNop()).ListComments(ctx, id, "", 10)
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}

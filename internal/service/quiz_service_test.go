package service_test

import (
	"context"
	"testing"

	"troubleshoot-titans/internal/interfaces/mocks"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newQuizService(t *testing.T) (*service.QuizService, *mocks.CompletionReporter, *mocks.GeneratedContentRepository) {
	t.Helper()
	store, repo := newTestStore(t)
	reporter := mocks.NewCompletionReporter(t)
	svc := service.NewQuizService(store, mocks.NewContentGenerator(t), reporter,
		service.QuizOptions{PassPercent: 70, Points: 50}, zap.NewNop())
	return svc, reporter, repo
}

func TestQuizService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("passing score reports completion", func(t *testing.T) {
		svc, reporter, _ := newQuizService(t)
		reporter.On("ReportCompletion", ctx, mock.MatchedBy(func(e models.CompletionEvent) bool {
			return e.Kind == models.CompletionQuiz && e.ItemID == "networking-basics" && e.Points == 50
		})).Once()

		result, err := svc.Submit(ctx, testSession(), "networking-basics", []int{0, 1, 2, 0})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Correct)
		assert.Equal(t, 75, result.Percent)
		assert.True(t, result.Passed)
	})

	t.Run("failing score is not reported", func(t *testing.T) {
		svc, reporter, _ := newQuizService(t)

		result, err := svc.Submit(ctx, testSession(), "networking-basics", []int{0, -1, -1, -1})
		require.NoError(t, err)
		assert.False(t, result.Passed)
		reporter.AssertNotCalled(t, "ReportCompletion", mock.Anything, mock.Anything)
	})

	t.Run("answer count mismatch", func(t *testing.T) {
		svc, _, _ := newQuizService(t)
		_, err := svc.Submit(ctx, testSession(), "networking-basics", []int{0})
		assert.ErrorIs(t, err, models.ErrAnswerCountMismatch)
	})

	t.Run("unknown quiz", func(t *testing.T) {
		svc, _, repo := newQuizService(t)
		repo.On("GetQuiz", ctx, "nope").Return(nil, models.ErrQuizNotFound).Once()
		_, err := svc.Submit(ctx, testSession(), "nope", []int{})
		assert.ErrorIs(t, err, models.ErrQuizNotFound)
	})
}

func TestQuizService_GetHidesAnswers(t *testing.T) {
	svc, _, _ := newQuizService(t)
	q, err := svc.Get(context.Background(), "helpdesk-etiquette")
	require.NoError(t, err)
	assert.Equal(t, 3, q.QuestionCount)
	require.Len(t, q.Questions, 3)
	assert.Len(t, q.Questions[0].Options, 4)
}
